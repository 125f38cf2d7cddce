// Package env provides the environment-backed credential store. Connector
// credentials are deployment configuration, not user input: a missing one
// means the deployment is broken, so the Require methods terminate the
// process through an injectable exit gate instead of returning errors.
package env
