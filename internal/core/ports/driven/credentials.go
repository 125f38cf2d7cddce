package driven

// CredentialStore provides named deployment credentials. Credentials are
// fixed at deployment time; a missing required one indicates a broken
// deployment, so the Require methods terminate the process rather than
// returning an error. Implementations centralize that exit in one
// injectable gate so tests can intercept it.
type CredentialStore interface {
	// Lookup returns the named credential, reporting whether it is set.
	Lookup(name string) (string, bool)

	// Require returns the named credentials, terminating the process if
	// any is missing.
	Require(names ...string) map[string]string

	// RequireOAuth returns the {prefix}_CLIENT_ID / _CLIENT_SECRET /
	// _REFRESH_TOKEN triple, terminating the process if any is missing.
	RequireOAuth(prefix string) OAuthCredentials
}
