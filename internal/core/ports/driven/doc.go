// Package driven defines the interfaces that the adapter calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// The MCP adapter depends on these interfaces, and the platform/config
// adapters implement them.
//
//   - PlatformClient: One-shot operations against the Lattice API
//   - ClientFactory: Constructs a short-lived PlatformClient per request
//   - CredentialStore: Named deployment credentials with a fatal gate
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
