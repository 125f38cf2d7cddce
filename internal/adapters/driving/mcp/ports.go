package mcp

import (
	"context"

	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

// BlobFetcher downloads raw bytes for a media URI. The content resource
// uses it to attach image blobs; tests substitute a double.
type BlobFetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Ports aggregates all driven port implementations required by the MCP
// server. This provides a single injection point for dependency injection.
type Ports struct {
	// Platform constructs one short-lived API client per request.
	Platform driven.ClientFactory

	// Credentials provides connector credentials with a fatal gate.
	Credentials driven.CredentialStore

	// Blobs downloads media bytes for resource blob blocks. Optional;
	// when nil the content resource omits image blobs.
	Blobs BlobFetcher
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Platform == nil {
		return ErrMissingPlatform
	}
	if p.Credentials == nil {
		return ErrMissingCredentials
	}
	// Blobs is optional.
	return nil
}
