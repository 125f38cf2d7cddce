// Package mcp provides the MCP (Model Context Protocol) server adapter for
// Lattice. It exposes the platform's retrieval, ingestion and management
// operations as tools, and its entity spaces as resources, so AI assistants
// can work against a Lattice deployment.
package mcp

import "errors"

// ErrMissingPlatform is returned when the platform client factory is not provided.
var ErrMissingPlatform = errors.New("mcp: platform client factory is required")

// ErrMissingCredentials is returned when the credential store is not provided.
var ErrMissingCredentials = errors.New("mcp: credential store is required")
