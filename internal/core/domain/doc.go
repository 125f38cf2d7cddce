// Package domain defines the core business entities for the Lattice adapter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Content: One ingested knowledge unit in the Lattice platform
//   - Collection: A named set of Content references
//   - Feed: A configured, asynchronous ingestion job
//   - Conversation: An ordered exchange of messages with citations
//   - Source: A ranked retrieval fragment referencing a Content
//
// Every value is owned by the remote platform: the adapter fetches it for
// the duration of a single call, renders it, and discards it. Nothing in
// this package is persisted locally.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
