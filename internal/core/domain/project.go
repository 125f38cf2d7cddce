package domain

import "time"

// Project is the single tenant-level configuration object in the platform.
// There is exactly one per organization/environment pair.
type Project struct {
	// ID is the platform-assigned identifier.
	ID string

	// Name is the project name.
	Name string

	// Region is the hosting region.
	Region string

	// CreationDate is when the project was provisioned.
	CreationDate time.Time
}

// Credits summarizes platform credit consumption over a lookup window.
type Credits struct {
	Credits    float64
	StorageGB  float64
	Embeddings float64
	Completion float64
}

// TokenUsage summarizes LLM token consumption over a lookup window.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	EmbeddingTokens  int
}

// Workflow is a named ingestion/extraction pipeline preset. The adapter
// treats it as opaque beyond identity.
type Workflow struct {
	ID   string
	Name string
}

// Specification is a named LLM configuration preset. The adapter treats it
// as opaque beyond identity.
type Specification struct {
	ID          string
	Name        string
	ServiceType string
}
