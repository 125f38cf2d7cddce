package domain

// Collection is a named set of Content references.
// Membership is unordered; the platform owns the set.
type Collection struct {
	// ID is the platform-assigned identifier.
	ID string

	// Name is the human-readable collection name.
	Name string

	// Contents are the member references. Members are always rendered as
	// URIs, never inlined.
	Contents []ContentRef
}
