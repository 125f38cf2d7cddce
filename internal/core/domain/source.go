package domain

// Source is a ranked retrieval fragment. It references a Content but is
// distinct from it: a Source carries the matched text plus positional
// locators whose meaning depends on the source Content's shape.
type Source struct {
	// ContentID references the Content the fragment came from.
	ContentID string

	// Type is the referenced Content's type.
	Type ContentType

	// FileType is the referenced Content's file type, for FILE content.
	FileType FileType

	// Name is the referenced Content's display name.
	Name string

	// RelevanceScore is the retrieval ranking score.
	RelevanceScore float64

	// MetadataText is matched structured metadata, when any.
	MetadataText string

	// Text is the matched fragment text.
	Text string

	// PageNumber locates the fragment for paginated content (1-based,
	// 0 when not applicable).
	PageNumber int

	// FrameNumber locates the fragment for frame-indexed content
	// (1-based, 0 when not applicable).
	FrameNumber int

	// StartTime and EndTime locate the fragment for transcripts.
	StartTime string
	EndTime   string
}
