package domain

import "time"

// ContentType discriminates what kind of knowledge unit a Content is.
type ContentType string

const (
	ContentTypeFile    ContentType = "File"
	ContentTypeEmail   ContentType = "Email"
	ContentTypeIssue   ContentType = "Issue"
	ContentTypePage    ContentType = "Page"
	ContentTypePost    ContentType = "Post"
	ContentTypeMessage ContentType = "Message"
	ContentTypeText    ContentType = "Text"
	ContentTypeEvent   ContentType = "Event"
)

// FileType refines ContentTypeFile into a broad file category.
type FileType string

const (
	FileTypeDocument FileType = "Document"
	FileTypeImage    FileType = "Image"
	FileTypeAudio    FileType = "Audio"
	FileTypeVideo    FileType = "Video"
	FileTypeData     FileType = "Data"
	FileTypeCode     FileType = "Code"
	FileTypeArchive  FileType = "Archive"
)

// Content represents one ingested knowledge unit fetched from the platform.
// At most one of the type-specific metadata sub-records is populated,
// determined by Type, and at most one body representation (Pages, Segments,
// Frames or Markdown) is present.
type Content struct {
	// ID is the platform-assigned opaque identifier.
	ID string

	// Type discriminates the content kind.
	Type ContentType

	// FileType is set when Type is FILE.
	FileType FileType

	// Name is the human-readable name. For FILE content FileName is
	// preferred; for PAGE and EMAIL content the name duplicates other
	// fields and is not rendered.
	Name string

	// FileName is the original file name for FILE content.
	FileName string

	// URI is the platform's internal source locator. It is plumbing,
	// not a downloadable location, and is never rendered.
	URI string

	// MasterURI is the downloadable original, when available.
	MasterURI string

	// ImageURI is a downloadable image rendition, when available.
	ImageURI string

	// AudioURI is a downloadable audio rendition, when available.
	AudioURI string

	// CreationDate is when the platform ingested the content.
	CreationDate time.Time

	// OriginalDate is the author-side timestamp, when known.
	OriginalDate time.Time

	// Type-specific metadata. Structurally all optional; in practice the
	// one matching Type is populated.
	Issue    *IssueMetadata
	Email    *EmailMetadata
	Document *DocumentMetadata
	Audio    *AudioMetadata
	Image    *ImageMetadata

	// Collections lists memberships by reference.
	Collections []CollectionRef

	// Parent and Children describe the content hierarchy.
	Parent   *ContentRef
	Children []ContentRef

	// Links are outbound hyperlinks; meaningful only for PAGE content.
	Links []Link

	// Observations are knowledge-graph entity mentions.
	Observations []Observation

	// Body representations, mutually exclusive in practice. The formatter
	// checks Pages, Segments, Frames then Markdown, first match wins.
	Pages    []Page
	Segments []Segment
	Frames   []Frame
	Markdown string
}

// ContentRef is a by-reference pointer to another Content.
type ContentRef struct {
	ID   string
	Name string
}

// CollectionRef is a by-reference pointer to a Collection.
type CollectionRef struct {
	ID   string
	Name string
}

// Link is an outbound hyperlink extracted from a crawled page.
type Link struct {
	// Type classifies the link target (e.g. "WEB", "Email", "MEDIA").
	Type string
	// URI is the link target.
	URI string
}

// ObservableType classifies a knowledge-graph entity.
type ObservableType string

const (
	ObservableLabel        ObservableType = "Label"
	ObservablePerson       ObservableType = "Person"
	ObservableOrganization ObservableType = "Organization"
	ObservablePlace        ObservableType = "Place"
	ObservableEvent        ObservableType = "Event"
	ObservableProduct      ObservableType = "Product"
	ObservableSoftware     ObservableType = "Software"
	ObservableRepo         ObservableType = "Repo"
	ObservableCategory     ObservableType = "Category"
)

// Observation records that a knowledge-graph entity was observed in a
// Content. Observable may be nil when the referenced entity was deleted.
type Observation struct {
	Type       ObservableType
	Observable *ObservableRef
}

// ObservableRef is a by-reference pointer to a knowledge-graph entity.
type ObservableRef struct {
	ID   string
	Name string
}

// Page is one page of a paginated document body.
type Page struct {
	// Index is zero-based; rendering is one-based.
	Index  int
	Chunks []Chunk
}

// Chunk is one extracted text run within a page.
type Chunk struct {
	Index int
	Text  string
}

// Segment is one time-coded transcript segment.
type Segment struct {
	StartTime string
	EndTime   string
	Text      string
}

// Frame is one indexed frame of a video or image sequence.
type Frame struct {
	Index int
	Text  string
}

// IssueMetadata holds issue-tracker fields for ISSUE content.
type IssueMetadata struct {
	Title      string
	Identifier string
	Type       string
	Project    string
	Team       string
	Status     string
	Priority   string
	Labels     []string
}

// EmailMetadata holds mail fields for EMAIL content.
type EmailMetadata struct {
	Subject     string
	Sensitivity string
	Priority    string
	Importance  string
	Labels      []string
	To          []Recipient
	From        []Recipient
	CC          []Recipient
	BCC         []Recipient
}

// Recipient is one mail address with an optional display name.
type Recipient struct {
	Name    string
	Address string
}

// String renders the recipient as "Name <address>", or the bare address
// when no display name is known.
func (r Recipient) String() string {
	if r.Name == "" {
		return r.Address
	}
	return r.Name + " <" + r.Address + ">"
}

// DocumentMetadata holds document fields for FILE content.
type DocumentMetadata struct {
	Title  string
	Author string
}

// AudioMetadata holds recording fields for audio FILE content.
type AudioMetadata struct {
	Title   string
	Author  string
	Episode string
	Series  string
}

// ImageMetadata holds EXIF-derived fields for image FILE content.
type ImageMetadata struct {
	Description string
	Software    string
	Make        string
	Model       string
}
