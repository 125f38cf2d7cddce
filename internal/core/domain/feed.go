package domain

import "time"

// FeedType identifies the connector behind a feed.
type FeedType string

const (
	FeedTypeWeb            FeedType = "Web"
	FeedTypeSearch         FeedType = "Search"
	FeedTypeRSS            FeedType = "RSS"
	FeedTypeSlack          FeedType = "Slack"
	FeedTypeDiscord        FeedType = "Discord"
	FeedTypeMicrosoftTeams FeedType = "MicrosoftTeams"
	FeedTypeEmail          FeedType = "Email"
	FeedTypeSite           FeedType = "Site"
	FeedTypeIssue          FeedType = "Issue"
	FeedTypeNotion         FeedType = "Notion"
	FeedTypeReddit         FeedType = "Reddit"
	FeedTypeTwitter        FeedType = "Twitter"
)

// FeedState is the platform-owned lifecycle state of a feed.
type FeedState string

const (
	FeedStateEnabled  FeedState = "Enabled"
	FeedStateDisabled FeedState = "Disabled"
	FeedStateError    FeedState = "Error"
)

// Feed is a configured, possibly still-running ingestion job. The adapter
// only creates, polls and deletes feeds; the platform drives the lifecycle.
type Feed struct {
	// ID is the platform-assigned identifier.
	ID string

	// Name is the human-readable feed name.
	Name string

	// Type identifies the source connector.
	Type FeedType

	// State is the current lifecycle state.
	State FeedState

	// ReadCount is how many items the feed has read so far.
	ReadCount int

	// CreationDate is when the feed was created.
	CreationDate time.Time

	// LastReadDate is when the feed last read from its source.
	LastReadDate time.Time

	// Error carries the last ingestion error, when State is ERROR.
	Error string
}
