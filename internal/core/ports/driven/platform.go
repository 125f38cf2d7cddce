package driven

import (
	"context"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

// SearchService selects the web search provider backing WebSearch.
type SearchService string

const (
	SearchServiceTavily SearchService = "Tavily"
	SearchServiceExa    SearchService = "Exa"
)

// TextType declares the format of text ingested via IngestText.
type TextType string

const (
	TextTypeMarkdown TextType = "Markdown"
	TextTypePlain    TextType = "Plain"
	TextTypeHTML     TextType = "HTML"
)

// ContentFilter narrows content listing queries. Zero values mean
// "no constraint".
type ContentFilter struct {
	Name     string
	Type     domain.ContentType
	FileType domain.FileType
	// InLast is an ISO-8601 duration bounding the creation date.
	InLast string
	Limit  int
}

// RetrieveOptions shapes a retrieval query.
type RetrieveOptions struct {
	Prompt string
	// InLast is an ISO-8601 duration bounding the creation date.
	InLast      string
	ContentType domain.ContentType
	FileType    domain.FileType
	Feeds       []string
	Collections []string
}

// IngestOptions carries optional ingestion parameters.
type IngestOptions struct {
	// Workflow is the id of a workflow preset to apply, when any.
	Workflow string
}

// WebSearchResult is one hit from a web search, before any ingestion.
type WebSearchResult struct {
	Title string
	URI   string
	Text  string
	Score float64
}

// OAuthCredentials is a client id/secret/refresh-token triple forwarded to
// the platform for connectors that authenticate via OAuth.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// FeedInput describes a feed to create. Exactly one connector section is
// non-nil, matching Type.
type FeedInput struct {
	Name      string
	Type      domain.FeedType
	ReadLimit int

	Web            *WebFeedInput
	RSS            *RSSFeedInput
	Slack          *SlackFeedInput
	Discord        *DiscordFeedInput
	MicrosoftTeams *MicrosoftTeamsFeedInput
	Email          *EmailFeedInput
	Site           *SiteFeedInput
	Issue          *IssueFeedInput
	Notion         *NotionFeedInput
	Reddit         *RedditFeedInput
	Twitter        *TwitterFeedInput
}

// WebFeedInput crawls a site starting from URI.
type WebFeedInput struct {
	URI string
}

// RSSFeedInput reads an RSS or Atom feed.
type RSSFeedInput struct {
	URI string
}

// SlackFeedInput reads a Slack channel with a bot token.
type SlackFeedInput struct {
	Channel  string
	BotToken string
}

// DiscordFeedInput reads a Discord channel with a bot token.
type DiscordFeedInput struct {
	Channel  string
	BotToken string
}

// MicrosoftTeamsFeedInput reads a Teams channel via OAuth.
type MicrosoftTeamsFeedInput struct {
	Team    string
	Channel string
	OAuth   OAuthCredentials
}

// EmailService selects the mailbox provider for an email feed.
type EmailService string

const (
	EmailServiceGoogle    EmailService = "GoogleEmail"
	EmailServiceMicrosoft EmailService = "MicrosoftEmail"
)

// EmailFeedInput reads a mailbox via OAuth.
type EmailFeedInput struct {
	Service EmailService
	OAuth   OAuthCredentials
}

// SiteService selects the file storage provider for a site feed.
type SiteService string

const (
	SiteServiceGoogleDrive SiteService = "GoogleDrive"
	SiteServiceOneDrive    SiteService = "OneDrive"
	SiteServiceDropbox     SiteService = "Dropbox"
	SiteServiceGitHub      SiteService = "GitHub"
)

// SiteFeedInput reads files from a cloud storage or repository provider.
// OAuth is used by OAuth providers; Token by token providers (GitHub).
type SiteFeedInput struct {
	Service SiteService
	// Folder restricts reading to a folder path, when supported.
	Folder string
	// RepositoryOwner and RepositoryName select a repository for GitHub.
	RepositoryOwner string
	RepositoryName  string
	OAuth           OAuthCredentials
	Token           string
}

// IssueService selects the issue tracker for an issue feed.
type IssueService string

const (
	IssueServiceJira   IssueService = "Jira"
	IssueServiceLinear IssueService = "Linear"
	IssueServiceGitHub IssueService = "GitHub"
)

// IssueFeedInput reads issues from a tracker.
type IssueFeedInput struct {
	Service IssueService
	// URI is the site URL for Jira.
	URI string
	// Project selects a project for Jira and Linear.
	Project string
	// RepositoryOwner and RepositoryName select a repository for GitHub.
	RepositoryOwner string
	RepositoryName  string
	// Email accompanies Token for Jira basic auth.
	Email string
	Token string
}

// NotionFeedInput reads Notion pages with an integration token.
type NotionFeedInput struct {
	Token string
}

// RedditFeedInput reads posts from a subreddit.
type RedditFeedInput struct {
	Subreddit string
}

// TwitterFeedInput reads recent posts from a user timeline.
type TwitterFeedInput struct {
	UserName string
	Token    string
}

// PlatformClient executes one-shot operations against the Lattice API.
// Implementations are short-lived: the MCP adapter constructs one per
// request via ClientFactory and discards it afterwards. No method retries
// or caches; every call maps to exactly one remote operation.
type PlatformClient interface {
	// Contents.
	QueryContents(ctx context.Context, filter ContentFilter) ([]domain.Content, error)
	GetContent(ctx context.Context, id string) (*domain.Content, error)
	DeleteContent(ctx context.Context, id string) error
	IsContentDone(ctx context.Context, id string) (bool, error)
	IngestURI(ctx context.Context, uri string, opts IngestOptions) (string, error)
	IngestText(ctx context.Context, name, text string, textType TextType) (string, error)
	IngestEncodedFile(ctx context.Context, name, data, mimeType string) (string, error)
	ScreenshotPage(ctx context.Context, uri string) (string, error)
	DescribeImageURL(ctx context.Context, prompt, uri string) (string, error)
	DescribeImageContent(ctx context.Context, prompt, id string) (string, error)
	WebSearch(ctx context.Context, search string, service SearchService) ([]WebSearchResult, error)
	MapWeb(ctx context.Context, uri string) ([]string, error)

	// Collections.
	QueryCollections(ctx context.Context, name string, limit int) ([]domain.Collection, error)
	GetCollection(ctx context.Context, id string) (*domain.Collection, error)
	CreateCollection(ctx context.Context, name string, contents []string) (string, error)
	AddContentsToCollection(ctx context.Context, id string, contents []string) error
	RemoveContentsFromCollection(ctx context.Context, id string, contents []string) error
	DeleteCollection(ctx context.Context, id string) error

	// Feeds.
	QueryFeeds(ctx context.Context, name string, limit int) ([]domain.Feed, error)
	GetFeed(ctx context.Context, id string) (*domain.Feed, error)
	CreateFeed(ctx context.Context, input FeedInput) (string, error)
	DeleteFeed(ctx context.Context, id string) error
	IsFeedDone(ctx context.Context, id string) (bool, error)

	// Conversations.
	QueryConversations(ctx context.Context, name string, limit int) ([]domain.Conversation, error)
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)

	// Pipeline presets.
	QueryWorkflows(ctx context.Context, limit int) ([]domain.Workflow, error)
	GetWorkflow(ctx context.Context, id string) (*domain.Workflow, error)
	QuerySpecifications(ctx context.Context, limit int) ([]domain.Specification, error)
	GetSpecification(ctx context.Context, id string) (*domain.Specification, error)

	// Project and usage.
	GetProject(ctx context.Context) (*domain.Project, error)
	LookupCredits(ctx context.Context, duration string) (*domain.Credits, error)
	LookupUsage(ctx context.Context, duration string) (*domain.TokenUsage, error)

	// Retrieval.
	RetrieveSources(ctx context.Context, opts RetrieveOptions) ([]domain.Source, error)
}

// ClientFactory constructs a fresh PlatformClient per request. Injecting
// the factory rather than a shared client keeps handlers stateless and
// lets tests substitute a double.
type ClientFactory interface {
	NewClient() PlatformClient
}
