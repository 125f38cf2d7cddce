package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

// twitterReadLimit is the lower default for timeline ingestion; the
// upstream API rejects page sizes above it on free tiers.
const twitterReadLimit = 25

// ChannelIngestInput is the shared input schema for channel-based ingestion.
type ChannelIngestInput struct {
	ChannelName string `json:"channelName" jsonschema:"the channel to ingest"`
	ReadLimit   int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// TeamsIngestInput is the input schema for the ingestMicrosoftTeams tool.
type TeamsIngestInput struct {
	TeamName    string `json:"teamName" jsonschema:"the team containing the channel"`
	ChannelName string `json:"channelName" jsonschema:"the channel to ingest"`
	ReadLimit   int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// ReadLimitInput is the shared input schema for ingestion tools with no
// other parameters.
type ReadLimitInput struct {
	ReadLimit int `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// FolderIngestInput is the input schema for folder-scoped file ingestion.
type FolderIngestInput struct {
	FolderPath string `json:"folderPath,omitempty" jsonschema:"folder path to restrict ingestion to"`
	ReadLimit  int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// RepositoryIngestInput is the input schema for GitHub ingestion tools.
type RepositoryIngestInput struct {
	RepositoryOwner string `json:"repositoryOwner" jsonschema:"the repository owner"`
	RepositoryName  string `json:"repositoryName" jsonschema:"the repository name"`
	ReadLimit       int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// JiraIngestInput is the input schema for the ingestJiraIssues tool.
type JiraIngestInput struct {
	URL         string `json:"url" jsonschema:"the Jira site URL, e.g. https://example.atlassian.net"`
	ProjectName string `json:"projectName" jsonschema:"the Jira project to ingest"`
	ReadLimit   int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// ProjectIngestInput is the input schema for the ingestLinearIssues tool.
type ProjectIngestInput struct {
	ProjectName string `json:"projectName" jsonschema:"the project to ingest"`
	ReadLimit   int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// SubredditIngestInput is the input schema for the ingestRedditPosts tool.
type SubredditIngestInput struct {
	SubredditName string `json:"subredditName" jsonschema:"the subreddit to ingest"`
	ReadLimit     int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// RSSIngestInput is the input schema for the ingestRSS tool.
type RSSIngestInput struct {
	URL       string `json:"url" jsonschema:"the RSS or Atom feed URL"`
	ReadLimit int    `json:"readLimit,omitempty" jsonschema:"maximum number of items to read (default 100)"`
}

// TwitterIngestInput is the input schema for the ingestTwitterPosts tool.
type TwitterIngestInput struct {
	UserName  string `json:"userName" jsonschema:"the user timeline to ingest"`
	ReadLimit int    `json:"readLimit,omitempty" jsonschema:"maximum number of posts to read (default 25)"`
}

// registerIngestTools registers the connector ingestion tool handlers.
// Each wraps CreateFeed with connector credentials from the environment;
// a missing credential terminates the process through the fatal gate.
func (s *Server) registerIngestTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestSlack",
		Description: "Ingest messages from a Slack channel (requires SLACK_BOT_TOKEN)",
	}, s.handleIngestSlack)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestDiscord",
		Description: "Ingest messages from a Discord channel (requires DISCORD_BOT_TOKEN)",
	}, s.handleIngestDiscord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestMicrosoftTeams",
		Description: "Ingest messages from a Microsoft Teams channel (requires MICROSOFT_TEAMS_* OAuth credentials)",
	}, s.handleIngestMicrosoftTeams)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestGoogleEmail",
		Description: "Ingest a Gmail mailbox (requires GOOGLE_EMAIL_* OAuth credentials)",
	}, s.handleIngestGoogleEmail)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestMicrosoftEmail",
		Description: "Ingest an Outlook mailbox (requires MICROSOFT_EMAIL_* OAuth credentials)",
	}, s.handleIngestMicrosoftEmail)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestGoogleDriveFiles",
		Description: "Ingest files from Google Drive (requires GOOGLE_DRIVE_* OAuth credentials)",
	}, s.handleIngestGoogleDriveFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestOneDriveFiles",
		Description: "Ingest files from OneDrive (requires ONEDRIVE_* OAuth credentials)",
	}, s.handleIngestOneDriveFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestDropboxFiles",
		Description: "Ingest files from Dropbox (requires DROPBOX_APP_KEY, DROPBOX_APP_SECRET and DROPBOX_REFRESH_TOKEN)",
	}, s.handleIngestDropboxFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestGitHubIssues",
		Description: "Ingest issues from a GitHub repository (requires GITHUB_PERSONAL_ACCESS_TOKEN)",
	}, s.handleIngestGitHubIssues)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestGitHubFiles",
		Description: "Ingest files from a GitHub repository (requires GITHUB_PERSONAL_ACCESS_TOKEN)",
	}, s.handleIngestGitHubFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestJiraIssues",
		Description: "Ingest issues from a Jira project (requires JIRA_EMAIL and JIRA_TOKEN)",
	}, s.handleIngestJiraIssues)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestLinearIssues",
		Description: "Ingest issues from a Linear project (requires LINEAR_API_KEY)",
	}, s.handleIngestLinearIssues)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestNotionPages",
		Description: "Ingest pages from a Notion workspace (requires NOTION_API_KEY)",
	}, s.handleIngestNotionPages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestRedditPosts",
		Description: "Ingest posts from a subreddit",
	}, s.handleIngestRedditPosts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestRSS",
		Description: "Ingest items from an RSS or Atom feed",
	}, s.handleIngestRSS)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestTwitterPosts",
		Description: "Ingest recent posts from a Twitter/X user timeline (requires TWITTER_TOKEN)",
	}, s.handleIngestTwitterPosts)
}

// createFeed funnels every ingest tool through one CreateFeed call.
func (s *Server) createFeed(ctx context.Context, input driven.FeedInput) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	id, err := client.CreateFeed(ctx, input)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{"id": id}), nil, nil
}

func (s *Server) handleIngestSlack(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChannelIngestInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("SLACK_BOT_TOKEN")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Slack: " + input.ChannelName,
		Type:      domain.FeedTypeSlack,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Slack: &driven.SlackFeedInput{
			Channel:  input.ChannelName,
			BotToken: creds["SLACK_BOT_TOKEN"],
		},
	})
}

func (s *Server) handleIngestDiscord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChannelIngestInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("DISCORD_BOT_TOKEN")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Discord: " + input.ChannelName,
		Type:      domain.FeedTypeDiscord,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Discord: &driven.DiscordFeedInput{
			Channel:  input.ChannelName,
			BotToken: creds["DISCORD_BOT_TOKEN"],
		},
	})
}

func (s *Server) handleIngestMicrosoftTeams(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TeamsIngestInput,
) (*mcp.CallToolResult, any, error) {
	oauth := s.ports.Credentials.RequireOAuth("MICROSOFT_TEAMS")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Teams: " + input.TeamName + " / " + input.ChannelName,
		Type:      domain.FeedTypeMicrosoftTeams,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		MicrosoftTeams: &driven.MicrosoftTeamsFeedInput{
			Team:    input.TeamName,
			Channel: input.ChannelName,
			OAuth:   oauth,
		},
	})
}

func (s *Server) handleIngestGoogleEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadLimitInput,
) (*mcp.CallToolResult, any, error) {
	oauth := s.ports.Credentials.RequireOAuth("GOOGLE_EMAIL")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Google Email",
		Type:      domain.FeedTypeEmail,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Email: &driven.EmailFeedInput{
			Service: driven.EmailServiceGoogle,
			OAuth:   oauth,
		},
	})
}

func (s *Server) handleIngestMicrosoftEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadLimitInput,
) (*mcp.CallToolResult, any, error) {
	oauth := s.ports.Credentials.RequireOAuth("MICROSOFT_EMAIL")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Microsoft Email",
		Type:      domain.FeedTypeEmail,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Email: &driven.EmailFeedInput{
			Service: driven.EmailServiceMicrosoft,
			OAuth:   oauth,
		},
	})
}

func (s *Server) handleIngestGoogleDriveFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadLimitInput,
) (*mcp.CallToolResult, any, error) {
	oauth := s.ports.Credentials.RequireOAuth("GOOGLE_DRIVE")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Google Drive",
		Type:      domain.FeedTypeSite,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Site: &driven.SiteFeedInput{
			Service: driven.SiteServiceGoogleDrive,
			OAuth:   oauth,
		},
	})
}

func (s *Server) handleIngestOneDriveFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FolderIngestInput,
) (*mcp.CallToolResult, any, error) {
	oauth := s.ports.Credentials.RequireOAuth("ONEDRIVE")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "OneDrive",
		Type:      domain.FeedTypeSite,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Site: &driven.SiteFeedInput{
			Service: driven.SiteServiceOneDrive,
			Folder:  input.FolderPath,
			OAuth:   oauth,
		},
	})
}

func (s *Server) handleIngestDropboxFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FolderIngestInput,
) (*mcp.CallToolResult, any, error) {
	// Dropbox names its OAuth client an "app", so the triple is spelled
	// differently from the other providers.
	creds := s.ports.Credentials.Require(
		"DROPBOX_APP_KEY",
		"DROPBOX_APP_SECRET",
		"DROPBOX_REFRESH_TOKEN",
	)

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Dropbox",
		Type:      domain.FeedTypeSite,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Site: &driven.SiteFeedInput{
			Service: driven.SiteServiceDropbox,
			Folder:  input.FolderPath,
			OAuth: driven.OAuthCredentials{
				ClientID:     creds["DROPBOX_APP_KEY"],
				ClientSecret: creds["DROPBOX_APP_SECRET"],
				RefreshToken: creds["DROPBOX_REFRESH_TOKEN"],
			},
		},
	})
}

func (s *Server) handleIngestGitHubIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepositoryIngestInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("GITHUB_PERSONAL_ACCESS_TOKEN")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "GitHub Issues: " + input.RepositoryOwner + "/" + input.RepositoryName,
		Type:      domain.FeedTypeIssue,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Issue: &driven.IssueFeedInput{
			Service:         driven.IssueServiceGitHub,
			RepositoryOwner: input.RepositoryOwner,
			RepositoryName:  input.RepositoryName,
			Token:           creds["GITHUB_PERSONAL_ACCESS_TOKEN"],
		},
	})
}

func (s *Server) handleIngestGitHubFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepositoryIngestInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("GITHUB_PERSONAL_ACCESS_TOKEN")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "GitHub Files: " + input.RepositoryOwner + "/" + input.RepositoryName,
		Type:      domain.FeedTypeSite,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Site: &driven.SiteFeedInput{
			Service:         driven.SiteServiceGitHub,
			RepositoryOwner: input.RepositoryOwner,
			RepositoryName:  input.RepositoryName,
			Token:           creds["GITHUB_PERSONAL_ACCESS_TOKEN"],
		},
	})
}

func (s *Server) handleIngestJiraIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JiraIngestInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("JIRA_EMAIL", "JIRA_TOKEN")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Jira: " + input.ProjectName,
		Type:      domain.FeedTypeIssue,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Issue: &driven.IssueFeedInput{
			Service: driven.IssueServiceJira,
			URI:     input.URL,
			Project: input.ProjectName,
			Email:   creds["JIRA_EMAIL"],
			Token:   creds["JIRA_TOKEN"],
		},
	})
}

func (s *Server) handleIngestLinearIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProjectIngestInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("LINEAR_API_KEY")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Linear: " + input.ProjectName,
		Type:      domain.FeedTypeIssue,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Issue: &driven.IssueFeedInput{
			Service: driven.IssueServiceLinear,
			Project: input.ProjectName,
			Token:   creds["LINEAR_API_KEY"],
		},
	})
}

func (s *Server) handleIngestNotionPages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadLimitInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("NOTION_API_KEY")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Notion",
		Type:      domain.FeedTypeNotion,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Notion: &driven.NotionFeedInput{
			Token: creds["NOTION_API_KEY"],
		},
	})
}

func (s *Server) handleIngestRedditPosts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubredditIngestInput,
) (*mcp.CallToolResult, any, error) {
	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Reddit: " + input.SubredditName,
		Type:      domain.FeedTypeReddit,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Reddit: &driven.RedditFeedInput{
			Subreddit: input.SubredditName,
		},
	})
}

func (s *Server) handleIngestRSS(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RSSIngestInput,
) (*mcp.CallToolResult, any, error) {
	return s.createFeed(ctx, driven.FeedInput{
		Name:      "RSS: " + input.URL,
		Type:      domain.FeedTypeRSS,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		RSS: &driven.RSSFeedInput{
			URI: input.URL,
		},
	})
}

func (s *Server) handleIngestTwitterPosts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TwitterIngestInput,
) (*mcp.CallToolResult, any, error) {
	creds := s.ports.Credentials.Require("TWITTER_TOKEN")

	return s.createFeed(ctx, driven.FeedInput{
		Name:      "Twitter: " + input.UserName,
		Type:      domain.FeedTypeTwitter,
		ReadLimit: readLimitOrDefault(input.ReadLimit, twitterReadLimit),
		Twitter: &driven.TwitterFeedInput{
			UserName: input.UserName,
			Token:    creds["TWITTER_TOKEN"],
		},
	})
}
