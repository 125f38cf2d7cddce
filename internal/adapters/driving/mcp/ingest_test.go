package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

// newIngestServer wires a server with primed credentials.
func newIngestServer(t *testing.T, client *mockClient, values map[string]string) (*Server, *mockClient, *mockCredentials) {
	t.Helper()
	if client == nil {
		client = &mockClient{createdID: "f-1"}
	}
	creds := &mockCredentials{values: values}
	server, err := NewServer(&Ports{
		Platform:    &mockFactory{client: client},
		Credentials: creds,
	})
	require.NoError(t, err)
	return server, client, creds
}

func TestServer_handleIngestSlack(t *testing.T) {
	ctx := context.Background()

	t.Run("creates slack feed with bot token", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"SLACK_BOT_TOKEN": "xoxb-1",
		})

		result, _, err := server.handleIngestSlack(ctx, nil, ChannelIngestInput{ChannelName: "engineering"})

		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), `"id": "f-1"`)
		assert.Equal(t, domain.FeedTypeSlack, client.lastFeedInput.Type)
		assert.Equal(t, defaultReadLimit, client.lastFeedInput.ReadLimit)
		require.NotNil(t, client.lastFeedInput.Slack)
		assert.Equal(t, "engineering", client.lastFeedInput.Slack.Channel)
		assert.Equal(t, "xoxb-1", client.lastFeedInput.Slack.BotToken)
	})

	t.Run("demands the bot token", func(t *testing.T) {
		server, _, creds := newIngestServer(t, nil, nil)

		_, _, err := server.handleIngestSlack(ctx, nil, ChannelIngestInput{ChannelName: "engineering"})

		require.NoError(t, err)
		assert.Contains(t, creds.missing, "SLACK_BOT_TOKEN")
	})
}

func TestServer_handleIngestMicrosoftTeams(t *testing.T) {
	ctx := context.Background()

	t.Run("creates teams feed with oauth triple", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"MICROSOFT_TEAMS_CLIENT_ID":     "id",
			"MICROSOFT_TEAMS_CLIENT_SECRET": "sec",
			"MICROSOFT_TEAMS_REFRESH_TOKEN": "ref",
		})

		_, _, err := server.handleIngestMicrosoftTeams(ctx, nil, TeamsIngestInput{
			TeamName:    "Engineering",
			ChannelName: "General",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.FeedTypeMicrosoftTeams, client.lastFeedInput.Type)
		require.NotNil(t, client.lastFeedInput.MicrosoftTeams)
		assert.Equal(t, "Engineering", client.lastFeedInput.MicrosoftTeams.Team)
		assert.Equal(t, "id", client.lastFeedInput.MicrosoftTeams.OAuth.ClientID)
	})
}

func TestServer_handleIngestEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("google email uses google service", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"GOOGLE_EMAIL_CLIENT_ID":     "id",
			"GOOGLE_EMAIL_CLIENT_SECRET": "sec",
			"GOOGLE_EMAIL_REFRESH_TOKEN": "ref",
		})

		_, _, err := server.handleIngestGoogleEmail(ctx, nil, ReadLimitInput{})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Email)
		assert.Equal(t, driven.EmailServiceGoogle, client.lastFeedInput.Email.Service)
	})

	t.Run("microsoft email uses microsoft service", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"MICROSOFT_EMAIL_CLIENT_ID":     "id",
			"MICROSOFT_EMAIL_CLIENT_SECRET": "sec",
			"MICROSOFT_EMAIL_REFRESH_TOKEN": "ref",
		})

		_, _, err := server.handleIngestMicrosoftEmail(ctx, nil, ReadLimitInput{ReadLimit: 50})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Email)
		assert.Equal(t, driven.EmailServiceMicrosoft, client.lastFeedInput.Email.Service)
		assert.Equal(t, 50, client.lastFeedInput.ReadLimit)
	})
}

func TestServer_handleIngestSiteFeeds(t *testing.T) {
	ctx := context.Background()

	t.Run("dropbox maps app key and secret to the oauth triple", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"DROPBOX_APP_KEY":       "key",
			"DROPBOX_APP_SECRET":    "sec",
			"DROPBOX_REFRESH_TOKEN": "ref",
		})

		_, _, err := server.handleIngestDropboxFiles(ctx, nil, FolderIngestInput{FolderPath: "/reports"})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Site)
		assert.Equal(t, driven.SiteServiceDropbox, client.lastFeedInput.Site.Service)
		assert.Equal(t, "/reports", client.lastFeedInput.Site.Folder)
		assert.Equal(t, "key", client.lastFeedInput.Site.OAuth.ClientID)
		assert.Equal(t, "ref", client.lastFeedInput.Site.OAuth.RefreshToken)
	})

	t.Run("github files use a personal access token", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp-1",
		})

		_, _, err := server.handleIngestGitHubFiles(ctx, nil, RepositoryIngestInput{
			RepositoryOwner: "custodia-labs",
			RepositoryName:  "lattice-mcp",
		})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Site)
		assert.Equal(t, driven.SiteServiceGitHub, client.lastFeedInput.Site.Service)
		assert.Equal(t, "custodia-labs", client.lastFeedInput.Site.RepositoryOwner)
		assert.Equal(t, "ghp-1", client.lastFeedInput.Site.Token)
	})
}

func TestServer_handleIngestIssueFeeds(t *testing.T) {
	ctx := context.Background()

	t.Run("jira carries site url and basic auth", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"JIRA_EMAIL": "dev@example.com",
			"JIRA_TOKEN": "jira-1",
		})

		_, _, err := server.handleIngestJiraIssues(ctx, nil, JiraIngestInput{
			URL:         "https://example.atlassian.net",
			ProjectName: "LAT",
		})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Issue)
		assert.Equal(t, driven.IssueServiceJira, client.lastFeedInput.Issue.Service)
		assert.Equal(t, "https://example.atlassian.net", client.lastFeedInput.Issue.URI)
		assert.Equal(t, "dev@example.com", client.lastFeedInput.Issue.Email)
	})

	t.Run("linear uses the api key", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"LINEAR_API_KEY": "lin-1",
		})

		_, _, err := server.handleIngestLinearIssues(ctx, nil, ProjectIngestInput{ProjectName: "Lattice"})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Issue)
		assert.Equal(t, driven.IssueServiceLinear, client.lastFeedInput.Issue.Service)
		assert.Equal(t, "lin-1", client.lastFeedInput.Issue.Token)
	})

	t.Run("github issues use the issue connector", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp-1",
		})

		_, _, err := server.handleIngestGitHubIssues(ctx, nil, RepositoryIngestInput{
			RepositoryOwner: "custodia-labs",
			RepositoryName:  "lattice-mcp",
		})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Issue)
		assert.Equal(t, driven.IssueServiceGitHub, client.lastFeedInput.Issue.Service)
	})
}

func TestServer_handleIngestOpenFeeds(t *testing.T) {
	ctx := context.Background()

	t.Run("reddit needs no credentials", func(t *testing.T) {
		server, client, creds := newIngestServer(t, nil, nil)

		_, _, err := server.handleIngestRedditPosts(ctx, nil, SubredditIngestInput{SubredditName: "golang"})

		require.NoError(t, err)
		assert.Empty(t, creds.missing)
		require.NotNil(t, client.lastFeedInput.Reddit)
		assert.Equal(t, "golang", client.lastFeedInput.Reddit.Subreddit)
	})

	t.Run("rss needs no credentials", func(t *testing.T) {
		server, client, creds := newIngestServer(t, nil, nil)

		_, _, err := server.handleIngestRSS(ctx, nil, RSSIngestInput{URL: "https://example.com/feed.xml"})

		require.NoError(t, err)
		assert.Empty(t, creds.missing)
		require.NotNil(t, client.lastFeedInput.RSS)
	})

	t.Run("notion uses the integration token", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"NOTION_API_KEY": "ntn-1",
		})

		_, _, err := server.handleIngestNotionPages(ctx, nil, ReadLimitInput{})

		require.NoError(t, err)
		require.NotNil(t, client.lastFeedInput.Notion)
		assert.Equal(t, "ntn-1", client.lastFeedInput.Notion.Token)
	})
}

func TestServer_handleIngestTwitterPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the lower twitter read limit", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"TWITTER_TOKEN": "tw-1",
		})

		_, _, err := server.handleIngestTwitterPosts(ctx, nil, TwitterIngestInput{UserName: "golang"})

		require.NoError(t, err)
		assert.Equal(t, twitterReadLimit, client.lastFeedInput.ReadLimit)
		require.NotNil(t, client.lastFeedInput.Twitter)
		assert.Equal(t, "golang", client.lastFeedInput.Twitter.UserName)
	})

	t.Run("caller read limit wins", func(t *testing.T) {
		server, client, _ := newIngestServer(t, nil, map[string]string{
			"TWITTER_TOKEN": "tw-1",
		})

		_, _, err := server.handleIngestTwitterPosts(ctx, nil, TwitterIngestInput{UserName: "golang", ReadLimit: 10})

		require.NoError(t, err)
		assert.Equal(t, 10, client.lastFeedInput.ReadLimit)
	})
}

func TestServer_createFeedFailure(t *testing.T) {
	t.Run("remote rejection becomes an error result", func(t *testing.T) {
		server, _, _ := newIngestServer(t, &mockClient{err: errors.New("rate limited")}, nil)

		result, _, err := server.handleIngestRSS(context.Background(), nil, RSSIngestInput{URL: "https://example.com/feed.xml"})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "Error: rate limited", resultText(t, result))
	})
}
