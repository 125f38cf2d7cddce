package platform

import (
	"context"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

const feedFields = `id name type state readCount creationDate lastReadDate error`

const queryFeedsQuery = `query QueryFeeds($filter: FeedFilter) {
  feeds(filter: $filter) {
    results { ` + feedFields + ` }
  }
}`

const getFeedQuery = `query GetFeed($id: ID!) {
  feed(id: $id) { ` + feedFields + ` }
}`

const createFeedMutation = `mutation CreateFeed($feed: FeedInput!) {
  createFeed(feed: $feed) { id }
}`

const deleteFeedMutation = `mutation DeleteFeed($id: ID!) {
  deleteFeed(id: $id) { id }
}`

const isFeedDoneQuery = `query IsFeedDone($id: ID!) {
  isFeedDone(id: $id) { result }
}`

type feedWire struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	State        string `json:"state"`
	ReadCount    int    `json:"readCount"`
	CreationDate string `json:"creationDate"`
	LastReadDate string `json:"lastReadDate"`
	Error        string `json:"error"`
}

func (w *feedWire) toDomain() *domain.Feed {
	if w == nil {
		return nil
	}
	return &domain.Feed{
		ID:           w.ID,
		Name:         w.Name,
		Type:         domain.FeedType(w.Type),
		State:        domain.FeedState(w.State),
		ReadCount:    w.ReadCount,
		CreationDate: parseDate(w.CreationDate),
		LastReadDate: parseDate(w.LastReadDate),
		Error:        w.Error,
	}
}

// QueryFeeds lists feeds, optionally filtered by name.
func (c *Client) QueryFeeds(ctx context.Context, name string, limit int) ([]domain.Feed, error) {
	filter := map[string]any{}
	if name != "" {
		filter["name"] = name
	}
	if limit > 0 {
		filter["limit"] = limit
	}

	vars := map[string]any{}
	if len(filter) > 0 {
		vars["filter"] = filter
	}

	var out struct {
		Feeds struct {
			Results []feedWire `json:"results"`
		} `json:"feeds"`
	}
	if err := c.execute(ctx, "QueryFeeds", queryFeedsQuery, vars, &out); err != nil {
		return nil, err
	}

	results := make([]domain.Feed, 0, len(out.Feeds.Results))
	for i := range out.Feeds.Results {
		results = append(results, *out.Feeds.Results[i].toDomain())
	}
	return results, nil
}

// GetFeed fetches one feed by id.
func (c *Client) GetFeed(ctx context.Context, id string) (*domain.Feed, error) {
	var out struct {
		Feed *feedWire `json:"feed"`
	}
	if err := c.execute(ctx, "GetFeed", getFeedQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.Feed == nil {
		return nil, domain.ErrNotFound
	}
	return out.Feed.toDomain(), nil
}

// CreateFeed creates one ingestion feed from the connector-specific input,
// returning the new feed id. Ingestion proceeds asynchronously; poll with
// IsFeedDone.
func (c *Client) CreateFeed(ctx context.Context, input driven.FeedInput) (string, error) {
	vars := map[string]any{"feed": feedVariables(input)}

	var out struct {
		CreateFeed idResult `json:"createFeed"`
	}
	if err := c.execute(ctx, "CreateFeed", createFeedMutation, vars, &out); err != nil {
		return "", err
	}
	return out.CreateFeed.ID, nil
}

// DeleteFeed removes a feed. Already-ingested content is unaffected.
func (c *Client) DeleteFeed(ctx context.Context, id string) error {
	return c.execute(ctx, "DeleteFeed", deleteFeedMutation, map[string]any{"id": id}, nil)
}

// IsFeedDone reports whether a feed has finished its current read.
func (c *Client) IsFeedDone(ctx context.Context, id string) (bool, error) {
	var out struct {
		IsFeedDone struct {
			Result bool `json:"result"`
		} `json:"isFeedDone"`
	}
	if err := c.execute(ctx, "IsFeedDone", isFeedDoneQuery, map[string]any{"id": id}, &out); err != nil {
		return false, err
	}
	return out.IsFeedDone.Result, nil
}

// feedVariables flattens the connector-specific input union into the
// platform's FeedInput variables. Exactly one connector section is
// serialized, keyed by the feed type.
func feedVariables(input driven.FeedInput) map[string]any {
	vars := map[string]any{
		"name": input.Name,
		"type": string(input.Type),
	}

	schedule := map[string]any{}
	if input.ReadLimit > 0 {
		schedule["readLimit"] = input.ReadLimit
	}

	switch {
	case input.Web != nil:
		props := map[string]any{"uri": input.Web.URI}
		vars["web"] = merged(props, schedule)
	case input.RSS != nil:
		props := map[string]any{"uri": input.RSS.URI}
		vars["rss"] = merged(props, schedule)
	case input.Slack != nil:
		props := map[string]any{
			"channel": input.Slack.Channel,
			"token":   input.Slack.BotToken,
		}
		vars["slack"] = merged(props, schedule)
	case input.Discord != nil:
		props := map[string]any{
			"channel": input.Discord.Channel,
			"token":   input.Discord.BotToken,
		}
		vars["discord"] = merged(props, schedule)
	case input.MicrosoftTeams != nil:
		props := map[string]any{
			"teamId":       input.MicrosoftTeams.Team,
			"channelId":    input.MicrosoftTeams.Channel,
			"clientId":     input.MicrosoftTeams.OAuth.ClientID,
			"clientSecret": input.MicrosoftTeams.OAuth.ClientSecret,
			"refreshToken": input.MicrosoftTeams.OAuth.RefreshToken,
		}
		vars["microsoftTeams"] = merged(props, schedule)
	case input.Email != nil:
		props := map[string]any{
			"type":         string(input.Email.Service),
			"clientId":     input.Email.OAuth.ClientID,
			"clientSecret": input.Email.OAuth.ClientSecret,
			"refreshToken": input.Email.OAuth.RefreshToken,
		}
		vars["email"] = merged(props, schedule)
	case input.Site != nil:
		props := map[string]any{"type": string(input.Site.Service)}
		if input.Site.Folder != "" {
			props["folder"] = input.Site.Folder
		}
		if input.Site.RepositoryOwner != "" {
			props["repositoryOwner"] = input.Site.RepositoryOwner
		}
		if input.Site.RepositoryName != "" {
			props["repositoryName"] = input.Site.RepositoryName
		}
		if input.Site.Token != "" {
			props["personalAccessToken"] = input.Site.Token
		}
		if input.Site.OAuth != (driven.OAuthCredentials{}) {
			props["clientId"] = input.Site.OAuth.ClientID
			props["clientSecret"] = input.Site.OAuth.ClientSecret
			props["refreshToken"] = input.Site.OAuth.RefreshToken
		}
		vars["site"] = merged(props, schedule)
	case input.Issue != nil:
		props := map[string]any{"type": string(input.Issue.Service)}
		if input.Issue.URI != "" {
			props["uri"] = input.Issue.URI
		}
		if input.Issue.Project != "" {
			props["project"] = input.Issue.Project
		}
		if input.Issue.RepositoryOwner != "" {
			props["repositoryOwner"] = input.Issue.RepositoryOwner
		}
		if input.Issue.RepositoryName != "" {
			props["repositoryName"] = input.Issue.RepositoryName
		}
		if input.Issue.Email != "" {
			props["email"] = input.Issue.Email
		}
		if input.Issue.Token != "" {
			props["token"] = input.Issue.Token
		}
		vars["issue"] = merged(props, schedule)
	case input.Notion != nil:
		props := map[string]any{"token": input.Notion.Token}
		vars["notion"] = merged(props, schedule)
	case input.Reddit != nil:
		props := map[string]any{"subredditName": input.Reddit.Subreddit}
		vars["reddit"] = merged(props, schedule)
	case input.Twitter != nil:
		props := map[string]any{
			"userName": input.Twitter.UserName,
			"token":    input.Twitter.Token,
		}
		vars["twitter"] = merged(props, schedule)
	}

	return vars
}

func merged(props, schedule map[string]any) map[string]any {
	for k, v := range schedule {
		props[k] = v
	}
	return props
}
