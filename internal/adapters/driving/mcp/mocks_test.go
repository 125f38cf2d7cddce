package mcp

import (
	"context"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

// mockFactory hands out one shared mock client so tests can prime replies
// and inspect recorded calls.
type mockFactory struct {
	client *mockClient
}

func (f *mockFactory) NewClient() driven.PlatformClient {
	return f.client
}

// mockClient is a hand-rolled driven.PlatformClient double. Reply fields
// are returned as-is; the last inputs are recorded for assertions.
type mockClient struct {
	err error

	contents      []domain.Content
	content       *domain.Content
	collections   []domain.Collection
	collection    *domain.Collection
	feeds         []domain.Feed
	feed          *domain.Feed
	conversations []domain.Conversation
	conversation  *domain.Conversation
	workflows     []domain.Workflow
	workflow      *domain.Workflow
	specs         []domain.Specification
	spec          *domain.Specification
	project       *domain.Project
	credits       *domain.Credits
	usage         *domain.TokenUsage
	sources       []domain.Source
	searchHits    []driven.WebSearchResult
	mappedURLs    []string
	createdID     string
	done          bool
	message       string

	lastFilter    driven.ContentFilter
	lastRetrieve  driven.RetrieveOptions
	lastFeedInput driven.FeedInput
	lastID        string
	lastContents  []string
}

func (m *mockClient) QueryContents(_ context.Context, filter driven.ContentFilter) ([]domain.Content, error) {
	m.lastFilter = filter
	return m.contents, m.err
}

func (m *mockClient) GetContent(_ context.Context, id string) (*domain.Content, error) {
	m.lastID = id
	return m.content, m.err
}

func (m *mockClient) DeleteContent(_ context.Context, id string) error {
	m.lastID = id
	return m.err
}

func (m *mockClient) IsContentDone(_ context.Context, id string) (bool, error) {
	m.lastID = id
	return m.done, m.err
}

func (m *mockClient) IngestURI(_ context.Context, _ string, _ driven.IngestOptions) (string, error) {
	return m.createdID, m.err
}

func (m *mockClient) IngestText(_ context.Context, _, _ string, _ driven.TextType) (string, error) {
	return m.createdID, m.err
}

func (m *mockClient) IngestEncodedFile(_ context.Context, _, _, _ string) (string, error) {
	return m.createdID, m.err
}

func (m *mockClient) ScreenshotPage(_ context.Context, _ string) (string, error) {
	return m.createdID, m.err
}

func (m *mockClient) DescribeImageURL(_ context.Context, _, _ string) (string, error) {
	return m.message, m.err
}

func (m *mockClient) DescribeImageContent(_ context.Context, _, _ string) (string, error) {
	return m.message, m.err
}

func (m *mockClient) WebSearch(_ context.Context, _ string, _ driven.SearchService) ([]driven.WebSearchResult, error) {
	return m.searchHits, m.err
}

func (m *mockClient) MapWeb(_ context.Context, _ string) ([]string, error) {
	return m.mappedURLs, m.err
}

func (m *mockClient) QueryCollections(_ context.Context, _ string, _ int) ([]domain.Collection, error) {
	return m.collections, m.err
}

func (m *mockClient) GetCollection(_ context.Context, id string) (*domain.Collection, error) {
	m.lastID = id
	return m.collection, m.err
}

func (m *mockClient) CreateCollection(_ context.Context, _ string, contents []string) (string, error) {
	m.lastContents = contents
	return m.createdID, m.err
}

func (m *mockClient) AddContentsToCollection(_ context.Context, id string, contents []string) error {
	m.lastID = id
	m.lastContents = contents
	return m.err
}

func (m *mockClient) RemoveContentsFromCollection(_ context.Context, id string, contents []string) error {
	m.lastID = id
	m.lastContents = contents
	return m.err
}

func (m *mockClient) DeleteCollection(_ context.Context, id string) error {
	m.lastID = id
	return m.err
}

func (m *mockClient) QueryFeeds(_ context.Context, _ string, _ int) ([]domain.Feed, error) {
	return m.feeds, m.err
}

func (m *mockClient) GetFeed(_ context.Context, id string) (*domain.Feed, error) {
	m.lastID = id
	return m.feed, m.err
}

func (m *mockClient) CreateFeed(_ context.Context, input driven.FeedInput) (string, error) {
	m.lastFeedInput = input
	return m.createdID, m.err
}

func (m *mockClient) DeleteFeed(_ context.Context, id string) error {
	m.lastID = id
	return m.err
}

func (m *mockClient) IsFeedDone(_ context.Context, id string) (bool, error) {
	m.lastID = id
	return m.done, m.err
}

func (m *mockClient) QueryConversations(_ context.Context, _ string, _ int) ([]domain.Conversation, error) {
	return m.conversations, m.err
}

func (m *mockClient) GetConversation(_ context.Context, id string) (*domain.Conversation, error) {
	m.lastID = id
	return m.conversation, m.err
}

func (m *mockClient) QueryWorkflows(_ context.Context, _ int) ([]domain.Workflow, error) {
	return m.workflows, m.err
}

func (m *mockClient) GetWorkflow(_ context.Context, id string) (*domain.Workflow, error) {
	m.lastID = id
	return m.workflow, m.err
}

func (m *mockClient) QuerySpecifications(_ context.Context, _ int) ([]domain.Specification, error) {
	return m.specs, m.err
}

func (m *mockClient) GetSpecification(_ context.Context, id string) (*domain.Specification, error) {
	m.lastID = id
	return m.spec, m.err
}

func (m *mockClient) GetProject(_ context.Context) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockClient) LookupCredits(_ context.Context, _ string) (*domain.Credits, error) {
	return m.credits, m.err
}

func (m *mockClient) LookupUsage(_ context.Context, _ string) (*domain.TokenUsage, error) {
	return m.usage, m.err
}

func (m *mockClient) RetrieveSources(_ context.Context, opts driven.RetrieveOptions) ([]domain.Source, error) {
	m.lastRetrieve = opts
	return m.sources, m.err
}

// mockCredentials is a map-backed driven.CredentialStore; a missing
// credential records the request instead of exiting.
type mockCredentials struct {
	values  map[string]string
	missing []string
}

func (m *mockCredentials) Lookup(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

func (m *mockCredentials) Require(names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := m.values[name]
		if !ok {
			m.missing = append(m.missing, name)
		}
		out[name] = v
	}
	return out
}

func (m *mockCredentials) RequireOAuth(prefix string) driven.OAuthCredentials {
	values := m.Require(prefix+"_CLIENT_ID", prefix+"_CLIENT_SECRET", prefix+"_REFRESH_TOKEN")
	return driven.OAuthCredentials{
		ClientID:     values[prefix+"_CLIENT_ID"],
		ClientSecret: values[prefix+"_CLIENT_SECRET"],
		RefreshToken: values[prefix+"_REFRESH_TOKEN"],
	}
}

// mockBlobFetcher is a canned BlobFetcher double.
type mockBlobFetcher struct {
	blob    []byte
	err     error
	lastURI string
}

func (m *mockBlobFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	m.lastURI = uri
	return m.blob, m.err
}

// newTestServer builds a server wired to fresh mocks.
func newTestServer(t interface{ Fatalf(string, ...any) }, client *mockClient) (*Server, *mockClient) {
	if client == nil {
		client = &mockClient{}
	}
	server, err := NewServer(&Ports{
		Platform:    &mockFactory{client: client},
		Credentials: &mockCredentials{values: map[string]string{}},
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server, client
}
