package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

// readRequest creates a ReadResourceRequest with the given URI.
func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestResourceID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		scheme   string
		expected string
	}{
		{
			name:     "valid content URI",
			uri:      "contents://c-123",
			scheme:   "contents",
			expected: "c-123",
		},
		{
			name:     "wrong scheme",
			uri:      "feeds://f-1",
			scheme:   "contents",
			expected: "",
		},
		{
			name:     "bare scheme",
			uri:      "contents://",
			scheme:   "contents",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			scheme:   "contents",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resourceID(tt.uri, tt.scheme))
		})
	}
}

func TestServer_listResources(t *testing.T) {
	ctx := context.Background()

	t.Run("contents listing prefers file names", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{
			contents: []domain.Content{
				{ID: "c-1", Name: "Report", FileName: "report.pdf"},
				{ID: "c-2", Name: "Landing page"},
			},
		})

		result, err := server.handleContentsList(ctx, readRequest("contents://"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		var entries []listEntry
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "report.pdf", entries[0].Name)
		assert.Equal(t, "contents://c-1", entries[0].URI)
		assert.Equal(t, "Landing page", entries[1].Name)
	})

	t.Run("feed listing maps ids to uris", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{
			feeds: []domain.Feed{{ID: "f-1", Name: "News"}},
		})

		result, err := server.handleFeedsList(ctx, readRequest("feeds://"))

		require.NoError(t, err)
		var entries []listEntry
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "feeds://f-1", entries[0].URI)
	})

	t.Run("remote failure degrades to empty array", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{err: errors.New("unavailable")})

		result, err := server.handleCollectionsList(ctx, readRequest("collections://"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("empty tenant lists empty array", func(t *testing.T) {
		server, _ := newTestServer(t, nil)

		result, err := server.handleWorkflowsList(ctx, readRequest("workflows://"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("renders formatted content", func(t *testing.T) {
		server, client := newTestServer(t, &mockClient{
			content: &domain.Content{
				ID:       "c-1",
				Type:     domain.ContentTypeFile,
				FileType: domain.FileTypeDocument,
				FileName: "report.pdf",
				Markdown: "# Report",
			},
		})

		result, err := server.handleContentResource(ctx, readRequest("contents://c-1"))

		require.NoError(t, err)
		assert.Equal(t, "c-1", client.lastID)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "**Content ID:** c-1")
		assert.Contains(t, result.Contents[0].Text, "# Report")
	})

	t.Run("failure degrades to empty text", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{err: errors.New("gone")})

		result, err := server.handleContentResource(ctx, readRequest("contents://c-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Empty(t, result.Contents[0].Text)
	})

	t.Run("image content gets a blob block", func(t *testing.T) {
		client := &mockClient{
			content: &domain.Content{
				ID:       "c-2",
				Type:     domain.ContentTypeFile,
				FileType: domain.FileTypeImage,
				FileName: "chart.png",
				ImageURI: "https://files.lattice.dev/c-2.png",
			},
		}
		blobs := &mockBlobFetcher{blob: []byte("\x89PNG\r\n\x1a\nrest")}
		server, err := NewServer(&Ports{
			Platform:    &mockFactory{client: client},
			Credentials: &mockCredentials{},
			Blobs:       blobs,
		})
		require.NoError(t, err)

		result, err := server.handleContentResource(ctx, readRequest("contents://c-2"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 2)
		assert.Equal(t, "https://files.lattice.dev/c-2.png", blobs.lastURI)
		assert.Equal(t, "image/png", result.Contents[1].MIMEType)
		assert.NotEmpty(t, result.Contents[1].Blob)
	})

	t.Run("blob fetch failure keeps the text block", func(t *testing.T) {
		client := &mockClient{
			content: &domain.Content{
				ID:       "c-2",
				Type:     domain.ContentTypeFile,
				FileType: domain.FileTypeImage,
				ImageURI: "https://files.lattice.dev/c-2.png",
			},
		}
		server, err := NewServer(&Ports{
			Platform:    &mockFactory{client: client},
			Credentials: &mockCredentials{},
			Blobs:       &mockBlobFetcher{err: errors.New("unreachable")},
		})
		require.NoError(t, err)

		result, err := server.handleContentResource(ctx, readRequest("contents://c-2"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "**Content ID:** c-2")
	})

	t.Run("non-image content never fetches blobs", func(t *testing.T) {
		client := &mockClient{
			content: &domain.Content{
				ID:       "c-3",
				Type:     domain.ContentTypePage,
				ImageURI: "https://files.lattice.dev/screenshot.png",
			},
		}
		blobs := &mockBlobFetcher{blob: []byte("data")}
		server, err := NewServer(&Ports{
			Platform:    &mockFactory{client: client},
			Credentials: &mockCredentials{},
			Blobs:       blobs,
		})
		require.NoError(t, err)

		result, err := server.handleContentResource(ctx, readRequest("contents://c-3"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Empty(t, blobs.lastURI)
	})
}

func TestServer_entityResources(t *testing.T) {
	ctx := context.Background()

	t.Run("collection renders member references", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{
			collection: &domain.Collection{
				ID:   "col-1",
				Name: "Reports",
				Contents: []domain.ContentRef{
					{ID: "c-1", Name: "Q1"},
				},
			},
		})

		result, err := server.handleCollectionResource(ctx, readRequest("collections://col-1"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "Reports")
		assert.Contains(t, result.Contents[0].Text, "contents://c-1")
	})

	t.Run("conversation renders transcript", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{
			conversation: &domain.Conversation{
				ID:   "v-1",
				Name: "Support thread",
				Messages: []domain.Message{
					{Role: "User", Text: "Where is the report?"},
				},
			},
		})

		result, err := server.handleConversationResource(ctx, readRequest("conversations://v-1"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "Where is the report?")
	})

	t.Run("feed renders curated json", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{
			feed: &domain.Feed{ID: "f-1", Name: "News", Type: domain.FeedTypeRSS, State: domain.FeedStateEnabled},
		})

		result, err := server.handleFeedResource(ctx, readRequest("feeds://f-1"))

		require.NoError(t, err)
		var row map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &row))
		assert.Equal(t, "RSS", row["type"])
		assert.Equal(t, "Enabled", row["state"])
	})

	t.Run("specification renders service type", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{
			spec: &domain.Specification{ID: "s-1", Name: "Fast", ServiceType: "Anthropic"},
		})

		result, err := server.handleSpecificationResource(ctx, readRequest("specifications://s-1"))

		require.NoError(t, err)
		var row map[string]string
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &row))
		assert.Equal(t, "Anthropic", row["serviceType"])
	})
}

func TestServer_handleProjectResource(t *testing.T) {
	ctx := context.Background()

	t.Run("combines project credits and usage", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{
			project: &domain.Project{ID: "p-1", Name: "Production", Region: "eu-west-1"},
			credits: &domain.Credits{Credits: 12.5, StorageGB: 0.4},
			usage:   &domain.TokenUsage{PromptTokens: 100, CompletionTokens: 50},
		})

		result, err := server.handleProjectResource(ctx, readRequest("projects://"))

		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &doc))
		assert.Equal(t, "p-1", doc["id"])
		assert.Equal(t, "eu-west-1", doc["region"])

		credits := doc["credits"].(map[string]any)
		assert.Equal(t, 12.5, credits["credits"])

		usage := doc["usage"].(map[string]any)
		assert.Equal(t, float64(100), usage["promptTokens"])
	})

	t.Run("project failure degrades to empty", func(t *testing.T) {
		server, _ := newTestServer(t, &mockClient{err: errors.New("unavailable")})

		result, err := server.handleProjectResource(ctx, readRequest("projects://"))

		require.NoError(t, err)
		assert.Empty(t, result.Contents[0].Text)
	})
}
