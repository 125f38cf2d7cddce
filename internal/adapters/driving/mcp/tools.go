package mcp

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/lattice-mcp/internal/format"
)

// defaultReadLimit bounds how many items an ingestion reads when the
// caller does not say otherwise.
const defaultReadLimit = 100

// describeImagePrompt is used when the caller omits a prompt.
const describeImagePrompt = "Describe this image in detail."

// RetrieveSourcesInput is the input schema for the retrieveSources tool.
type RetrieveSourcesInput struct {
	Prompt      string   `json:"prompt" jsonschema:"the retrieval prompt to find relevant content"`
	InLast      string   `json:"inLast,omitempty" jsonschema:"ISO-8601 duration bounding content recency, e.g. P7D"`
	ContentType string   `json:"contentType,omitempty" jsonschema:"restrict to one content type, e.g. File, Email, Issue, Page"`
	FileType    string   `json:"fileType,omitempty" jsonschema:"restrict to one file type, e.g. Document, Image, Audio"`
	Feeds       []string `json:"feeds,omitempty" jsonschema:"restrict to content from these feed ids"`
	Collections []string `json:"collections,omitempty" jsonschema:"restrict to content in these collection ids"`
}

// QueryInput is the shared input schema for name-filtered listing tools.
type QueryInput struct {
	Name  string `json:"name,omitempty" jsonschema:"filter by name"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 100)"`
}

// QueryContentsInput is the input schema for the queryContents tool.
type QueryContentsInput struct {
	Name     string `json:"name,omitempty" jsonschema:"filter by name"`
	Type     string `json:"type,omitempty" jsonschema:"filter by content type, e.g. File, Email, Issue, Page"`
	FileType string `json:"fileType,omitempty" jsonschema:"filter by file type, e.g. Document, Image, Audio"`
	InLast   string `json:"inLast,omitempty" jsonschema:"ISO-8601 duration bounding creation date, e.g. P1D"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 100)"`
}

// IDInput is the shared input schema for tools addressing one entity.
type IDInput struct {
	ID string `json:"id" jsonschema:"the entity id"`
}

// CreateCollectionInput is the input schema for the createCollection tool.
type CreateCollectionInput struct {
	Name     string   `json:"name" jsonschema:"the collection name"`
	Contents []string `json:"contents,omitempty" jsonschema:"content ids to add initially"`
}

// CollectionContentsInput is the input schema for collection membership tools.
type CollectionContentsInput struct {
	ID       string   `json:"id" jsonschema:"the collection id"`
	Contents []string `json:"contents" jsonschema:"content ids to add or remove"`
}

// IngestURLInput is the input schema for the ingestUrl tool.
type IngestURLInput struct {
	URL      string `json:"url" jsonschema:"the URL to ingest"`
	Workflow string `json:"workflow,omitempty" jsonschema:"workflow id to apply during ingestion"`
}

// IngestTextInput is the input schema for the ingestText tool.
type IngestTextInput struct {
	Name     string `json:"name" jsonschema:"name for the ingested content"`
	Text     string `json:"text" jsonschema:"the text to ingest"`
	TextType string `json:"textType,omitempty" jsonschema:"format of the text: Markdown, Plain or HTML (default Markdown)"`
}

// IngestFileInput is the input schema for the ingestFile tool.
type IngestFileInput struct {
	FilePath string `json:"filePath" jsonschema:"path of the local file to ingest"`
}

// WebCrawlInput is the input schema for the webCrawl tool.
type WebCrawlInput struct {
	URL       string `json:"url" jsonschema:"the site URL to crawl"`
	ReadLimit int    `json:"readLimit,omitempty" jsonschema:"maximum number of pages to read (default 100)"`
}

// WebSearchInput is the input schema for the webSearch tool.
type WebSearchInput struct {
	Search        string `json:"search" jsonschema:"the web search query"`
	SearchService string `json:"searchService,omitempty" jsonschema:"search provider: Tavily or Exa (default Tavily)"`
}

// URLInput is the shared input schema for tools addressing one URL.
type URLInput struct {
	URL string `json:"url" jsonschema:"the target URL"`
}

// DescribeImageURLInput is the input schema for the describeImageUrl tool.
type DescribeImageURLInput struct {
	URL    string `json:"url" jsonschema:"the image URL to describe"`
	Prompt string `json:"prompt,omitempty" jsonschema:"what to ask about the image"`
}

// DescribeImageContentInput is the input schema for the describeImageContent tool.
type DescribeImageContentInput struct {
	ID     string `json:"id" jsonschema:"the image content id to describe"`
	Prompt string `json:"prompt,omitempty" jsonschema:"what to ask about the image"`
}

// registerTools registers the core tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieveSources",
		Description: "Retrieve relevant content sources from Lattice given a prompt, optionally filtered by recency, type, feeds or collections",
	}, s.handleRetrieveSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "queryContents",
		Description: "List ingested contents, optionally filtered by name, type or recency",
	}, s.handleQueryContents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "queryCollections",
		Description: "List collections, optionally filtered by name",
	}, s.handleQueryCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "queryFeeds",
		Description: "List feeds, optionally filtered by name",
	}, s.handleQueryFeeds)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "queryConversations",
		Description: "List conversations, optionally filtered by name",
	}, s.handleQueryConversations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "createCollection",
		Description: "Create a collection, optionally seeded with content ids",
	}, s.handleCreateCollection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "addContentsToCollection",
		Description: "Add contents to an existing collection",
	}, s.handleAddContentsToCollection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "removeContentsFromCollection",
		Description: "Remove contents from a collection",
	}, s.handleRemoveContentsFromCollection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deleteCollection",
		Description: "Delete a collection; its contents are not deleted",
	}, s.handleDeleteCollection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deleteContent",
		Description: "Delete one ingested content",
	}, s.handleDeleteContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deleteFeed",
		Description: "Delete a feed; already-ingested content is kept",
	}, s.handleDeleteFeed)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "isFeedDone",
		Description: "Check whether a feed has finished ingesting",
	}, s.handleIsFeedDone)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "isContentDone",
		Description: "Check whether an ingested content has finished processing",
	}, s.handleIsContentDone)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestUrl",
		Description: "Ingest a web page or file by URL",
	}, s.handleIngestURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestText",
		Description: "Ingest raw text as named content",
	}, s.handleIngestText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestFile",
		Description: "Ingest a local file by path",
	}, s.handleIngestFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "webCrawl",
		Description: "Crawl a web site and ingest its pages",
	}, s.handleWebCrawl)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "webSearch",
		Description: "Search the web without ingesting results",
	}, s.handleWebSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "webMap",
		Description: "Enumerate the URLs reachable from a web site without ingesting them",
	}, s.handleWebMap)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "screenshotPage",
		Description: "Capture a screenshot of a web page and ingest it",
	}, s.handleScreenshotPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describeImageUrl",
		Description: "Describe an image by URL using the platform's vision model",
	}, s.handleDescribeImageURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describeImageContent",
		Description: "Describe an already-ingested image using the platform's vision model",
	}, s.handleDescribeImageContent)
}

func (s *Server) handleRetrieveSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveSourcesInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	sources, err := client.RetrieveSources(ctx, driven.RetrieveOptions{
		Prompt:      input.Prompt,
		InLast:      input.InLast,
		ContentType: domain.ContentType(input.ContentType),
		FileType:    domain.FileType(input.FileType),
		Feeds:       input.Feeds,
		Collections: input.Collections,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}

	results := make([]format.Result, 0, len(sources))
	for _, src := range sources {
		results = append(results, format.SourceResult(src))
	}
	return textResult(format.Results(results)), nil, nil
}

func (s *Server) handleQueryContents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryContentsInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	contents, err := client.QueryContents(ctx, driven.ContentFilter{
		Name:     input.Name,
		Type:     domain.ContentType(input.Type),
		FileType: domain.FileType(input.FileType),
		InLast:   input.InLast,
		Limit:    input.Limit,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}

	results := make([]format.Result, 0, len(contents))
	for _, c := range contents {
		results = append(results, format.ContentResult(c))
	}
	return textResult(format.Results(results)), nil, nil
}

func (s *Server) handleQueryCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	collections, err := client.QueryCollections(ctx, input.Name, input.Limit)
	if err != nil {
		return errorResult(err), nil, nil
	}

	type row struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	rows := make([]row, 0, len(collections))
	for _, c := range collections {
		rows = append(rows, row{ID: c.ID, Name: c.Name, Count: len(c.Contents)})
	}
	return jsonResult(rows), nil, nil
}

func (s *Server) handleQueryFeeds(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	feeds, err := client.QueryFeeds(ctx, input.Name, input.Limit)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(feedRows(feeds)), nil, nil
}

func (s *Server) handleQueryConversations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	conversations, err := client.QueryConversations(ctx, input.Name, input.Limit)
	if err != nil {
		return errorResult(err), nil, nil
	}

	type row struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Messages int    `json:"messages"`
	}
	rows := make([]row, 0, len(conversations))
	for _, c := range conversations {
		rows = append(rows, row{ID: c.ID, Name: c.Name, Messages: len(c.Messages)})
	}
	return jsonResult(rows), nil, nil
}

func (s *Server) handleCreateCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateCollectionInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	id, err := client.CreateCollection(ctx, input.Name, input.Contents)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{"id": id}), nil, nil
}

func (s *Server) handleAddContentsToCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CollectionContentsInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	if err := client.AddContentsToCollection(ctx, input.ID, input.Contents); err != nil {
		return errorResult(err), nil, nil
	}
	return textResult("Added contents to collection " + input.ID), nil, nil
}

func (s *Server) handleRemoveContentsFromCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CollectionContentsInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	if err := client.RemoveContentsFromCollection(ctx, input.ID, input.Contents); err != nil {
		return errorResult(err), nil, nil
	}
	return textResult("Removed contents from collection " + input.ID), nil, nil
}

func (s *Server) handleDeleteCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	if err := client.DeleteCollection(ctx, input.ID); err != nil {
		return errorResult(err), nil, nil
	}
	return textResult("Deleted collection " + input.ID), nil, nil
}

func (s *Server) handleDeleteContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	if err := client.DeleteContent(ctx, input.ID); err != nil {
		return errorResult(err), nil, nil
	}
	return textResult("Deleted content " + input.ID), nil, nil
}

func (s *Server) handleDeleteFeed(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	if err := client.DeleteFeed(ctx, input.ID); err != nil {
		return errorResult(err), nil, nil
	}
	return textResult("Deleted feed " + input.ID), nil, nil
}

func (s *Server) handleIsFeedDone(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	done, err := client.IsFeedDone(ctx, input.ID)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]bool{"done": done}), nil, nil
}

func (s *Server) handleIsContentDone(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	done, err := client.IsContentDone(ctx, input.ID)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]bool{"done": done}), nil, nil
}

func (s *Server) handleIngestURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestURLInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	id, err := client.IngestURI(ctx, input.URL, driven.IngestOptions{Workflow: input.Workflow})
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{"id": id}), nil, nil
}

func (s *Server) handleIngestText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestTextInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	textType := driven.TextType(input.TextType)
	if textType == "" {
		textType = driven.TextTypeMarkdown
	}

	id, err := client.IngestText(ctx, input.Name, input.Text, textType)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{"id": id}), nil, nil
}

func (s *Server) handleIngestFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestFileInput,
) (*mcp.CallToolResult, any, error) {
	data, err := os.ReadFile(input.FilePath)
	if err != nil {
		return errorResult(err), nil, nil
	}

	client := s.ports.Platform.NewClient()

	name := filepath.Base(input.FilePath)
	encoded := base64.StdEncoding.EncodeToString(data)
	mimeType := http.DetectContentType(data)

	id, err := client.IngestEncodedFile(ctx, name, encoded, mimeType)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{"id": id}), nil, nil
}

func (s *Server) handleWebCrawl(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WebCrawlInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	id, err := client.CreateFeed(ctx, driven.FeedInput{
		Name:      input.URL,
		Type:      domain.FeedTypeWeb,
		ReadLimit: readLimitOrDefault(input.ReadLimit, defaultReadLimit),
		Web:       &driven.WebFeedInput{URI: input.URL},
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{"id": id}), nil, nil
}

func (s *Server) handleWebSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WebSearchInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	service := driven.SearchService(input.SearchService)
	if service == "" {
		service = driven.SearchServiceTavily
	}

	hits, err := client.WebSearch(ctx, input.Search, service)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(hits), nil, nil
}

func (s *Server) handleWebMap(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input URLInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	urls, err := client.MapWeb(ctx, input.URL)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(urls), nil, nil
}

func (s *Server) handleScreenshotPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input URLInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	id, err := client.ScreenshotPage(ctx, input.URL)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]string{"id": id}), nil, nil
}

func (s *Server) handleDescribeImageURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DescribeImageURLInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	prompt := input.Prompt
	if prompt == "" {
		prompt = describeImagePrompt
	}

	message, err := client.DescribeImageURL(ctx, prompt, input.URL)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(message), nil, nil
}

func (s *Server) handleDescribeImageContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DescribeImageContentInput,
) (*mcp.CallToolResult, any, error) {
	client := s.ports.Platform.NewClient()

	prompt := input.Prompt
	if prompt == "" {
		prompt = describeImagePrompt
	}

	message, err := client.DescribeImageContent(ctx, prompt, input.ID)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(message), nil, nil
}

// feedRow is the curated feed projection for listings.
type feedRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	State        string `json:"state"`
	ReadCount    int    `json:"readCount"`
	LastReadDate string `json:"lastReadDate,omitempty"`
	Error        string `json:"error,omitempty"`
}

func feedRows(feeds []domain.Feed) []feedRow {
	rows := make([]feedRow, 0, len(feeds))
	for _, f := range feeds {
		row := feedRow{
			ID:        f.ID,
			Name:      f.Name,
			Type:      string(f.Type),
			State:     string(f.State),
			ReadCount: f.ReadCount,
			Error:     f.Error,
		}
		if !f.LastReadDate.IsZero() {
			row.LastReadDate = f.LastReadDate.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows
}

func readLimitOrDefault(limit, fallback int) int {
	if limit > 0 {
		return limit
	}
	return fallback
}
