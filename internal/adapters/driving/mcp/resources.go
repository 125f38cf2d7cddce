package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/lattice-mcp/internal/format"
	"github.com/custodia-labs/lattice-mcp/internal/logger"
)

// usageDuration is the fixed lookback window for the project resource.
const usageDuration = "P1D"

// registerResources registers all resource handlers with the MCP server.
// Each entity space gets a bare-scheme listing resource and a template for
// dereferencing one entity by id.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         "contents://",
		Name:        "contents",
		Description: "All ingested contents",
		MIMEType:    "application/json",
	}, s.handleContentsList)
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "contents://{id}",
		Name:        "content",
		Description: "One ingested content, formatted as markdown",
		MIMEType:    "text/markdown",
	}, s.handleContentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "feeds://",
		Name:        "feeds",
		Description: "All configured feeds",
		MIMEType:    "application/json",
	}, s.handleFeedsList)
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "feeds://{id}",
		Name:        "feed",
		Description: "One feed with its ingestion state",
		MIMEType:    "application/json",
	}, s.handleFeedResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "collections://",
		Name:        "collections",
		Description: "All collections",
		MIMEType:    "application/json",
	}, s.handleCollectionsList)
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "collections://{id}",
		Name:        "collection",
		Description: "One collection with its member references",
		MIMEType:    "text/markdown",
	}, s.handleCollectionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "conversations://",
		Name:        "conversations",
		Description: "All conversations",
		MIMEType:    "application/json",
	}, s.handleConversationsList)
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "conversations://{id}",
		Name:        "conversation",
		Description: "One conversation transcript with citations",
		MIMEType:    "text/markdown",
	}, s.handleConversationResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "workflows://",
		Name:        "workflows",
		Description: "All workflow presets",
		MIMEType:    "application/json",
	}, s.handleWorkflowsList)
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "workflows://{id}",
		Name:        "workflow",
		Description: "One workflow preset",
		MIMEType:    "application/json",
	}, s.handleWorkflowResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "specifications://",
		Name:        "specifications",
		Description: "All model specification presets",
		MIMEType:    "application/json",
	}, s.handleSpecificationsList)
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "specifications://{id}",
		Name:        "specification",
		Description: "One model specification preset",
		MIMEType:    "application/json",
	}, s.handleSpecificationResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "projects://",
		Name:        "project",
		Description: "The tenant project with daily credit and token usage",
		MIMEType:    "application/json",
	}, s.handleProjectResource)
}

// listEntry is one row of a bare-scheme listing.
type listEntry struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// listResult renders entries as a JSON resource. Resources degrade to an
// empty array on remote failure instead of erroring; tools are the surface
// that reports failures.
func listResult(uri string, entries []listEntry, err error) (*mcp.ReadResourceResult, error) {
	text := "[]"
	if err != nil {
		logger.Warn("listing %s: %v", uri, err)
	} else if len(entries) > 0 {
		data, merr := json.MarshalIndent(entries, "", "  ")
		if merr == nil {
			text = string(data)
		}
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// textResource wraps text in a single-block resource result. Failures
// degrade to empty text.
func textResource(uri, mimeType, text string, err error) (*mcp.ReadResourceResult, error) {
	if err != nil {
		logger.Warn("reading %s: %v", uri, err)
		text = ""
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}, nil
}

// resourceID extracts the id from a URI like contents://{id}.
func resourceID(uri, scheme string) string {
	prefix := scheme + "://"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}

func (s *Server) handleContentsList(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	client := s.ports.Platform.NewClient()

	contents, err := client.QueryContents(ctx, contentsListFilter())
	entries := make([]listEntry, 0, len(contents))
	for _, c := range contents {
		name := c.Name
		if c.FileName != "" {
			name = c.FileName
		}
		entries = append(entries, listEntry{Name: name, URI: "contents://" + c.ID})
	}
	return listResult(req.Params.URI, entries, err)
}

func (s *Server) handleContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := resourceID(req.Params.URI, "contents")
	client := s.ports.Platform.NewClient()

	content, err := client.GetContent(ctx, id)
	if err != nil {
		return textResource(req.Params.URI, "text/markdown", "", err)
	}

	result, _ := textResource(req.Params.URI, "text/markdown", format.Content(content), nil)

	// Image content gets a second blob block when fetchable.
	if content.FileType == domain.FileTypeImage && s.ports.Blobs != nil {
		if uri := imageURI(content); uri != "" {
			blob, berr := s.ports.Blobs.Fetch(ctx, uri)
			if berr != nil {
				logger.Warn("fetching image %s: %v", uri, berr)
			} else {
				result.Contents = append(result.Contents, &mcp.ResourceContents{
					URI:      req.Params.URI,
					MIMEType: http.DetectContentType(blob),
					Blob:     blob,
				})
			}
		}
	}

	return result, nil
}

func imageURI(c *domain.Content) string {
	if c.ImageURI != "" {
		return c.ImageURI
	}
	return c.MasterURI
}

func (s *Server) handleFeedsList(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	client := s.ports.Platform.NewClient()

	feeds, err := client.QueryFeeds(ctx, "", 0)
	entries := make([]listEntry, 0, len(feeds))
	for _, f := range feeds {
		entries = append(entries, listEntry{Name: f.Name, URI: "feeds://" + f.ID})
	}
	return listResult(req.Params.URI, entries, err)
}

func (s *Server) handleFeedResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := resourceID(req.Params.URI, "feeds")
	client := s.ports.Platform.NewClient()

	feed, err := client.GetFeed(ctx, id)
	if err != nil {
		return textResource(req.Params.URI, "application/json", "", err)
	}

	rows := feedRows([]domain.Feed{*feed})
	data, err := json.MarshalIndent(rows[0], "", "  ")
	return textResource(req.Params.URI, "application/json", string(data), err)
}

func (s *Server) handleCollectionsList(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	client := s.ports.Platform.NewClient()

	collections, err := client.QueryCollections(ctx, "", 0)
	entries := make([]listEntry, 0, len(collections))
	for _, c := range collections {
		entries = append(entries, listEntry{Name: c.Name, URI: "collections://" + c.ID})
	}
	return listResult(req.Params.URI, entries, err)
}

func (s *Server) handleCollectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := resourceID(req.Params.URI, "collections")
	client := s.ports.Platform.NewClient()

	collection, err := client.GetCollection(ctx, id)
	if err != nil {
		return textResource(req.Params.URI, "text/markdown", "", err)
	}
	return textResource(req.Params.URI, "text/markdown", format.Collection(collection), nil)
}

func (s *Server) handleConversationsList(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	client := s.ports.Platform.NewClient()

	conversations, err := client.QueryConversations(ctx, "", 0)
	entries := make([]listEntry, 0, len(conversations))
	for _, c := range conversations {
		entries = append(entries, listEntry{Name: c.Name, URI: "conversations://" + c.ID})
	}
	return listResult(req.Params.URI, entries, err)
}

func (s *Server) handleConversationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := resourceID(req.Params.URI, "conversations")
	client := s.ports.Platform.NewClient()

	conversation, err := client.GetConversation(ctx, id)
	if err != nil {
		return textResource(req.Params.URI, "text/markdown", "", err)
	}
	return textResource(req.Params.URI, "text/markdown", format.Conversation(conversation), nil)
}

func (s *Server) handleWorkflowsList(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	client := s.ports.Platform.NewClient()

	workflows, err := client.QueryWorkflows(ctx, 0)
	entries := make([]listEntry, 0, len(workflows))
	for _, w := range workflows {
		entries = append(entries, listEntry{Name: w.Name, URI: "workflows://" + w.ID})
	}
	return listResult(req.Params.URI, entries, err)
}

func (s *Server) handleWorkflowResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := resourceID(req.Params.URI, "workflows")
	client := s.ports.Platform.NewClient()

	workflow, err := client.GetWorkflow(ctx, id)
	if err != nil {
		return textResource(req.Params.URI, "application/json", "", err)
	}

	data, err := json.MarshalIndent(map[string]string{
		"id":   workflow.ID,
		"name": workflow.Name,
	}, "", "  ")
	return textResource(req.Params.URI, "application/json", string(data), err)
}

func (s *Server) handleSpecificationsList(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	client := s.ports.Platform.NewClient()

	specifications, err := client.QuerySpecifications(ctx, 0)
	entries := make([]listEntry, 0, len(specifications))
	for _, sp := range specifications {
		entries = append(entries, listEntry{Name: sp.Name, URI: "specifications://" + sp.ID})
	}
	return listResult(req.Params.URI, entries, err)
}

func (s *Server) handleSpecificationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := resourceID(req.Params.URI, "specifications")
	client := s.ports.Platform.NewClient()

	specification, err := client.GetSpecification(ctx, id)
	if err != nil {
		return textResource(req.Params.URI, "application/json", "", err)
	}

	data, err := json.MarshalIndent(map[string]string{
		"id":          specification.ID,
		"name":        specification.Name,
		"serviceType": specification.ServiceType,
	}, "", "  ")
	return textResource(req.Params.URI, "application/json", string(data), err)
}

// handleProjectResource is the projects:// singleton: the project record
// plus daily credit and token usage in one JSON document.
func (s *Server) handleProjectResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	client := s.ports.Platform.NewClient()

	project, err := client.GetProject(ctx)
	if err != nil {
		return textResource(req.Params.URI, "application/json", "", err)
	}

	doc := map[string]any{
		"id":     project.ID,
		"name":   project.Name,
		"region": project.Region,
	}
	if !project.CreationDate.IsZero() {
		doc["creationDate"] = project.CreationDate.Format(time.RFC3339)
	}

	if credits, cerr := client.LookupCredits(ctx, usageDuration); cerr != nil {
		logger.Warn("looking up credits: %v", cerr)
	} else {
		doc["credits"] = map[string]float64{
			"credits":    credits.Credits,
			"storage":    credits.StorageGB,
			"embeddings": credits.Embeddings,
			"completion": credits.Completion,
		}
	}

	if usage, uerr := client.LookupUsage(ctx, usageDuration); uerr != nil {
		logger.Warn("looking up usage: %v", uerr)
	} else {
		doc["usage"] = map[string]int{
			"promptTokens":     usage.PromptTokens,
			"completionTokens": usage.CompletionTokens,
			"embeddingTokens":  usage.EmbeddingTokens,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	return textResource(req.Params.URI, "application/json", string(data), err)
}

// contentsListFilter caps the listing so a large tenant does not flood the
// resource. Dereference individual contents for detail.
func contentsListFilter() driven.ContentFilter {
	return driven.ContentFilter{Limit: 100}
}
