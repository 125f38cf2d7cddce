package platform

import (
	"context"
	"time"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

// contentFields is the selection set shared by content queries.
const contentFields = `
    id
    type
    fileType
    name
    fileName
    uri
    masterUri
    imageUri
    audioUri
    creationDate
    originalDate
    issue { title identifier type project team status priority labels }
    email {
      subject sensitivity priority importance labels
      to { name email } from { name email } cc { name email } bcc { name email }
    }
    document { title author }
    audio { title author episode series }
    image { description software make model }
    collections { id name }
    parent { id name }
    children { id name }
    links { linkType uri }
    observations { type observable { id name } }
    pages { index chunks { index text } }
    segments { startTime endTime text }
    frames { index text }
    markdown`

const getContentQuery = `query GetContent($id: ID!) {
  content(id: $id) {` + contentFields + `
  }
}`

const queryContentsQuery = `query QueryContents($filter: ContentFilter) {
  contents(filter: $filter) {
    results { id type fileType name fileName creationDate }
  }
}`

const deleteContentMutation = `mutation DeleteContent($id: ID!) {
  deleteContent(id: $id) { id }
}`

const isContentDoneQuery = `query IsContentDone($id: ID!) {
  isContentDone(id: $id) { result }
}`

const ingestURIMutation = `mutation IngestURI($uri: URL!, $workflow: EntityReferenceInput) {
  ingestUri(uri: $uri, workflow: $workflow) { id }
}`

const ingestTextMutation = `mutation IngestText($name: String!, $text: String!, $textType: TextType) {
  ingestText(name: $name, text: $text, textType: $textType) { id }
}`

const ingestEncodedFileMutation = `mutation IngestEncodedFile($name: String!, $data: String!, $mimeType: String!) {
  ingestEncodedFile(name: $name, data: $data, mimeType: $mimeType) { id }
}`

const screenshotPageMutation = `mutation ScreenshotPage($uri: URL!) {
  screenshotPage(uri: $uri) { id }
}`

const describeImageMutation = `mutation DescribeImage($input: DescribeImageInput!) {
  describeImage(input: $input) { message }
}`

const webSearchQuery = `query WebSearch($text: String!, $service: SearchServiceType) {
  webSearch(text: $text, service: $service) {
    results { title uri text score }
  }
}`

const mapWebQuery = `query MapWeb($uri: URL!) {
  mapWeb(uri: $uri) { results }
}`

const retrieveSourcesQuery = `query RetrieveSources($prompt: String!, $filter: ContentFilter) {
  retrieveSources(prompt: $prompt, filter: $filter) {
    results {
      content { id type fileType name }
      relevance
      metadataText
      text
      pageNumber
      frameNumber
      startTime
      endTime
    }
  }
}`

// refWire is an id/name entity reference.
type refWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type recipientWire struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type contentWire struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	FileType     string `json:"fileType"`
	Name         string `json:"name"`
	FileName     string `json:"fileName"`
	URI          string `json:"uri"`
	MasterURI    string `json:"masterUri"`
	ImageURI     string `json:"imageUri"`
	AudioURI     string `json:"audioUri"`
	CreationDate string `json:"creationDate"`
	OriginalDate string `json:"originalDate"`

	Issue *struct {
		Title      string   `json:"title"`
		Identifier string   `json:"identifier"`
		Type       string   `json:"type"`
		Project    string   `json:"project"`
		Team       string   `json:"team"`
		Status     string   `json:"status"`
		Priority   string   `json:"priority"`
		Labels     []string `json:"labels"`
	} `json:"issue"`

	Email *struct {
		Subject     string          `json:"subject"`
		Sensitivity string          `json:"sensitivity"`
		Priority    string          `json:"priority"`
		Importance  string          `json:"importance"`
		Labels      []string        `json:"labels"`
		To          []recipientWire `json:"to"`
		From        []recipientWire `json:"from"`
		CC          []recipientWire `json:"cc"`
		BCC         []recipientWire `json:"bcc"`
	} `json:"email"`

	Document *struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	} `json:"document"`

	Audio *struct {
		Title   string `json:"title"`
		Author  string `json:"author"`
		Episode string `json:"episode"`
		Series  string `json:"series"`
	} `json:"audio"`

	Image *struct {
		Description string `json:"description"`
		Software    string `json:"software"`
		Make        string `json:"make"`
		Model       string `json:"model"`
	} `json:"image"`

	Collections []refWire `json:"collections"`
	Parent      *refWire  `json:"parent"`
	Children    []refWire `json:"children"`

	Links []struct {
		LinkType string `json:"linkType"`
		URI      string `json:"uri"`
	} `json:"links"`

	Observations []struct {
		Type       string   `json:"type"`
		Observable *refWire `json:"observable"`
	} `json:"observations"`

	Pages []struct {
		Index  int `json:"index"`
		Chunks []struct {
			Index int    `json:"index"`
			Text  string `json:"text"`
		} `json:"chunks"`
	} `json:"pages"`

	Segments []struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Text      string `json:"text"`
	} `json:"segments"`

	Frames []struct {
		Index int    `json:"index"`
		Text  string `json:"text"`
	} `json:"frames"`

	Markdown string `json:"markdown"`
}

func (w *contentWire) toDomain() *domain.Content {
	if w == nil {
		return nil
	}

	c := &domain.Content{
		ID:           w.ID,
		Type:         domain.ContentType(w.Type),
		FileType:     domain.FileType(w.FileType),
		Name:         w.Name,
		FileName:     w.FileName,
		URI:          w.URI,
		MasterURI:    w.MasterURI,
		ImageURI:     w.ImageURI,
		AudioURI:     w.AudioURI,
		CreationDate: parseDate(w.CreationDate),
		OriginalDate: parseDate(w.OriginalDate),
		Markdown:     w.Markdown,
	}

	if w.Issue != nil {
		c.Issue = &domain.IssueMetadata{
			Title:      w.Issue.Title,
			Identifier: w.Issue.Identifier,
			Type:       w.Issue.Type,
			Project:    w.Issue.Project,
			Team:       w.Issue.Team,
			Status:     w.Issue.Status,
			Priority:   w.Issue.Priority,
			Labels:     w.Issue.Labels,
		}
	}

	if w.Email != nil {
		c.Email = &domain.EmailMetadata{
			Subject:     w.Email.Subject,
			Sensitivity: w.Email.Sensitivity,
			Priority:    w.Email.Priority,
			Importance:  w.Email.Importance,
			Labels:      w.Email.Labels,
			To:          recipients(w.Email.To),
			From:        recipients(w.Email.From),
			CC:          recipients(w.Email.CC),
			BCC:         recipients(w.Email.BCC),
		}
	}

	if w.Document != nil {
		c.Document = &domain.DocumentMetadata{Title: w.Document.Title, Author: w.Document.Author}
	}
	if w.Audio != nil {
		c.Audio = &domain.AudioMetadata{
			Title:   w.Audio.Title,
			Author:  w.Audio.Author,
			Episode: w.Audio.Episode,
			Series:  w.Audio.Series,
		}
	}
	if w.Image != nil {
		c.Image = &domain.ImageMetadata{
			Description: w.Image.Description,
			Software:    w.Image.Software,
			Make:        w.Image.Make,
			Model:       w.Image.Model,
		}
	}

	for _, ref := range w.Collections {
		c.Collections = append(c.Collections, domain.CollectionRef(ref))
	}
	if w.Parent != nil {
		c.Parent = &domain.ContentRef{ID: w.Parent.ID, Name: w.Parent.Name}
	}
	for _, ref := range w.Children {
		c.Children = append(c.Children, domain.ContentRef(ref))
	}

	for _, link := range w.Links {
		c.Links = append(c.Links, domain.Link{Type: link.LinkType, URI: link.URI})
	}
	for _, obs := range w.Observations {
		o := domain.Observation{Type: domain.ObservableType(obs.Type)}
		if obs.Observable != nil {
			o.Observable = &domain.ObservableRef{ID: obs.Observable.ID, Name: obs.Observable.Name}
		}
		c.Observations = append(c.Observations, o)
	}

	for _, page := range w.Pages {
		p := domain.Page{Index: page.Index}
		for _, chunk := range page.Chunks {
			p.Chunks = append(p.Chunks, domain.Chunk{Index: chunk.Index, Text: chunk.Text})
		}
		c.Pages = append(c.Pages, p)
	}
	for _, seg := range w.Segments {
		c.Segments = append(c.Segments, domain.Segment{
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
			Text:      seg.Text,
		})
	}
	for _, frame := range w.Frames {
		c.Frames = append(c.Frames, domain.Frame{Index: frame.Index, Text: frame.Text})
	}

	return c
}

func recipients(wire []recipientWire) []domain.Recipient {
	out := make([]domain.Recipient, 0, len(wire))
	for _, r := range wire {
		out = append(out, domain.Recipient{Name: r.Name, Address: r.Email})
	}
	return out
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// idResult is the wire shape of mutations that return a created entity.
type idResult struct {
	ID string `json:"id"`
}

// QueryContents lists content summary rows matching the filter.
func (c *Client) QueryContents(ctx context.Context, filter driven.ContentFilter) ([]domain.Content, error) {
	vars := map[string]any{"filter": contentFilterVariables(filter)}

	var out struct {
		Contents struct {
			Results []contentWire `json:"results"`
		} `json:"contents"`
	}
	if err := c.execute(ctx, "QueryContents", queryContentsQuery, vars, &out); err != nil {
		return nil, err
	}

	results := make([]domain.Content, 0, len(out.Contents.Results))
	for i := range out.Contents.Results {
		results = append(results, *out.Contents.Results[i].toDomain())
	}
	return results, nil
}

// GetContent fetches one content record by id.
func (c *Client) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	var out struct {
		Content *contentWire `json:"content"`
	}
	if err := c.execute(ctx, "GetContent", getContentQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.Content == nil {
		return nil, domain.ErrNotFound
	}
	return out.Content.toDomain(), nil
}

// DeleteContent removes one content record.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.execute(ctx, "DeleteContent", deleteContentMutation, map[string]any{"id": id}, nil)
}

// IsContentDone reports whether ingestion of a content has finished.
func (c *Client) IsContentDone(ctx context.Context, id string) (bool, error) {
	var out struct {
		IsContentDone struct {
			Result bool `json:"result"`
		} `json:"isContentDone"`
	}
	if err := c.execute(ctx, "IsContentDone", isContentDoneQuery, map[string]any{"id": id}, &out); err != nil {
		return false, err
	}
	return out.IsContentDone.Result, nil
}

// IngestURI ingests one remote resource, returning the new content id.
func (c *Client) IngestURI(ctx context.Context, uri string, opts driven.IngestOptions) (string, error) {
	vars := map[string]any{"uri": uri}
	if opts.Workflow != "" {
		vars["workflow"] = map[string]any{"id": opts.Workflow}
	}

	var out struct {
		IngestURI idResult `json:"ingestUri"`
	}
	if err := c.execute(ctx, "IngestURI", ingestURIMutation, vars, &out); err != nil {
		return "", err
	}
	return out.IngestURI.ID, nil
}

// IngestText ingests raw text, returning the new content id.
func (c *Client) IngestText(ctx context.Context, name, text string, textType driven.TextType) (string, error) {
	vars := map[string]any{"name": name, "text": text}
	if textType != "" {
		vars["textType"] = string(textType)
	}

	var out struct {
		IngestText idResult `json:"ingestText"`
	}
	if err := c.execute(ctx, "IngestText", ingestTextMutation, vars, &out); err != nil {
		return "", err
	}
	return out.IngestText.ID, nil
}

// IngestEncodedFile ingests one base64-encoded file, returning the new
// content id.
func (c *Client) IngestEncodedFile(ctx context.Context, name, data, mimeType string) (string, error) {
	vars := map[string]any{"name": name, "data": data, "mimeType": mimeType}

	var out struct {
		IngestEncodedFile idResult `json:"ingestEncodedFile"`
	}
	if err := c.execute(ctx, "IngestEncodedFile", ingestEncodedFileMutation, vars, &out); err != nil {
		return "", err
	}
	return out.IngestEncodedFile.ID, nil
}

// ScreenshotPage captures a page screenshot server-side, returning the new
// content id.
func (c *Client) ScreenshotPage(ctx context.Context, uri string) (string, error) {
	var out struct {
		ScreenshotPage idResult `json:"screenshotPage"`
	}
	if err := c.execute(ctx, "ScreenshotPage", screenshotPageMutation, map[string]any{"uri": uri}, &out); err != nil {
		return "", err
	}
	return out.ScreenshotPage.ID, nil
}

// DescribeImageURL asks the platform's vision model about an image by URL.
func (c *Client) DescribeImageURL(ctx context.Context, prompt, uri string) (string, error) {
	return c.describeImage(ctx, map[string]any{"prompt": prompt, "uri": uri})
}

// DescribeImageContent asks the platform's vision model about an already
// ingested image content.
func (c *Client) DescribeImageContent(ctx context.Context, prompt, id string) (string, error) {
	return c.describeImage(ctx, map[string]any{"prompt": prompt, "contentId": id})
}

func (c *Client) describeImage(ctx context.Context, input map[string]any) (string, error) {
	var out struct {
		DescribeImage struct {
			Message string `json:"message"`
		} `json:"describeImage"`
	}
	if err := c.execute(ctx, "DescribeImage", describeImageMutation, map[string]any{"input": input}, &out); err != nil {
		return "", err
	}
	return out.DescribeImage.Message, nil
}

// WebSearch runs a web search through the platform's search providers.
func (c *Client) WebSearch(ctx context.Context, search string, service driven.SearchService) ([]driven.WebSearchResult, error) {
	vars := map[string]any{"text": search}
	if service != "" {
		vars["service"] = string(service)
	}

	var out struct {
		WebSearch struct {
			Results []struct {
				Title string  `json:"title"`
				URI   string  `json:"uri"`
				Text  string  `json:"text"`
				Score float64 `json:"score"`
			} `json:"results"`
		} `json:"webSearch"`
	}
	if err := c.execute(ctx, "WebSearch", webSearchQuery, vars, &out); err != nil {
		return nil, err
	}

	results := make([]driven.WebSearchResult, 0, len(out.WebSearch.Results))
	for _, r := range out.WebSearch.Results {
		results = append(results, driven.WebSearchResult{
			Title: r.Title,
			URI:   r.URI,
			Text:  r.Text,
			Score: r.Score,
		})
	}
	return results, nil
}

// MapWeb enumerates the URLs reachable from a site without ingesting them.
func (c *Client) MapWeb(ctx context.Context, uri string) ([]string, error) {
	var out struct {
		MapWeb struct {
			Results []string `json:"results"`
		} `json:"mapWeb"`
	}
	if err := c.execute(ctx, "MapWeb", mapWebQuery, map[string]any{"uri": uri}, &out); err != nil {
		return nil, err
	}
	return out.MapWeb.Results, nil
}

// RetrieveSources runs a retrieval query and returns ranked fragments.
func (c *Client) RetrieveSources(ctx context.Context, opts driven.RetrieveOptions) ([]domain.Source, error) {
	filter := map[string]any{}
	if opts.InLast != "" {
		filter["inLast"] = opts.InLast
	}
	if opts.ContentType != "" {
		filter["type"] = string(opts.ContentType)
	}
	if opts.FileType != "" {
		filter["fileType"] = string(opts.FileType)
	}
	if len(opts.Feeds) > 0 {
		filter["feeds"] = entityRefs(opts.Feeds)
	}
	if len(opts.Collections) > 0 {
		filter["collections"] = entityRefs(opts.Collections)
	}

	vars := map[string]any{"prompt": opts.Prompt}
	if len(filter) > 0 {
		vars["filter"] = filter
	}

	var out struct {
		RetrieveSources struct {
			Results []struct {
				Content      refTypeWire `json:"content"`
				Relevance    float64     `json:"relevance"`
				MetadataText string      `json:"metadataText"`
				Text         string      `json:"text"`
				PageNumber   int         `json:"pageNumber"`
				FrameNumber  int         `json:"frameNumber"`
				StartTime    string      `json:"startTime"`
				EndTime      string      `json:"endTime"`
			} `json:"results"`
		} `json:"retrieveSources"`
	}
	if err := c.execute(ctx, "RetrieveSources", retrieveSourcesQuery, vars, &out); err != nil {
		return nil, err
	}

	sources := make([]domain.Source, 0, len(out.RetrieveSources.Results))
	for _, r := range out.RetrieveSources.Results {
		sources = append(sources, domain.Source{
			ContentID:      r.Content.ID,
			Type:           domain.ContentType(r.Content.Type),
			FileType:       domain.FileType(r.Content.FileType),
			Name:           r.Content.Name,
			RelevanceScore: r.Relevance,
			MetadataText:   r.MetadataText,
			Text:           r.Text,
			PageNumber:     r.PageNumber,
			FrameNumber:    r.FrameNumber,
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
		})
	}
	return sources, nil
}

// refTypeWire is a content reference with type discriminators.
type refTypeWire struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	FileType string `json:"fileType"`
	Name     string `json:"name"`
}

func contentFilterVariables(filter driven.ContentFilter) map[string]any {
	vars := map[string]any{}
	if filter.Name != "" {
		vars["name"] = filter.Name
	}
	if filter.Type != "" {
		vars["type"] = string(filter.Type)
	}
	if filter.FileType != "" {
		vars["fileType"] = string(filter.FileType)
	}
	if filter.InLast != "" {
		vars["inLast"] = filter.InLast
	}
	if filter.Limit > 0 {
		vars["limit"] = filter.Limit
	}
	return vars
}

func entityRefs(ids []string) []map[string]any {
	refs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, map[string]any{"id": id})
	}
	return refs
}
