package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

// Truncation bounds for repeated line groups. Link lines get a wider bound
// because link enumeration is the primary value of a crawled page.
const (
	maxListLines = 100
	maxLinkLines = 1000
)

// Content renders one fetched content record as labeled multi-line text.
// Lines appear in a fixed order and are emitted only when the backing
// field is present. A nil record renders as the empty string.
func Content(c *domain.Content) string {
	if c == nil {
		return ""
	}

	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, "**"+label+":** "+value)
		}
	}

	lines = append(lines, "**Content ID:** "+c.ID)

	if c.Type == domain.ContentTypeFile {
		add("File Type", bracketed(string(c.FileType)))
		add("File Name", c.FileName)
	} else {
		add("Type", bracketed(string(c.Type)))
		// Page and email names duplicate the URL and subject; skip them.
		if c.Type != domain.ContentTypePage && c.Type != domain.ContentTypeEmail {
			add("Name", c.Name)
		}
	}

	// The raw source URI is internal plumbing and is deliberately not
	// rendered; only downloadable locations are.
	add("Master URL", c.MasterURI)
	add("Image URL", c.ImageURI)
	add("Audio URL", c.AudioURI)

	add("Ingestion Date", dateString(c.CreationDate))
	add("Author Date", dateString(c.OriginalDate))

	if issue := c.Issue; issue != nil {
		add("Title", issue.Title)
		add("Identifier", issue.Identifier)
		add("Issue Type", issue.Type)
		add("Project", issue.Project)
		add("Team", issue.Team)
		add("Status", issue.Status)
		add("Priority", issue.Priority)
		add("Labels", strings.Join(issue.Labels, ", "))
	}

	if email := c.Email; email != nil {
		add("Subject", email.Subject)
		add("Sensitivity", email.Sensitivity)
		add("Priority", email.Priority)
		add("Importance", email.Importance)
		add("Labels", strings.Join(email.Labels, ", "))
		add("To", recipientList(email.To))
		add("From", recipientList(email.From))
		add("CC", recipientList(email.CC))
		add("BCC", recipientList(email.BCC))
	}

	if doc := c.Document; doc != nil {
		add("Title", doc.Title)
		add("Author", doc.Author)
	}

	if audio := c.Audio; audio != nil {
		add("Title", audio.Title)
		add("Host", audio.Author)
		add("Episode", audio.Episode)
		add("Series", audio.Series)
	}

	if image := c.Image; image != nil {
		add("Description", image.Description)
		add("Software", image.Software)
		add("Make", image.Make)
		add("Model", image.Model)
	}

	for _, ref := range truncate(c.Collections, maxListLines) {
		add("Collection", fmt.Sprintf("%s (collections://%s)", ref.Name, ref.ID))
	}

	if c.Parent != nil {
		add("Parent", "contents://"+c.Parent.ID)
	}

	for _, ref := range truncate(c.Children, maxListLines) {
		add("Child", "contents://"+ref.ID)
	}

	if c.Type == domain.ContentTypePage {
		for _, link := range truncate(c.Links, maxLinkLines) {
			add(link.Type+" Link", link.URI)
		}
	}

	for _, obs := range truncate(c.Observations, maxListLines) {
		if obs.Observable == nil {
			continue
		}
		kind := strings.ToLower(string(obs.Type)) + "s"
		add(string(obs.Type)+" Observation", kind+"://"+obs.Observable.ID)
	}

	lines = append(lines, bodyLines(c)...)

	return strings.Join(lines, "\n")
}

// bodyLines renders the content body. The structured representations are
// checked in a fixed precedence order; the flat markdown field applies
// only when none of them is present.
func bodyLines(c *domain.Content) []string {
	var lines []string

	switch {
	case len(c.Pages) > 0:
		for _, page := range c.Pages {
			if len(page.Chunks) == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("**Page #%d:**", page.Index+1))
			for _, chunk := range page.Chunks {
				if chunk.Text != "" {
					lines = append(lines, chunk.Text)
				}
			}
			lines = append(lines, "---", "")
		}
	case len(c.Segments) > 0:
		for _, seg := range c.Segments {
			lines = append(lines, fmt.Sprintf("**Transcript Segment [%s-%s]:**", seg.StartTime, seg.EndTime))
			if seg.Text != "" {
				lines = append(lines, seg.Text)
			}
			lines = append(lines, "---", "")
		}
	case len(c.Frames) > 0:
		for _, frame := range c.Frames {
			lines = append(lines, fmt.Sprintf("**Frame #%d:**", frame.Index+1))
			if frame.Text != "" {
				lines = append(lines, frame.Text)
			}
			lines = append(lines, "---", "")
		}
	case c.Markdown != "":
		lines = append(lines, c.Markdown, "")
	}

	return lines
}

// Collection renders one collection, with members as URIs.
func Collection(c *domain.Collection) string {
	if c == nil {
		return ""
	}

	lines := []string{"**Collection ID:** " + c.ID}
	if c.Name != "" {
		lines = append(lines, "**Name:** "+c.Name)
	}
	for _, ref := range truncate(c.Contents, maxListLines) {
		lines = append(lines, "contents://"+ref.ID)
	}

	return strings.Join(lines, "\n")
}

func bracketed(s string) string {
	if s == "" {
		return ""
	}
	return "[" + s + "]"
}

func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func recipientList(recipients []domain.Recipient) string {
	parts := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if s := r.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func truncate[T any](items []T, bound int) []T {
	if len(items) > bound {
		return items[:bound]
	}
	return items
}
