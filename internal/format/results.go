package format

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

// Attr is one result attribute. Keys are declared in camelCase and
// converted to kebab-case at render time; attributes with empty values are
// omitted.
type Attr struct {
	Key   string
	Value string
}

// Result is one row of a markup document: an ordered attribute list plus
// an optional body of metadata and matched text. Body fields never appear
// as attributes.
type Result struct {
	Attrs    []Attr
	Metadata string
	Text     string
}

// Results renders rows as a <results> document, one <result> element per
// row, preserving input order. Attribute values are written verbatim:
// the consumer is a controlled client, so no escaping is applied. That is
// a known fragility of the format, kept for compatibility.
func Results(results []Result) string {
	var b strings.Builder
	b.WriteString("<results>\n")

	for _, r := range results {
		b.WriteString("<result")
		for _, attr := range r.Attrs {
			if attr.Value == "" {
				continue
			}
			b.WriteString(" ")
			b.WriteString(KebabCase(attr.Key))
			b.WriteString(`="`)
			b.WriteString(attr.Value)
			b.WriteString(`"`)
		}
		b.WriteString(">")

		var body []string
		if r.Metadata != "" {
			body = append(body, r.Metadata)
		}
		if r.Text != "" {
			body = append(body, r.Text)
		}
		b.WriteString(strings.Join(body, "\n"))

		b.WriteString("</result>\n")
	}

	b.WriteString("</results>")
	return b.String()
}

// KebabCase converts a camelCase key to kebab-case: each upper-case rune
// becomes a hyphen plus its lower-case form.
func KebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SourceResult maps a retrieval fragment to a markup row. The matched
// text and metadata go to the body; locators and identity go to
// attributes, skipped when absent.
func SourceResult(s domain.Source) Result {
	attrs := []Attr{
		{Key: "contentId", Value: s.ContentID},
		{Key: "type", Value: string(s.Type)},
		{Key: "fileType", Value: string(s.FileType)},
		{Key: "name", Value: s.Name},
		{Key: "relevanceScore", Value: floatAttr(s.RelevanceScore)},
		{Key: "pageNumber", Value: positiveIntAttr(s.PageNumber)},
		{Key: "frameNumber", Value: positiveIntAttr(s.FrameNumber)},
		{Key: "startTime", Value: s.StartTime},
		{Key: "endTime", Value: s.EndTime},
	}

	return Result{
		Attrs:    attrs,
		Metadata: s.MetadataText,
		Text:     s.Text,
	}
}

// ContentResult maps a content listing row to a markup row. Only summary
// identity fields become attributes; bodies are not inlined in listings.
func ContentResult(c domain.Content) Result {
	return Result{
		Attrs: []Attr{
			{Key: "id", Value: c.ID},
			{Key: "type", Value: string(c.Type)},
			{Key: "fileType", Value: string(c.FileType)},
			{Key: "fileName", Value: c.FileName},
			{Key: "name", Value: c.Name},
			{Key: "creationDate", Value: dateString(c.CreationDate)},
		},
	}
}

func floatAttr(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func positiveIntAttr(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
