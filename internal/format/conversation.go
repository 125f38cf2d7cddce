package format

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

// Conversation renders one conversation as labeled multi-line text.
// Messages appear in order, each followed by its citations and a
// separator. A nil record renders as the empty string.
func Conversation(c *domain.Conversation) string {
	if c == nil {
		return ""
	}

	lines := []string{"**Conversation ID:** " + c.ID}
	if c.Name != "" {
		lines = append(lines, "**Name:** "+c.Name)
	}

	for _, msg := range c.Messages {
		role := msg.Role
		if role == "" {
			role = "Unknown"
		}
		lines = append(lines, "**"+role+":** "+msg.Text)

		for _, cit := range msg.Citations {
			lines = append(lines, fmt.Sprintf("**Citation [%d]:** contents://%s", cit.Index, cit.ContentID))
			if cit.Text != "" {
				lines = append(lines, cit.Text)
			}
		}

		lines = append(lines, "---", "")
	}

	return strings.Join(lines, "\n")
}
