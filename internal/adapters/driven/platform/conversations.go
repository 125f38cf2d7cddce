package platform

import (
	"context"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

const conversationFields = `
    id
    name
    messages {
      role
      message
      citations { content { id } index text }
    }`

const queryConversationsQuery = `query QueryConversations($filter: ConversationFilter) {
  conversations(filter: $filter) {
    results {` + conversationFields + `
    }
  }
}`

const getConversationQuery = `query GetConversation($id: ID!) {
  conversation(id: $id) {` + conversationFields + `
  }
}`

type conversationWire struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Messages []struct {
		Role      string `json:"role"`
		Message   string `json:"message"`
		Citations []struct {
			Content *refWire `json:"content"`
			Index   int      `json:"index"`
			Text    string   `json:"text"`
		} `json:"citations"`
	} `json:"messages"`
}

func (w *conversationWire) toDomain() *domain.Conversation {
	if w == nil {
		return nil
	}
	c := &domain.Conversation{ID: w.ID, Name: w.Name}
	for _, m := range w.Messages {
		msg := domain.Message{Role: m.Role, Text: m.Message}
		for _, cit := range m.Citations {
			citation := domain.Citation{Index: cit.Index, Text: cit.Text}
			if cit.Content != nil {
				citation.ContentID = cit.Content.ID
			}
			msg.Citations = append(msg.Citations, citation)
		}
		c.Messages = append(c.Messages, msg)
	}
	return c
}

// QueryConversations lists conversations, optionally filtered by name.
func (c *Client) QueryConversations(ctx context.Context, name string, limit int) ([]domain.Conversation, error) {
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
		Conversations struct {
			Results []conversationWire `json:"results"`
		} `json:"conversations"`
	}
	if err := c.execute(ctx, "QueryConversations", queryConversationsQuery, vars, &out); err != nil {
		return nil, err
	}

	results := make([]domain.Conversation, 0, len(out.Conversations.Results))
	for i := range out.Conversations.Results {
		results = append(results, *out.Conversations.Results[i].toDomain())
	}
	return results, nil
}

// GetConversation fetches one conversation with its full message history.
func (c *Client) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var out struct {
		Conversation *conversationWire `json:"conversation"`
	}
	if err := c.execute(ctx, "GetConversation", getConversationQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.Conversation == nil {
		return nil, domain.ErrNotFound
	}
	return out.Conversation.toDomain(), nil
}
