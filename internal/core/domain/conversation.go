package domain

// Conversation is an ordered exchange of messages held by the platform.
type Conversation struct {
	// ID is the platform-assigned identifier.
	ID string

	// Name is the human-readable conversation name.
	Name string

	// Messages are in chronological order.
	Messages []Message
}

// Message is one turn of a conversation.
type Message struct {
	// Role is the speaker role (e.g. "USER", "ASSISTANT").
	Role string

	// Text is the message body.
	Text string

	// Citations reference the Content passages the message drew on.
	Citations []Citation
}

// Citation references a Content by id with the cited excerpt.
type Citation struct {
	// ContentID references the cited Content.
	ContentID string

	// Index is the citation marker position within the message.
	Index int

	// Text is the cited excerpt.
	Text string
}
