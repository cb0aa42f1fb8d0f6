package models

// ConversationTurn represents a single message in a conversation transcript
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ResponsePayload is a canned answer produced by the classifier. TestRefs,
// if present, are catalog test identifiers the presentation layer resolves
// into recommendation cards.
type ResponsePayload struct {
	Message  string   `json:"message"`
	TestRefs []string `json:"testRefs,omitempty"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Messages     []ConversationTurn `json:"messages"`
	SystemPrompt string             `json:"systemPrompt,omitempty"`
}

// ChatReply is the success body of POST /chat
type ChatReply struct {
	Reply string `json:"reply"`
}
