package services

import "context"

// Message roles accepted by the chat completion backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult carries the full text of one completed chat call and the name of
// the backend that produced it.
type ChatResult struct {
	Content  string
	Provider string
}

// ChatProvider is a single chat completion backend. Implementations must
// respect ctx cancellation and return either the complete response text or an
// error, never a partial response.
type ChatProvider interface {
	Name() string
	Chat(ctx context.Context, messages []Message) (string, error)
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
