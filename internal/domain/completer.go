package domain

import "context"

// Chat message roles understood by the completion capability.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a chat completion request.
type Message struct {
	Role    string
	Content string
}

// Completer is the text generation capability consumed by the translator and
// the summary generator. Errors carry the provider status and detail text.
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
}
