package models

import (
	"github.com/google/uuid"
)

// Role values for conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one entry in a conversation. Immutable once created.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a message with a collision-resistant id. Ids must be
// unique within a conversation even when two messages are created within
// the same clock tick, so no timestamp-derived scheme is used.
func NewMessage(role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
}

// Conversation is a named, ordered message sequence. Message order is
// append order as observed by the store, which is display order.
type Conversation struct {
	ID       string    `json:"id"`
	Busy     bool      `json:"busy"`
	Messages []Message `json:"messages"`
}
