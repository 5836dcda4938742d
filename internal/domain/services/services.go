package services

import (
	"context"
	"io"

	"chatrelay/internal/domain/models"
)

// ChatRequest is the wire request for one chat turn.
type ChatRequest struct {
	Message        string `json:"message"`
	Role           string `json:"role"`
	ConversationID string `json:"conversation_id"`
	UseWebSearch   bool   `json:"use_web_search,omitempty"`
}

// ChatReply is the backend's answer to one chat turn. UsedRAG and UsedSearch
// report how the answer was grounded.
type ChatReply struct {
	Response   string `json:"response"`
	UsedRAG    bool   `json:"used_rag,omitempty"`
	UsedSearch bool   `json:"used_search,omitempty"`
}

// UploadCandidate is a file offered for upload, before any validation.
type UploadCandidate struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// UploadResult is the backend's acknowledgment of a processed upload.
// Message carries the backend's human-readable confirmation, when present.
type UploadResult struct {
	Document models.Document
	Message  string
}

// ChatGateway issues chat turns against the backend.
type ChatGateway interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatReply, error)
}

// DocumentGateway manages backend-indexed documents scoped to a conversation.
type DocumentGateway interface {
	UploadPDF(ctx context.Context, candidate UploadCandidate, conversationID string) (*UploadResult, error)
	ListDocuments(ctx context.Context, conversationID string) ([]models.Document, error)
	DeleteDocument(ctx context.Context, docID, conversationID string) error
}

// Notifier surfaces transient, self-dismissing notifications to the UI.
type Notifier interface {
	Successf(format string, args ...any)
	Errorf(format string, args ...any)
}
