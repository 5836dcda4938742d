package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"chatrelay/internal/domain"
	"chatrelay/internal/domain/models"
	"chatrelay/internal/domain/services"
)

// Gateway is the only component that knows the backend's network location.
// It issues typed requests against the backend and normalizes every failure,
// remote or transport, into a *domain.RemoteError with a single reason string.
type Gateway struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// New creates a gateway for the given backend base address. The address is
// resolved once at process start; there is no re-resolution or failover.
func New(baseURL string, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger,
	}
}

// Chat issues one chat turn. The backend sometimes answers a failed turn
// with a non-JSON body; a success status with an unparseable body is still
// a failed turn for the caller, with the raw text as the reason.
func (g *Gateway) Chat(ctx context.Context, req services.ChatRequest) (*services.ChatReply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	status, body, err := g.do(ctx, http.MethodPost, "/chat", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &domain.RemoteError{Status: status, Reason: reasonFromBody(status, body)}
	}

	var reply services.ChatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, &domain.RemoteError{Status: status, Reason: strings.TrimSpace(string(body))}
	}
	return &reply, nil
}

// UploadPDF submits file bytes and the owning conversation id as a
// multipart payload. Validation is the DocumentManager's job; by the time a
// candidate reaches the gateway it is assumed acceptable.
func (g *Gateway) UploadPDF(ctx context.Context, candidate services.UploadCandidate, conversationID string) (*services.UploadResult, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", candidate.Filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart payload: %w", err)
	}
	if _, err := io.Copy(part, candidate.Content); err != nil {
		return nil, fmt.Errorf("read upload candidate: %w", err)
	}
	if err := form.WriteField("conversation_id", conversationID); err != nil {
		return nil, fmt.Errorf("build multipart payload: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build multipart payload: %w", err)
	}

	status, body, err := g.do(ctx, http.MethodPost, "/upload-pdf", &buf, form.FormDataContentType())
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &domain.RemoteError{Status: status, Reason: reasonFromBody(status, body)}
	}

	var payload struct {
		DocID       string `json:"doc_id"`
		Filename    string `json:"filename"`
		UploadDate  string `json:"upload_date"`
		TotalChunks int    `json:"total_chunks"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &domain.RemoteError{Status: status, Reason: "malformed upload response from backend"}
	}

	return &services.UploadResult{
		Document: models.Document{
			DocID:       payload.DocID,
			Filename:    payload.Filename,
			UploadDate:  payload.UploadDate,
			TotalChunks: payload.TotalChunks,
		},
		Message: payload.Message,
	}, nil
}

// ListDocuments returns the document set for a conversation in the order the
// backend gives it; no client-side re-sorting is imposed.
func (g *Gateway) ListDocuments(ctx context.Context, conversationID string) ([]models.Document, error) {
	path := "/documents?conversation_id=" + url.QueryEscape(conversationID)
	status, body, err := g.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &domain.RemoteError{Status: status, Reason: reasonFromBody(status, body)}
	}

	var payload struct {
		Documents []models.Document `json:"documents"`
		Count     int               `json:"count"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &domain.RemoteError{Status: status, Reason: "malformed document list from backend"}
	}
	return payload.Documents, nil
}

// DeleteDocument requests removal of a document. Deleting an unknown or
// already-deleted id is a backend-reported error, not a no-op success.
func (g *Gateway) DeleteDocument(ctx context.Context, docID, conversationID string) error {
	path := "/documents/" + url.PathEscape(docID) + "?conversation_id=" + url.QueryEscape(conversationID)
	status, body, err := g.do(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	if status >= 300 {
		return &domain.RemoteError{Status: status, Reason: reasonFromBody(status, body)}
	}
	return nil
}

// do performs one backend round-trip and reads the body as text first, so
// callers can decide how to interpret it. Transport failures come back as a
// RemoteError with Status 0.
func (g *Gateway) do(ctx context.Context, method, path string, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build backend request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("backend unreachable", "method", method, "path", path, "error", err)
		return 0, nil, &domain.RemoteError{Reason: "backend unreachable: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &domain.RemoteError{Reason: "read backend response: " + err.Error()}
	}
	return resp.StatusCode, raw, nil
}

// reasonFromBody extracts the backend's reason from an error body. The
// backend reports errors as {"detail": ...}; anything else falls back to the
// raw text, then to the status text.
func reasonFromBody(status int, body []byte) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(status)
}
