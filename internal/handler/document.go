package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"chatrelay/internal/config"
	"chatrelay/internal/domain/models"
	"chatrelay/internal/domain/services"
	"chatrelay/internal/httputil"
	"chatrelay/internal/service/document"
)

// DocumentHandler serves the document lifecycle for the session's
// conversation. It also tracks in-flight deletions so a second delete of
// the same id while the first is pending is refused; that is a UI
// affordance, not a correctness guarantee.
type DocumentHandler struct {
	manager        *document.Manager
	conversationID string
	logger         *slog.Logger

	mu       sync.Mutex
	deleting map[string]struct{}
}

// NewDocumentHandler creates a document handler bound to one conversation.
func NewDocumentHandler(manager *document.Manager, conversationID string, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		manager:        manager,
		conversationID: conversationID,
		logger:         logger,
		deleting:       make(map[string]struct{}),
	}
}

// Upload accepts a multipart file and hands it to the manager. The body
// limit sits above the document cap so an oversized candidate still reaches
// validation and produces the proper notification instead of a parse error.
// POST /conversation/documents
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "multipart form must carry a 'file' part")
		return
	}
	defer file.Close()

	doc, err := h.manager.Upload(r.Context(), services.UploadCandidate{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, h.conversationID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// List returns the conversation's documents in backend order.
// GET /conversation/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.manager.List(r.Context(), h.conversationID)
	if err != nil {
		handleError(w, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	httputil.RespondJSON(w, http.StatusOK, docs)
}

// Delete removes one document. A duplicate delete of an id whose first
// delete is still in flight answers 409.
// DELETE /conversation/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("id")
	if docID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document id is required")
		return
	}

	if !h.beginDelete(docID) {
		httputil.RespondError(w, http.StatusConflict, "a delete for this document is already in flight")
		return
	}
	defer h.endDelete(docID)

	if err := h.manager.Delete(r.Context(), docID, h.conversationID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Document deleted successfully",
	})
}

func (h *DocumentHandler) beginDelete(docID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, inFlight := h.deleting[docID]; inFlight {
		return false
	}
	h.deleting[docID] = struct{}{}
	return true
}

func (h *DocumentHandler) endDelete(docID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.deleting, docID)
}
