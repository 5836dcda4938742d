package handler

import (
	"log/slog"
	"net/http"

	"chatrelay/internal/conversation"
	"chatrelay/internal/httputil"
	"chatrelay/internal/service/dispatch"
)

// ConversationHandler serves the orchestration surface for the session's
// single conversation.
type ConversationHandler struct {
	store      *conversation.Store
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewConversationHandler creates a conversation handler.
func NewConversationHandler(store *conversation.Store, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// GetConversation returns the rendered conversation.
// GET /conversation
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.store.Snapshot())
}

// SendMessage runs one chat turn and responds with the assistant message
// that was appended. A failed round-trip is still a 200: the failure is
// embedded in the assistant message, exactly as it is displayed.
// POST /conversation/messages
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message      string `json:"message"`
		UseWebSearch bool   `json:"use_web_search"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mode := dispatch.ModePlain
	if req.UseWebSearch {
		mode = dispatch.ModeWebSearch
	}

	msg, err := h.dispatcher.Send(r.Context(), req.Message, mode)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, msg)
}
