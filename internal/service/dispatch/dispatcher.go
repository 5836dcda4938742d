package dispatch

import (
	"context"
	"log/slog"
	"strings"

	"chatrelay/internal/conversation"
	"chatrelay/internal/domain"
	"chatrelay/internal/domain/models"
	"chatrelay/internal/domain/services"
)

// Mode selects how a chat turn is grounded. Document grounding is not a
// mode: the backend applies it implicitly whenever the conversation has
// uploaded documents, and reports it back in the reply.
type Mode string

const (
	ModePlain     Mode = "plain"
	ModeWebSearch Mode = "web-search"
)

// Provenance markers prepended to displayed answers. Exactly one applies.
const (
	docsPrefix   = "[answered from your documents] "
	searchPrefix = "[answered from web search] "
	errPrefix    = "Error: "
)

// Dispatcher turns user text into a backend chat request and the backend's
// reply into a displayable assistant message.
type Dispatcher struct {
	store   *conversation.Store
	gateway services.ChatGateway
	logger  *slog.Logger
}

// New creates a dispatcher bound to one conversation store.
func New(store *conversation.Store, gateway services.ChatGateway, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:   store,
		gateway: gateway,
		logger:  logger,
	}
}

// Send runs one chat turn: it appends the user message, performs the
// round-trip, and appends exactly one assistant message whatever happens.
// The only error a caller can see is local validation of empty input;
// remote failures are rendered into the conversation as an assistant
// message and never propagate. When sends overlap, assistant replies land
// in completion order, which may differ from submission order.
func (d *Dispatcher) Send(ctx context.Context, text string, mode Mode) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, &domain.ValidationError{Message: "message must not be empty"}
	}

	d.store.Append(models.NewMessage(models.RoleUser, text))
	d.store.SetBusy(true)
	defer d.store.SetBusy(false)

	reply, err := d.gateway.Chat(ctx, services.ChatRequest{
		Message:        text,
		Role:           models.RoleUser,
		ConversationID: d.store.ID(),
		UseWebSearch:   mode == ModeWebSearch,
	})

	var content string
	if err != nil {
		d.logger.Error("chat turn failed", "conversation_id", d.store.ID(), "error", err)
		content = errPrefix + domain.Reason(err)
	} else {
		content = decorate(reply)
	}

	msg := models.NewMessage(models.RoleAssistant, content)
	d.store.Append(msg)
	return msg, nil
}

// decorate prepends the provenance marker. A document-grounded answer wins
// over a search-grounded one when the backend reports both.
func decorate(reply *services.ChatReply) string {
	switch {
	case reply.UsedRAG:
		return docsPrefix + reply.Response
	case reply.UsedSearch:
		return searchPrefix + reply.Response
	default:
		return reply.Response
	}
}
