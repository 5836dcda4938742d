package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"chatrelay/internal/config"
	"chatrelay/internal/domain"
	"chatrelay/internal/domain/models"
	"chatrelay/internal/domain/services"
)

// Manager validates and uploads candidate files and lists and deletes the
// documents scoped to a conversation. Every outcome the user should see is
// also surfaced through the notifier.
type Manager struct {
	gateway  services.DocumentGateway
	notifier services.Notifier
	logger   *slog.Logger
}

// NewManager creates a document manager.
func NewManager(gateway services.DocumentGateway, notifier services.Notifier, logger *slog.Logger) *Manager {
	return &Manager{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// Upload validates the candidate locally and, only if it passes, submits it
// to the backend. Validation failures never reach the network; they come
// back as a ValidationError and a transient notification.
func (m *Manager) Upload(ctx context.Context, candidate services.UploadCandidate, conversationID string) (*models.Document, error) {
	if err := validateCandidate(&candidate); err != nil {
		m.notifier.Errorf("%s", err.Error())
		return nil, err
	}

	result, err := m.gateway.UploadPDF(ctx, candidate, conversationID)
	if err != nil {
		m.logger.Error("upload failed",
			"filename", candidate.Filename,
			"conversation_id", conversationID,
			"error", err,
		)
		m.notifier.Errorf("Upload failed: %s", domain.Reason(err))
		return nil, err
	}

	if result.Message != "" {
		m.notifier.Successf("%s", result.Message)
	} else {
		m.notifier.Successf("Successfully processed %s", result.Document.Filename)
	}
	return &result.Document, nil
}

// List returns the document set for a conversation in backend order.
func (m *Manager) List(ctx context.Context, conversationID string) ([]models.Document, error) {
	return m.gateway.ListDocuments(ctx, conversationID)
}

// Delete requests removal of a document. Not idempotent: deleting an
// unknown or already-deleted id surfaces the backend's error to the caller
// instead of being treated as a no-op success.
func (m *Manager) Delete(ctx context.Context, docID, conversationID string) error {
	if err := m.gateway.DeleteDocument(ctx, docID, conversationID); err != nil {
		m.logger.Error("delete failed",
			"doc_id", docID,
			"conversation_id", conversationID,
			"error", err,
		)
		m.notifier.Errorf("Delete failed: %s", domain.Reason(err))
		return err
	}
	m.notifier.Successf("Document deleted")
	return nil
}

func validateCandidate(candidate *services.UploadCandidate) error {
	err := validation.ValidateStruct(candidate,
		validation.Field(&candidate.Filename,
			validation.Required.Error("a filename is required"),
			validation.By(hasPDFSuffix),
		),
		validation.Field(&candidate.Size,
			validation.Max(int64(config.MaxUploadBytes)).Error(
				fmt.Sprintf("file size exceeds the maximum of %d bytes", config.MaxUploadBytes)),
		),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

// hasPDFSuffix requires the literal, case-sensitive .pdf suffix; the
// backend indexes by it.
func hasPDFSuffix(value interface{}) error {
	name, _ := value.(string)
	if !strings.HasSuffix(name, config.PDFSuffix) {
		return errors.New("only PDF files are allowed")
	}
	return nil
}
