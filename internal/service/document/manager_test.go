package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"chatrelay/internal/config"
	"chatrelay/internal/domain"
	"chatrelay/internal/domain/models"
	"chatrelay/internal/domain/services"
	"chatrelay/internal/notify"
)

// fakeDocGateway records calls and returns scripted results.
type fakeDocGateway struct {
	uploads   int
	lists     int
	deletes   int
	uploaded  services.UploadCandidate
	uploadCID string
	deleteID  string

	uploadResult *services.UploadResult
	uploadErr    error
	listResult   []models.Document
	deleteErr    error
}

func (f *fakeDocGateway) UploadPDF(_ context.Context, candidate services.UploadCandidate, conversationID string) (*services.UploadResult, error) {
	f.uploads++
	f.uploaded = candidate
	f.uploadCID = conversationID
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *fakeDocGateway) ListDocuments(_ context.Context, conversationID string) ([]models.Document, error) {
	f.lists++
	return f.listResult, nil
}

func (f *fakeDocGateway) DeleteDocument(_ context.Context, docID, conversationID string) error {
	f.deletes++
	f.deleteID = docID
	return f.deleteErr
}

func newTestManager(gw *fakeDocGateway) (*Manager, *notify.Notifier) {
	notifier := notify.New(config.NotificationTTL)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(gw, notifier, logger), notifier
}

func TestUpload_Success(t *testing.T) {
	gw := &fakeDocGateway{uploadResult: &services.UploadResult{
		Document: models.Document{DocID: "doc-1", Filename: "report.pdf", TotalChunks: 12},
		Message:  "Successfully processed report.pdf",
	}}
	mgr, notifier := newTestManager(gw)

	candidate := services.UploadCandidate{
		Filename: "report.pdf",
		Size:     2 * 1024 * 1024,
		Content:  bytes.NewReader([]byte("%PDF-1.4")),
	}
	doc, err := mgr.Upload(context.Background(), candidate, "default")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if gw.uploads != 1 {
		t.Fatalf("expected 1 upload call, got %d", gw.uploads)
	}
	if gw.uploadCID != "default" {
		t.Errorf("expected conversation id 'default', got %q", gw.uploadCID)
	}
	if gw.uploaded.Filename != "report.pdf" {
		t.Errorf("expected the candidate to reach the gateway intact, got %q", gw.uploaded.Filename)
	}
	if doc.DocID != "doc-1" {
		t.Errorf("expected returned document, got %+v", doc)
	}

	active := notifier.Active()
	if len(active) != 1 || active[0].Level != notify.LevelSuccess {
		t.Fatalf("expected one success notification, got %+v", active)
	}
	if active[0].Text != "Successfully processed report.pdf" {
		t.Errorf("unexpected notification text %q", active[0].Text)
	}
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	gw := &fakeDocGateway{}
	mgr, notifier := newTestManager(gw)

	for _, name := range []string{"report.docx", "report.PDF", "report.pdf.txt", "report"} {
		candidate := services.UploadCandidate{Filename: name, Size: 100, Content: strings.NewReader("x")}
		_, err := mgr.Upload(context.Background(), candidate, "default")

		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("filename %q: expected ValidationError, got %v", name, err)
		}
	}

	if gw.uploads != 0 {
		t.Errorf("expected zero network calls, got %d", gw.uploads)
	}
	for _, n := range notifier.Active() {
		if n.Level != notify.LevelError {
			t.Errorf("expected only error notifications, got %+v", n)
		}
	}
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	gw := &fakeDocGateway{}
	mgr, notifier := newTestManager(gw)

	candidate := services.UploadCandidate{
		Filename: "big.pdf",
		Size:     config.MaxUploadBytes + 1,
		Content:  strings.NewReader("x"),
	}
	_, err := mgr.Upload(context.Background(), candidate, "default")

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.uploads != 0 {
		t.Error("oversized file must not reach the network")
	}
	if len(notifier.Active()) != 1 {
		t.Error("expected a validation-error notification")
	}
}

func TestUpload_AcceptsExactLimit(t *testing.T) {
	gw := &fakeDocGateway{uploadResult: &services.UploadResult{
		Document: models.Document{DocID: "doc-2", Filename: "exact.pdf"},
	}}
	mgr, _ := newTestManager(gw)

	candidate := services.UploadCandidate{
		Filename: "exact.pdf",
		Size:     config.MaxUploadBytes,
		Content:  strings.NewReader("x"),
	}
	if _, err := mgr.Upload(context.Background(), candidate, "default"); err != nil {
		t.Fatalf("a file of exactly the limit must pass validation, got %v", err)
	}
	if gw.uploads != 1 {
		t.Error("expected the upload to reach the gateway")
	}
}

func TestUpload_BackendFailure(t *testing.T) {
	gw := &fakeDocGateway{uploadErr: &domain.RemoteError{Status: 500, Reason: "error processing PDF"}}
	mgr, notifier := newTestManager(gw)

	candidate := services.UploadCandidate{Filename: "bad.pdf", Size: 10, Content: strings.NewReader("x")}
	_, err := mgr.Upload(context.Background(), candidate, "default")
	if err == nil {
		t.Fatal("expected backend failure to surface")
	}

	active := notifier.Active()
	if len(active) != 1 || active[0].Level != notify.LevelError {
		t.Fatalf("expected one failure notification, got %+v", active)
	}
	if !strings.Contains(active[0].Text, "error processing PDF") {
		t.Errorf("notification must carry the backend reason, got %q", active[0].Text)
	}
}

func TestList_Idempotent(t *testing.T) {
	docs := []models.Document{
		{DocID: "doc-2", Filename: "b.pdf"},
		{DocID: "doc-1", Filename: "a.pdf"},
	}
	gw := &fakeDocGateway{listResult: docs}
	mgr, _ := newTestManager(gw)

	first, err := mgr.List(context.Background(), "default")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	second, err := mgr.List(context.Background(), "default")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("two lists with no intervening change must match: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	// Backend order is authoritative - no client-side re-sorting.
	if first[0].DocID != "doc-2" {
		t.Errorf("expected backend order preserved, got %+v", first)
	}
}

func TestDelete_NotFoundSurfacesError(t *testing.T) {
	gw := &fakeDocGateway{deleteErr: &domain.RemoteError{Status: 404, Reason: "Document not found"}}
	mgr, notifier := newTestManager(gw)

	err := mgr.Delete(context.Background(), "doc-1", "default")
	if err == nil {
		t.Fatal("deleting an unknown id must surface the backend error, not succeed silently")
	}

	var remote *domain.RemoteError
	if !errors.As(err, &remote) || remote.Status != 404 {
		t.Fatalf("expected 404 RemoteError, got %v", err)
	}
	active := notifier.Active()
	if len(active) != 1 || active[0].Level != notify.LevelError {
		t.Fatalf("expected a failure notification, got %+v", active)
	}
}

func TestDelete_Success(t *testing.T) {
	gw := &fakeDocGateway{}
	mgr, notifier := newTestManager(gw)

	if err := mgr.Delete(context.Background(), "doc-1", "default"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if gw.deleteID != "doc-1" {
		t.Errorf("expected delete of doc-1, got %q", gw.deleteID)
	}
	active := notifier.Active()
	if len(active) != 1 || active[0].Level != notify.LevelSuccess {
		t.Fatalf("expected a success notification, got %+v", active)
	}
}

