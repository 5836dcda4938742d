package notify

import (
	"testing"
	"time"
)

func TestActive_ReturnsRecordedNotifications(t *testing.T) {
	n := New(3 * time.Second)
	n.Successf("Successfully processed %s", "report.pdf")
	n.Errorf("Upload failed: %s", "file too large")

	active := n.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active notifications, got %d", len(active))
	}
	if active[0].Level != LevelSuccess {
		t.Errorf("expected first notification to be success, got %q", active[0].Level)
	}
	if active[0].Text != "Successfully processed report.pdf" {
		t.Errorf("unexpected text %q", active[0].Text)
	}
	if active[1].Level != LevelError {
		t.Errorf("expected second notification to be error, got %q", active[1].Level)
	}
	if active[0].ID == active[1].ID {
		t.Error("notification ids must be unique")
	}
}

func TestActive_ExpiresAfterTTL(t *testing.T) {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := New(3 * time.Second)
	n.now = func() time.Time { return current }

	n.Errorf("Only PDF files are allowed")

	if len(n.Active()) != 1 {
		t.Fatal("expected notification to be active before TTL")
	}

	current = current.Add(2 * time.Second)
	if len(n.Active()) != 1 {
		t.Fatal("expected notification to still be active at 2s")
	}

	current = current.Add(2 * time.Second)
	if len(n.Active()) != 0 {
		t.Fatal("expected notification to self-clear after TTL")
	}

	// Once pruned, it stays gone even if the clock were to rewind.
	current = current.Add(-3 * time.Second)
	if len(n.Active()) != 0 {
		t.Fatal("expected pruned notification to stay cleared")
	}
}
