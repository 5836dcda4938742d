package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification for rendering.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient UI message. It self-clears: once its deadline
// passes it is dropped from Active results and never seen again.
type Notification struct {
	ID    string `json:"id"`
	Level Level  `json:"level"`
	Text  string `json:"text"`

	expiresAt time.Time
}

// Notifier collects notifications and expires them after a fixed interval.
type Notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []Notification
}

// New creates a notifier whose notifications stay active for ttl.
func New(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl, now: time.Now}
}

// Successf records a success notification.
func (n *Notifier) Successf(format string, args ...any) {
	n.add(LevelSuccess, fmt.Sprintf(format, args...))
}

// Errorf records an error notification.
func (n *Notifier) Errorf(format string, args ...any) {
	n.add(LevelError, fmt.Sprintf(format, args...))
}

func (n *Notifier) add(level Level, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Text:      text,
		expiresAt: n.now().Add(n.ttl),
	})
}

// Active prunes expired notifications and returns the rest in the order
// they were recorded.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if item.expiresAt.After(now) {
			kept = append(kept, item)
		}
	}
	n.items = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}
