package conversation

import (
	"sync"

	"chatrelay/internal/domain/models"
)

// Greeting seeds every conversation, mirroring the backend's own system
// prompt so the rendered transcript starts non-empty.
const Greeting = "You are a helpful assistant."

// Store owns the ordered message list and the busy flag for one
// conversation. It is a pure state container: no network awareness, no
// validation. Append is the only mutation primitive for the message list,
// and the mutex makes the store the single writer even though callers run
// on separate goroutines. Append order is completion order of the
// operations that produced the messages, not submission order.
type Store struct {
	mu       sync.Mutex
	id       string
	busy     bool
	messages []models.Message
}

// New creates a store for the given conversation id, seeded with the
// standard system greeting.
func New(id string) *Store {
	s := &Store{id: id}
	s.Append(models.NewMessage(models.RoleSystem, Greeting))
	return s
}

// ID returns the conversation identifier.
func (s *Store) ID() string {
	return s.id
}

// Append adds a message to the end of the sequence. By the time a message
// reaches the store it is final.
func (s *Store) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Current returns the full ordered sequence as a copy, so callers can
// never mutate the store's backing slice.
func (s *Store) Current() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetBusy flags a chat round-trip as in flight. The flag disables duplicate
// submission in the UI; it is not a lock.
func (s *Store) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

// Busy reports whether a chat round-trip is in flight.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Snapshot returns the conversation as a renderable value.
func (s *Store) Snapshot() models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]models.Message, len(s.messages))
	copy(msgs, s.messages)
	return models.Conversation{
		ID:       s.id,
		Busy:     s.busy,
		Messages: msgs,
	}
}
