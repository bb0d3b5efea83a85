package chat

import (
	"sync"

	"ClaudBot/entity"
)

// DefaultMaxTurns bounds a conversation at 20 exchanges of 2 messages each.
const DefaultMaxTurns = 40

// Store keeps per-sender conversation history in memory. History lives
// for the process lifetime and is lost on restart; clearing a sender is
// explicit via Reset.
type Store struct {
	mu       sync.Mutex
	maxTurns int
	turns    map[string][]entity.Turn
}

func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		maxTurns: maxTurns,
		turns:    make(map[string][]entity.Turn),
	}
}

// History returns a copy of the sender's turns, oldest first. A sender
// without history gets an empty sequence.
func (s *Store) History(sender string) []entity.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.turns[sender]
	out := make([]entity.Turn, len(history))
	copy(out, history)
	return out
}

// Append adds a turn at the end and evicts the oldest turns once the
// sequence exceeds the limit.
func (s *Store) Append(sender string, turn entity.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.turns[sender], turn)
	if over := len(history) - s.maxTurns; over > 0 {
		history = history[over:]
	}
	s.turns[sender] = history
}

// Reset drops the sender's conversation entirely. The next History call
// starts from an empty sequence.
func (s *Store) Reset(sender string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, sender)
}

// Count returns the number of active conversations.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.turns)
}
