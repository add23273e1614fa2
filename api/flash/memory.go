package flash

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.Mutex
	queues map[string][]Message
}

// NewMemoryStore is the single-process fallback used when no redis URL
// is configured.
func NewMemoryStore() Store {
	return &memoryStore{queues: map[string][]Message{}}
}

func (s *memoryStore) Push(_ context.Context, token string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[token] = append(s.queues[token], msg)
	return nil
}

func (s *memoryStore) Pop(_ context.Context, token string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.queues[token]
	delete(s.queues, token)
	return msgs, nil
}
