package store

import (
	"sync"

	"github.com/devaloi/newsboard/internal/domain"
)

// MemoryStore implements Store over an ordered slice of messages.
type MemoryStore struct {
	mu       sync.Mutex
	messages []domain.Message
	nextID   int
}

// NewMemory creates an empty MemoryStore whose first identifier is 1.
func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Create appends a message. Identifiers are never reused, even after delete.
func (s *MemoryStore) Create(title, content string) domain.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.messages = append(s.messages, domain.Message{ID: id, Title: title, Content: content})
	resp := domain.Success(domain.MsgAdded)
	resp.ID = id
	return resp
}

// Read returns the rendered message or a not-found error.
func (s *MemoryStore) Read(id int) domain.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Failure(domain.MsgNotFound)
	}
	return domain.Success(s.messages[i].Text())
}

// Update replaces the content of an existing message.
func (s *MemoryStore) Update(id int, content string) domain.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Failure(domain.MsgNotFound)
	}
	s.messages[i].Content = content
	return domain.Success(domain.MsgEdited)
}

// Delete removes an existing message, keeping the rest in creation order.
func (s *MemoryStore) Delete(id int) domain.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Failure(domain.MsgNotFound)
	}
	s.messages = append(s.messages[:i], s.messages[i+1:]...)
	return domain.Success(domain.MsgDeleted)
}

// Len returns the number of stored messages.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error { return nil }

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int) int {
	for i, m := range s.messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}
