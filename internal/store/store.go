package store

import (
	"fmt"

	"github.com/devaloi/newsboard/internal/config"
	"github.com/devaloi/newsboard/internal/domain"
)

// Store defines the message CRUD interface. Every outcome, including a
// missing message, is reported as a domain.Response.
type Store interface {
	// Create adds a message under the next unused identifier.
	Create(title, content string) domain.Response
	// Read returns "<title>: <content>" for the message with the given id.
	Read(id int) domain.Response
	// Update replaces the content of a message.
	Update(id int, content string) domain.Response
	// Delete removes a message.
	Delete(id int) domain.Response
	// Close releases any resources held by the store.
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemory(), nil
	case config.BackendSQLite:
		s, err := NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.DBPath, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
