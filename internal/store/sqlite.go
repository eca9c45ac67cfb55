package store

import (
	"database/sql"
	"errors"
	"log"

	_ "modernc.org/sqlite"

	"github.com/devaloi/newsboard/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens or creates a SQLite database at the given path.
// Use ":memory:" for an in-memory database.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A second pooled connection to ":memory:" would see a separate, empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// AUTOINCREMENT keeps identifiers of deleted rows from being handed out again.
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL
		);
	`)
	return err
}

// Create inserts a message and reports the assigned identifier.
func (s *SQLiteStore) Create(title, content string) domain.Response {
	res, err := s.db.Exec("INSERT INTO messages (title, content) VALUES (?, ?)", title, content)
	if err != nil {
		return storageFailure("create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageFailure("create", err)
	}
	resp := domain.Success(domain.MsgAdded)
	resp.ID = int(id)
	return resp
}

// Read returns the rendered message or a not-found error.
func (s *SQLiteStore) Read(id int) domain.Response {
	var m domain.Message
	err := s.db.QueryRow("SELECT id, title, content FROM messages WHERE id = ?", id).
		Scan(&m.ID, &m.Title, &m.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Failure(domain.MsgNotFound)
	}
	if err != nil {
		return storageFailure("read", err)
	}
	return domain.Success(m.Text())
}

// Update replaces the content of an existing message.
func (s *SQLiteStore) Update(id int, content string) domain.Response {
	res, err := s.db.Exec("UPDATE messages SET content = ? WHERE id = ?", content, id)
	return affected("update", res, err, domain.MsgEdited)
}

// Delete removes an existing message.
func (s *SQLiteStore) Delete(id int) domain.Response {
	res, err := s.db.Exec("DELETE FROM messages WHERE id = ?", id)
	return affected("delete", res, err, domain.MsgDeleted)
}

// Len returns the number of stored messages, or -1 if the count fails.
func (s *SQLiteStore) Len() int {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		log.Printf("store count error: %v", err)
		return -1
	}
	return n
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func affected(op string, res sql.Result, err error, okMsg string) domain.Response {
	if err != nil {
		return storageFailure(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageFailure(op, err)
	}
	if n == 0 {
		return domain.Failure(domain.MsgNotFound)
	}
	return domain.Success(okMsg)
}

func storageFailure(op string, err error) domain.Response {
	log.Printf("store %s error: %v", op, err)
	return domain.Failure(domain.MsgStorage)
}
