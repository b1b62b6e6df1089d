package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tracker/internal/models"
	"tracker/internal/storage"

	"github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

// New opens the database file at storagePath, creating it and the schema on first run.
func New(storagePath string) (*Storage, error) {
	const op = "storage.sqlite.New"

	if dir := filepath.Dir(storagePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: create storage dir: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite3", storagePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS notes(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(owner_id);
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: init schema: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) SaveUser(username, passwordHash string) (int64, error) {
	const op = "storage.sqlite.SaveUser"

	res, err := s.db.Exec(
		"INSERT INTO users(username, password_hash) VALUES(?, ?)",
		username, passwordHash,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, storage.ErrUserExists
		}
		return 0, fmt.Errorf("%s: insert user: %w", op, err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return userID, nil
}

func (s *Storage) GetUserByUsername(username string) (*models.User, error) {
	const op = "storage.sqlite.GetUserByUsername"

	var u models.User
	err := s.db.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users WHERE username=?",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}
	return &u, nil
}

func (s *Storage) SaveNote(ownerID int64, title, content string) (int64, error) {
	const op = "storage.sqlite.SaveNote"

	res, err := s.db.Exec(
		"INSERT INTO notes(owner_id, title, content) VALUES(?, ?, ?)",
		ownerID, title, content,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: insert note: %w", op, err)
	}
	noteID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return noteID, nil
}

// GetNote fetches a single note scoped on (id, owner); a foreign note reads as
// not found.
func (s *Storage) GetNote(noteID, ownerID int64) (*models.Note, error) {
	const op = "storage.sqlite.GetNote"

	var n models.Note
	err := s.db.QueryRow(
		"SELECT id, owner_id, title, content, created_at FROM notes WHERE id=? AND owner_id=?",
		noteID, ownerID,
	).Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}
	return &n, nil
}

// ListNotes returns the owner's notes in insertion order.
func (s *Storage) ListNotes(ownerID int64) ([]models.Note, error) {
	const op = "storage.sqlite.ListNotes"

	rows, err := s.db.Query(
		"SELECT id, owner_id, title, content, created_at FROM notes WHERE owner_id=? ORDER BY id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return notes, nil
}

// DeleteNote removes the note only when it belongs to ownerID. A foreign note is
// indistinguishable from a missing one: both come back as ErrNoteNotFound.
func (s *Storage) DeleteNote(noteID, ownerID int64) error {
	const op = "storage.sqlite.DeleteNote"

	res, err := s.db.Exec("DELETE FROM notes WHERE id=? AND owner_id=?", noteID, ownerID)
	if err != nil {
		return fmt.Errorf("%s: delete: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNoteNotFound
	}
	return nil
}
