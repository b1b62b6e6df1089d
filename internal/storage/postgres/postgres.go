package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"tracker/internal/models"
	"tracker/internal/storage"

	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(dsn string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users(
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS notes(
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
	const op = "storage.postgres.SaveUser"

	var userID int64
	err := s.db.QueryRow(
		"INSERT INTO users(username, password_hash) VALUES($1, $2) RETURNING id",
		username, passwordHash,
	).Scan(&userID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, storage.ErrUserExists
		}
		return 0, fmt.Errorf("%s: insert user: %w", op, err)
	}
	return userID, nil
}

func (s *Storage) GetUserByUsername(username string) (*models.User, error) {
	const op = "storage.postgres.GetUserByUsername"

	var u models.User
	err := s.db.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users WHERE username=$1",
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
	const op = "storage.postgres.SaveNote"

	var noteID int64
	err := s.db.QueryRow(
		"INSERT INTO notes(owner_id, title, content) VALUES($1, $2, $3) RETURNING id",
		ownerID, title, content,
	).Scan(&noteID)
	if err != nil {
		return 0, fmt.Errorf("%s: insert note: %w", op, err)
	}
	return noteID, nil
}

// GetNote fetches a single note scoped on (id, owner); a foreign note reads as
// not found.
func (s *Storage) GetNote(noteID, ownerID int64) (*models.Note, error) {
	const op = "storage.postgres.GetNote"

	var n models.Note
	err := s.db.QueryRow(
		"SELECT id, owner_id, title, content, created_at FROM notes WHERE id=$1 AND owner_id=$2",
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
	const op = "storage.postgres.ListNotes"

	rows, err := s.db.Query(
		"SELECT id, owner_id, title, content, created_at FROM notes WHERE owner_id=$1 ORDER BY id",
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

// DeleteNote removes the note only when it belongs to ownerID; the lookup is scoped
// on both columns so a foreign note reads as not found.
func (s *Storage) DeleteNote(noteID, ownerID int64) error {
	const op = "storage.postgres.DeleteNote"

	res, err := s.db.Exec("DELETE FROM notes WHERE id=$1 AND owner_id=$2", noteID, ownerID)
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
