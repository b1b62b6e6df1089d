package storage

import (
	"errors"

	"tracker/internal/models"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrNoteNotFound = errors.New("note not found")
)

// Storage is the repository surface shared by the sqlite and postgres backends.
// Handlers declare the narrow slice of it they need; the router takes the whole.
type Storage interface {
	SaveUser(username, passwordHash string) (int64, error)
	GetUserByUsername(username string) (*models.User, error)
	SaveNote(ownerID int64, title, content string) (int64, error)
	GetNote(noteID, ownerID int64) (*models.Note, error)
	ListNotes(ownerID int64) ([]models.Note, error)
	DeleteNote(noteID, ownerID int64) error
}
