package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"tracker/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveUser_Duplicate(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.SaveUser("alice", "hash1"); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}
	_, err := s.SaveUser("alice", "hash2")
	if !errors.Is(err, storage.ErrUserExists) {
		t.Fatalf("SaveUser() duplicate error = %v, want ErrUserExists", err)
	}
}

func TestGetUserByUsername(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.SaveUser("alice", "hash1")
	if err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}

	u, err := s.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if u.ID != id || u.Username != "alice" || u.PasswordHash != "hash1" {
		t.Errorf("got user %+v, want id=%d username=alice hash=hash1", u, id)
	}

	_, err = s.GetUserByUsername("nobody")
	if !errors.Is(err, storage.ErrUserNotFound) {
		t.Fatalf("GetUserByUsername() unknown error = %v, want ErrUserNotFound", err)
	}
}

func TestListNotes_InsertionOrderAndScoping(t *testing.T) {
	s := newTestStorage(t)

	alice, _ := s.SaveUser("alice", "h")
	bob, _ := s.SaveUser("bob", "h")

	for _, title := range []string{"first", "second", "third"} {
		if _, err := s.SaveNote(alice, title, "content"); err != nil {
			t.Fatalf("SaveNote() error = %v", err)
		}
	}
	if _, err := s.SaveNote(bob, "bobs note", "content"); err != nil {
		t.Fatalf("SaveNote() error = %v", err)
	}

	notes, err := s.ListNotes(alice)
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("ListNotes() returned %d notes, want 3", len(notes))
	}
	for i, want := range []string{"first", "second", "third"} {
		if notes[i].Title != want {
			t.Errorf("notes[%d].Title = %q, want %q", i, notes[i].Title, want)
		}
		if notes[i].OwnerID != alice {
			t.Errorf("notes[%d].OwnerID = %d, want %d", i, notes[i].OwnerID, alice)
		}
	}
}

func TestGetNote_OwnerScoped(t *testing.T) {
	s := newTestStorage(t)

	alice, _ := s.SaveUser("alice", "h")
	bob, _ := s.SaveUser("bob", "h")
	noteID, _ := s.SaveNote(alice, "private", "content")

	if _, err := s.GetNote(noteID, alice); err != nil {
		t.Fatalf("GetNote() by owner error = %v", err)
	}
	_, err := s.GetNote(noteID, bob)
	if !errors.Is(err, storage.ErrNoteNotFound) {
		t.Fatalf("GetNote() by non-owner error = %v, want ErrNoteNotFound", err)
	}
}

func TestDeleteNote(t *testing.T) {
	s := newTestStorage(t)

	alice, _ := s.SaveUser("alice", "h")
	bob, _ := s.SaveUser("bob", "h")
	noteID, _ := s.SaveNote(alice, "groceries", "milk,eggs")

	// a non-owner delete must read as not found and leave the note in place
	err := s.DeleteNote(noteID, bob)
	if !errors.Is(err, storage.ErrNoteNotFound) {
		t.Fatalf("DeleteNote() by non-owner error = %v, want ErrNoteNotFound", err)
	}
	if notes, _ := s.ListNotes(alice); len(notes) != 1 {
		t.Fatalf("note disappeared after foreign delete attempt")
	}

	if err := s.DeleteNote(noteID, alice); err != nil {
		t.Fatalf("DeleteNote() by owner error = %v", err)
	}
	if notes, _ := s.ListNotes(alice); len(notes) != 0 {
		t.Fatalf("ListNotes() after delete returned %d notes, want 0", len(notes))
	}

	err = s.DeleteNote(noteID, alice)
	if !errors.Is(err, storage.ErrNoteNotFound) {
		t.Fatalf("DeleteNote() repeated error = %v, want ErrNoteNotFound", err)
	}
}
