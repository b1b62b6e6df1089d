package login

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"tracker/internal/models"
	"tracker/internal/session"
	"tracker/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type mockUserSignIn struct {
	user *models.User
}

func (m *mockUserSignIn) GetUserByUsername(username string) (*models.User, error) {
	if m.user == nil || m.user.Username != username {
		return nil, storage.ErrUserNotFound
	}
	return m.user, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSessions() *session.Manager {
	return session.NewManager("test-secret", time.Hour, "session")
}

func postForm(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func aliceStore(t *testing.T) *mockUserSignIn {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &mockUserSignIn{user: &models.User{ID: 1, Username: "alice", PasswordHash: string(hash)}}
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	sessions := newSessions()
	handler := New(discardLogger(), aliceStore(t), sessions)

	w := httptest.NewRecorder()
	handler(w, postForm(url.Values{"username": {"alice"}, "password": {"pw1"}}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect = %q, want /", loc)
	}

	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("login should set the session cookie")
	}
	claims, err := sessions.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("session cookie does not parse: %v", err)
	}
	if claims.UserID != 1 || claims.Username != "alice" {
		t.Errorf("claims = %+v, want user 1/alice", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	handler := New(discardLogger(), aliceStore(t), newSessions())

	w := httptest.NewRecorder()
	handler(w, postForm(url.Values{"username": {"alice"}, "password": {"wrong"}}))

	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
	if sessionCookie(w) != nil {
		t.Error("failed login must not set a session cookie")
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	handler := New(discardLogger(), &mockUserSignIn{}, newSessions())

	w := httptest.NewRecorder()
	handler(w, postForm(url.Values{"username": {"ghost"}, "password": {"pw1"}}))

	// same redirect as a wrong password: no username enumeration
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
	if sessionCookie(w) != nil {
		t.Error("failed login must not set a session cookie")
	}
}
