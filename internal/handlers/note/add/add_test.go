package add

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	appMiddleware "tracker/internal/middleware"
)

type mockNoteSaver struct {
	ownerID int64
	title   string
	content string
	calls   int
}

func (m *mockNoteSaver) SaveNote(ownerID int64, title, content string) (int64, error) {
	m.calls++
	m.ownerID = ownerID
	m.title = title
	m.content = content
	return 10, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postForm(form url.Values, authed bool) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/add_note", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if authed {
		ctx := appMiddleware.WithUser(r.Context(), appMiddleware.Identity{UserID: 1, Username: "alice"})
		r = r.WithContext(ctx)
	}
	return r
}

func TestAddNote_Success(t *testing.T) {
	saver := &mockNoteSaver{}
	handler := New(discardLogger(), saver)

	w := httptest.NewRecorder()
	handler(w, postForm(url.Values{"title": {"Groceries"}, "content": {"milk,eggs"}}, true))

	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect = %q, want /", loc)
	}
	if saver.calls != 1 {
		t.Fatalf("SaveNote called %d times, want 1", saver.calls)
	}
	if saver.ownerID != 1 || saver.title != "Groceries" || saver.content != "milk,eggs" {
		t.Errorf("SaveNote(%d, %q, %q), want (1, Groceries, milk,eggs)", saver.ownerID, saver.title, saver.content)
	}
}

func TestAddNote_EmptyFields(t *testing.T) {
	for _, form := range []url.Values{
		{"title": {""}, "content": {"body"}},
		{"title": {"head"}, "content": {""}},
	} {
		saver := &mockNoteSaver{}
		handler := New(discardLogger(), saver)

		w := httptest.NewRecorder()
		handler(w, postForm(form, true))

		if saver.calls != 0 {
			t.Errorf("form %v: SaveNote called %d times, want 0", form, saver.calls)
		}
		if loc := w.Header().Get("Location"); loc != "/" {
			t.Errorf("form %v: redirect = %q, want /", form, loc)
		}
	}
}

func TestAddNote_Unauthenticated(t *testing.T) {
	saver := &mockNoteSaver{}
	handler := New(discardLogger(), saver)

	w := httptest.NewRecorder()
	handler(w, postForm(url.Values{"title": {"Groceries"}, "content": {"milk"}}, false))

	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
	if saver.calls != 0 {
		t.Errorf("SaveNote called %d times, want 0", saver.calls)
	}
}
