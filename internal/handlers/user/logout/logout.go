package logout

import (
	"log/slog"
	"net/http"

	"tracker/internal/session"

	"github.com/go-chi/chi/middleware"
)

// New clears the session cookie. No auth check: logging out while logged out
// is a harmless redirect home.
func New(log *slog.Logger, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.logout.New"

		sessions.Clear(w)
		log.Info("session cleared",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
