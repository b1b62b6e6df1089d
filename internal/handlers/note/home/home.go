package home

import (
	"log/slog"
	"net/http"

	appMiddleware "tracker/internal/middleware"
	"tracker/internal/models"
	"tracker/internal/web"
	"tracker/pkg/logger/sl"

	"github.com/go-chi/chi/middleware"
)

type NoteLister interface {
	ListNotes(ownerID int64) ([]models.Note, error)
}

// New renders the home view: the requester's notes when authenticated, the
// welcome screen otherwise.
func New(log *slog.Logger, noteLister NoteLister, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.home.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		data := web.PageData{Flash: web.PopFlash(w, r)}

		identity, ok := appMiddleware.CurrentUser(r.Context())
		if ok {
			notes, err := noteLister.ListNotes(identity.UserID)
			if err != nil {
				log.Error("failed to list notes", sl.Err(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			data.Username = identity.Username
			data.Notes = notes
		}

		if err := renderer.Render(w, http.StatusOK, "index.html", data); err != nil {
			log.Error("failed to render home page", sl.Err(err))
		}
	}
}
