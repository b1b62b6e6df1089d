package delete

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appMiddleware "tracker/internal/middleware"
	"tracker/internal/storage"
	"tracker/internal/web"
	"tracker/pkg/logger/sl"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type NoteDeleter interface {
	DeleteNote(noteID, ownerID int64) error
}

// New deletes the note in the path, scoped to the requester. A note that does
// not exist and a note owned by someone else both come back as 404.
func New(log *slog.Logger, noteDeleter NoteDeleter, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		identity, ok := appMiddleware.CurrentUser(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		noteID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Info("invalid note id", sl.Err(err))
			notFound(log, renderer, w, identity.Username)
			return
		}

		err = noteDeleter.DeleteNote(noteID, identity.UserID)
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Info("note not found", slog.Int64("note_id", noteID))
			notFound(log, renderer, w, identity.Username)
			return
		}
		if err != nil {
			log.Error("failed to delete note", sl.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("note deleted", slog.Int64("note_id", noteID))
		web.SetFlash(w, "success", "Note deleted.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func notFound(log *slog.Logger, renderer *web.Renderer, w http.ResponseWriter, username string) {
	data := web.PageData{Username: username}
	if err := renderer.Render(w, http.StatusNotFound, "notfound.html", data); err != nil {
		log.Error("failed to render not found page", sl.Err(err))
	}
}
