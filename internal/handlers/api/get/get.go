package get

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appMiddleware "tracker/internal/middleware"
	"tracker/internal/models"
	"tracker/internal/storage"
	"tracker/pkg/api/response"
	"tracker/pkg/logger/sl"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type NoteGetter interface {
	GetNote(noteID, ownerID int64) (*models.Note, error)
}

func New(log *slog.Logger, noteGetter NoteGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		identity, _ := appMiddleware.CurrentUser(r.Context())

		noteID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Info("invalid note id", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}

		note, err := noteGetter.GetNote(noteID, identity.UserID)
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Info("note not found", slog.Int64("note_id", noteID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
			return
		}
		if err != nil {
			log.Error("failed to get note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get note"))
			return
		}

		log.Info("note delivered", slog.Int64("note_id", noteID))
		render.JSON(w, r, note)
	}
}
