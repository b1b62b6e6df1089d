package getall

import (
	"log/slog"
	"net/http"

	appMiddleware "tracker/internal/middleware"
	"tracker/internal/models"
	"tracker/pkg/api/response"
	"tracker/pkg/logger/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type NoteLister interface {
	ListNotes(ownerID int64) ([]models.Note, error)
}

func New(log *slog.Logger, noteLister NoteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.getall.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		identity, _ := appMiddleware.CurrentUser(r.Context())

		notes, err := noteLister.ListNotes(identity.UserID)
		if err != nil {
			log.Error("failed to list notes", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list notes"))
			return
		}
		if notes == nil {
			notes = []models.Note{}
		}

		log.Info("notes delivered", slog.Int("count", len(notes)))
		render.JSON(w, r, notes)
	}
}
