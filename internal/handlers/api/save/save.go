package save

import (
	"log/slog"
	"net/http"

	appMiddleware "tracker/internal/middleware"
	"tracker/pkg/api/response"
	"tracker/pkg/logger/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type NoteSaver interface {
	SaveNote(ownerID int64, title, content string) (int64, error)
}

func New(log *slog.Logger, noteSaver NoteSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.save.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		identity, _ := appMiddleware.CurrentUser(r.Context())

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}
		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		noteID, err := noteSaver.SaveNote(identity.UserID, req.Title, req.Content)
		if err != nil {
			log.Error("failed to create note", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create note"))
			return
		}

		log.Info("note created", slog.Int64("note_id", noteID), slog.String("title", req.Title))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]int64{"id": noteID})
	}
}
