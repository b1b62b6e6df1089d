package add

import (
	"log/slog"
	"net/http"

	appMiddleware "tracker/internal/middleware"
	"tracker/internal/web"
	"tracker/pkg/logger/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

type NoteSaver interface {
	SaveNote(ownerID int64, title, content string) (int64, error)
}

func New(log *slog.Logger, noteSaver NoteSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.note.add.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		identity, ok := appMiddleware.CurrentUser(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		req := Request{
			Title:   r.FormValue("title"),
			Content: r.FormValue("content"),
		}
		if err := validator.New().Struct(req); err != nil {
			log.Info("invalid note form", sl.Err(err))
			web.SetFlash(w, "danger", "Title and content must not be empty.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		noteID, err := noteSaver.SaveNote(identity.UserID, req.Title, req.Content)
		if err != nil {
			log.Error("failed to create note", sl.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("note created", slog.Int64("note_id", noteID), slog.String("title", req.Title))
		web.SetFlash(w, "success", "Note added successfully!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
