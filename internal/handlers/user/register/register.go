package register

import (
	"errors"
	"log/slog"
	"net/http"

	appMiddleware "tracker/internal/middleware"
	"tracker/internal/storage"
	"tracker/internal/web"
	"tracker/pkg/logger/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type Request struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type UserSaver interface {
	SaveUser(username, passwordHash string) (int64, error)
}

// Show renders the registration form. Authenticated users are sent home.
func Show(log *slog.Logger, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.register.Show"

		if _, ok := appMiddleware.CurrentUser(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		data := web.PageData{Flash: web.PopFlash(w, r)}
		if err := renderer.Render(w, http.StatusOK, "register.html", data); err != nil {
			log.Error("failed to render register page", slog.String("op", op), sl.Err(err))
		}
	}
}

func New(log *slog.Logger, userSaver UserSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.register.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if _, ok := appMiddleware.CurrentUser(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		req := Request{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		if err := validator.New().Struct(req); err != nil {
			log.Info("invalid registration form", sl.Err(err))
			web.SetFlash(w, "danger", "Username and password must not be empty.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		_, err = userSaver.SaveUser(req.Username, string(passwordHash))
		if errors.Is(err, storage.ErrUserExists) {
			log.Info("username already taken", slog.String("username", req.Username))
			web.SetFlash(w, "danger", "This username is already taken.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Error("failed to create user", sl.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("user registered", slog.String("username", req.Username))
		web.SetFlash(w, "success", "Registration successful! Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
