package login

import (
	"errors"
	"log/slog"
	"net/http"

	appMiddleware "tracker/internal/middleware"
	"tracker/internal/models"
	"tracker/internal/session"
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

type UserSignIn interface {
	GetUserByUsername(username string) (*models.User, error)
}

// Show renders the login form. Authenticated users are sent home.
func Show(log *slog.Logger, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.login.Show"

		if _, ok := appMiddleware.CurrentUser(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		data := web.PageData{Flash: web.PopFlash(w, r)}
		if err := renderer.Render(w, http.StatusOK, "login.html", data); err != nil {
			log.Error("failed to render login page", slog.String("op", op), sl.Err(err))
		}
	}
}

// New verifies the credentials and establishes the session cookie. Every
// failure surfaces the same generic notice so usernames cannot be enumerated.
func New(log *slog.Logger, userSignIn UserSignIn, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.login.New"

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
			log.Info("invalid login form", sl.Err(err))
			web.SetFlash(w, "danger", "Invalid username or password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := userSignIn.GetUserByUsername(req.Username)
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", slog.String("username", req.Username))
			web.SetFlash(w, "danger", "Invalid username or password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Error("failed to get user", sl.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Warn("invalid password", slog.String("username", req.Username))
			web.SetFlash(w, "danger", "Invalid username or password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		token, err := sessions.Issue(user.ID, user.Username)
		if err != nil {
			log.Error("failed to issue session token", sl.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		sessions.Set(w, token)

		log.Info("user logged in", slog.String("username", req.Username))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
