package router

import (
	"log/slog"
	"net/http"

	apiDelete "tracker/internal/handlers/api/delete"
	apiGet "tracker/internal/handlers/api/get"
	apiGetall "tracker/internal/handlers/api/getall"
	apiSave "tracker/internal/handlers/api/save"
	noteAdd "tracker/internal/handlers/note/add"
	noteDelete "tracker/internal/handlers/note/delete"
	"tracker/internal/handlers/note/home"
	"tracker/internal/handlers/user/login"
	"tracker/internal/handlers/user/logout"
	"tracker/internal/handlers/user/register"
	appMiddleware "tracker/internal/middleware"
	"tracker/internal/session"
	"tracker/internal/storage"
	"tracker/internal/web"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// New assembles the full route table. Identity is resolved once per request;
// the guards on the protected groups decide how anonymous access is refused.
func New(log *slog.Logger, store storage.Storage, sessions *session.Manager, renderer *web.Renderer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)
	r.Use(appMiddleware.Identify(sessions))

	r.Get("/", home.New(log, store, renderer))
	r.Get("/register", register.Show(log, renderer))
	r.Post("/register", register.New(log, store))
	r.Get("/login", login.Show(log, renderer))
	r.Post("/login", login.New(log, store, sessions))
	r.Get("/logout", logout.New(log, sessions))

	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RequireUser)
		r.Post("/add_note", noteAdd.New(log, store))
		r.Get("/delete_note/{id}", noteDelete.New(log, store, renderer))
	})

	r.Route("/api/notes", func(r chi.Router) {
		r.Use(appMiddleware.RequireUserJSON)
		r.Get("/", apiGetall.New(log, store))
		r.Post("/", apiSave.New(log, store))
		r.Get("/{id}", apiGet.New(log, store))
		r.Delete("/{id}", apiDelete.New(log, store))
	})

	return r
}
