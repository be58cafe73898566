package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter wires the mutual-aid API. Everything below /v1 except
// health and the auth endpoints requires a session.
func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.Logger(app.Logger))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.JWTSecret))

		r.Get("/v1/me", app.Me)

		r.Route("/v1/groups", func(r chi.Router) {
			r.Post("/", app.GroupsCreate)
			r.Get("/", app.GroupsList)
			r.Get("/{id}", app.GroupDetail)
			r.Post("/{id}/join", app.GroupJoin)
			r.Get("/{id}/stats", app.GroupStats)
			r.Post("/{id}/requests", app.RequestsCreate)
			r.Get("/{id}/ws", app.GroupSocket)
		})

		r.Route("/v1/requests", func(r chi.Router) {
			r.Get("/{id}", app.RequestDetail)
			r.Post("/{id}/contributions", app.ContributionsCreate)
			r.Post("/{id}/thanks", app.ThanksCreate)
		})
	})

	return r
}
