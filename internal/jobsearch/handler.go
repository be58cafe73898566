package jobsearch

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter wires the listing API. The search page is served from a
// different origin, hence CORS.
func NewRouter(catalog *Catalog, logger zerolog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	h := &handler{catalog: catalog, logger: logger}
	r.Get("/jobs", h.list)
	// The search page calls /jobs/search with a keyword; semantics are
	// identical to /jobs with both filters optional.
	r.Get("/jobs/search", h.list)
	r.Get("/healthz", h.health)

	return r
}

type handler struct {
	catalog *Catalog
	logger  zerolog.Logger
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	country := r.URL.Query().Get("country")

	jobs := h.catalog.Search(query, country)
	h.logger.Debug().Str("q", query).Str("country", country).Int("matches", len(jobs)).Msg("job search")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(jobs)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
