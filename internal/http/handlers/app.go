package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/notify"
	"server/internal/service"
)

// App bundles the handler dependencies: the business service, the room
// hub for websocket observers and the session signing material.
type App struct {
	Svc        *service.Service
	Hub        *notify.Hub
	Logger     zerolog.Logger
	JWTSecret  string
	SessionTTL time.Duration
}

// NewApp creates the handler container.
func NewApp(svc *service.Service, hub *notify.Hub, logger zerolog.Logger, jwtSecret string, sessionTTL time.Duration) *App {
	return &App{Svc: svc, Hub: hub, Logger: logger, JWTSecret: jwtSecret, SessionTTL: sessionTTL}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// respondError maps domain errors onto the boundary taxonomy. Nothing
// is retried; every operation is a single-shot state transition.
func (a *App) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "unauthorized", "you are not allowed to perform this action")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "the requested record does not exist")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", "a record with those details already exists")
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentAccountID(r *http.Request) string {
	return middleware.AccountIDFromContext(r.Context())
}
