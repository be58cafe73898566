package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"server/internal/service"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *App) GroupsCreate(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	group, err := a.Svc.CreateGroup(r.Context(), a.currentAccountID(r), service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toGroupDTO(*group))
}

func (a *App) GroupsList(w http.ResponseWriter, r *http.Request) {
	groups, err := a.Svc.MyGroups(r.Context(), a.currentAccountID(r))
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toGroupDTOs(groups)})
}

func (a *App) GroupDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.Svc.GetGroupDetail(r.Context(), a.currentAccountID(r), chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"group":    toGroupDTO(detail.Group),
		"requests": toRequestDTOs(detail.Requests),
	})
}

func (a *App) GroupJoin(w http.ResponseWriter, r *http.Request) {
	if err := a.Svc.JoinGroup(r.Context(), a.currentAccountID(r), chi.URLParam(r, "id")); err != nil {
		a.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type groupStatsResponse struct {
	TotalRequests      int64           `json:"total_requests"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	ActiveRequests     int64           `json:"active_requests"`
}

func (a *App) GroupStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Svc.GroupStats(r.Context(), a.currentAccountID(r), chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusOK, groupStatsResponse{
		TotalRequests:      stats.TotalRequests,
		TotalContributions: stats.TotalContributions,
		ActiveRequests:     stats.ActiveRequests,
	})
}
