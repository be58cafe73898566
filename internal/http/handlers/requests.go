package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"server/internal/service"
)

type createRequestRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	AmountNeeded decimal.Decimal `json:"amount_needed"`
}

func (a *App) RequestsCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	request, err := a.Svc.CreateRequest(r.Context(), a.currentAccountID(r), chi.URLParam(r, "id"), service.CreateRequestInput{
		Title:        req.Title,
		Description:  req.Description,
		AmountNeeded: req.AmountNeeded,
	})
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toRequestDTO(*request))
}

func (a *App) RequestDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.Svc.GetRequestDetail(r.Context(), a.currentAccountID(r), chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusOK, toRequestDetailDTO(detail))
}

type contributeRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	IsAnonymous bool            `json:"is_anonymous"`
}

func (a *App) ContributionsCreate(w http.ResponseWriter, r *http.Request) {
	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	updated, err := a.Svc.Contribute(r.Context(), a.currentAccountID(r), chi.URLParam(r, "id"), service.ContributeInput{
		Amount:      req.Amount,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toRequestDTO(*updated))
}

type thanksRequest struct {
	Message string `json:"message"`
}

func (a *App) ThanksCreate(w http.ResponseWriter, r *http.Request) {
	var req thanksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	ack, err := a.Svc.SendThanks(r.Context(), a.currentAccountID(r), chi.URLParam(r, "id"), service.ThanksInput{
		Message: req.Message,
	})
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":            ack.ID,
		"message":       ack.Message,
		"to_account_id": ack.ToAccountID,
		"request_id":    ack.RequestID,
		"created_at":    ack.CreatedAt,
	})
}
