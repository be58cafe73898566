package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/middleware"
	"server/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	account, err := a.Svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toAccountDTO(*account))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string     `json:"token"`
	Account accountDTO `json:"account"`
}

func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	account, err := a.Svc.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		// Login failures stay 401; the membership guard owns 403.
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid username or password")
		return
	}
	token, err := middleware.SignSession(a.JWTSecret, account.ID, account.Username, a.SessionTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	// The cookie exists for the websocket endpoint, which cannot send
	// an Authorization header from a browser.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.json(w, http.StatusOK, loginResponse{Token: token, Account: toAccountDTO(*account)})
}

type dashboardResponse struct {
	Groups        []groupDTO        `json:"groups"`
	Requests      []requestDTO      `json:"requests"`
	Contributions []contributionDTO `json:"contributions"`
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	accountID := a.currentAccountID(r)
	if accountID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing account context")
		return
	}
	dash, err := a.Svc.GetDashboard(r.Context(), accountID)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.json(w, http.StatusOK, dashboardResponse{
		Groups:        toGroupDTOs(dash.Groups),
		Requests:      toRequestDTOs(dash.Requests),
		Contributions: toContributionDTOs(dash.Contributions),
	})
}
