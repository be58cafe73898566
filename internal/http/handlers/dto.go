package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"server/internal/domain"
	"server/internal/service"
)

type accountDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountDTO(a domain.Account) accountDTO {
	return accountDTO{ID: a.ID, Username: a.Username, Email: a.Email, CreatedAt: a.CreatedAt}
}

type groupDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func toGroupDTO(g domain.Group) groupDTO {
	return groupDTO{ID: g.ID, Name: g.Name, Description: g.Description, CreatedBy: g.CreatedBy, CreatedAt: g.CreatedAt}
}

func toGroupDTOs(groups []domain.Group) []groupDTO {
	out := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupDTO(g))
	}
	return out
}

type requestDTO struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	AmountNeeded    decimal.Decimal `json:"amount_needed"`
	AmountCollected decimal.Decimal `json:"amount_collected"`
	GroupID         string          `json:"group_id"`
	RequesterID     string          `json:"requester_id"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toRequestDTO(r domain.FundingRequest) requestDTO {
	return requestDTO{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		AmountNeeded:    r.AmountNeeded,
		AmountCollected: r.AmountCollected,
		GroupID:         r.GroupID,
		RequesterID:     r.RequesterID,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
	}
}

func toRequestDTOs(requests []domain.FundingRequest) []requestDTO {
	out := make([]requestDTO, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestDTO(r))
	}
	return out
}

type contributionDTO struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	// ContributorID is withheld for anonymous contributions; the amount
	// is always visible.
	ContributorID string    `json:"contributor_id,omitempty"`
	RequestID     string    `json:"request_id"`
	IsAnonymous   bool      `json:"is_anonymous"`
	CreatedAt     time.Time `json:"created_at"`
}

func toContributionDTO(c domain.Contribution) contributionDTO {
	dto := contributionDTO{
		ID:          c.ID,
		Amount:      c.Amount,
		RequestID:   c.RequestID,
		IsAnonymous: c.IsAnonymous,
		CreatedAt:   c.CreatedAt,
	}
	if !c.IsAnonymous {
		dto.ContributorID = c.ContributorID
	}
	return dto
}

func toContributionDTOs(contributions []domain.Contribution) []contributionDTO {
	out := make([]contributionDTO, 0, len(contributions))
	for _, c := range contributions {
		out = append(out, toContributionDTO(c))
	}
	return out
}

type repaymentDTO struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	RequestID string          `json:"request_id"`
	RepaidBy  string          `json:"repaid_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func toRepaymentDTOs(repayments []domain.Repayment) []repaymentDTO {
	out := make([]repaymentDTO, 0, len(repayments))
	for _, r := range repayments {
		out = append(out, repaymentDTO{ID: r.ID, Amount: r.Amount, RequestID: r.RequestID, RepaidBy: r.RepaidBy, CreatedAt: r.CreatedAt})
	}
	return out
}

type acknowledgementDTO struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	FromAccountID string    `json:"from_account_id"`
	ToAccountID   string    `json:"to_account_id"`
	RequestID     string    `json:"request_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func toAcknowledgementDTOs(acks []domain.Acknowledgement) []acknowledgementDTO {
	out := make([]acknowledgementDTO, 0, len(acks))
	for _, a := range acks {
		out = append(out, acknowledgementDTO{
			ID:            a.ID,
			Message:       a.Message,
			FromAccountID: a.FromAccountID,
			ToAccountID:   a.ToAccountID,
			RequestID:     a.RequestID,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out
}

type requestDetailDTO struct {
	Request          requestDTO           `json:"request"`
	Contributions    []contributionDTO    `json:"contributions"`
	Repayments       []repaymentDTO       `json:"repayments"`
	Acknowledgements []acknowledgementDTO `json:"acknowledgements"`
}

func toRequestDetailDTO(detail *service.RequestDetail) requestDetailDTO {
	return requestDetailDTO{
		Request:          toRequestDTO(detail.Request),
		Contributions:    toContributionDTOs(detail.Contributions),
		Repayments:       toRepaymentDTOs(detail.Repayments),
		Acknowledgements: toAcknowledgementDTOs(detail.Acknowledgements),
	}
}
