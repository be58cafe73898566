package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus enumerates the lifecycle of a funding request.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusCompleted RequestStatus = "completed"
	// RequestStatusCancelled is a terminal state. No route reaches it
	// today; it exists so the schema and status checks already cover it.
	RequestStatusCancelled RequestStatus = "cancelled"
)

// FundingRequest is a monetary ask posted by a group member, tracked to
// completion. AmountCollected and Status only move through
// ApplyContribution; completion is one-way.
type FundingRequest struct {
	ID              string
	Title           string
	Description     string
	AmountNeeded    decimal.Decimal
	AmountCollected decimal.Decimal
	GroupID         string
	RequesterID     string
	Status          RequestStatus
	CreatedAt       time.Time
}

// Completed reports whether the collected amount covers the need.
func (r FundingRequest) Completed() bool {
	return r.AmountCollected.GreaterThanOrEqual(r.AmountNeeded)
}

// Contribution is a pledge by a member toward a funding request.
// Append-only; an anonymous contribution hides the contributor's
// identity, not the amount.
type Contribution struct {
	ID            string
	Amount        decimal.Decimal
	ContributorID string
	RequestID     string
	IsAnonymous   bool
	CreatedAt     time.Time
}

// Repayment records money returned against a fulfilled request. The
// entity is persisted and listed but no operation writes one yet.
type Repayment struct {
	ID        string
	Amount    decimal.Decimal
	RequestID string
	RepaidBy  string
	CreatedAt time.Time
}

// Acknowledgement is a thank-you note from a requester to a contributor.
type Acknowledgement struct {
	ID            string
	Message       string
	FromAccountID string
	ToAccountID   string
	RequestID     string
	CreatedAt     time.Time
}
