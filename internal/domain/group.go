package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group is a mutual-aid circle. Funding requests live inside exactly
// one group and are visible to members only.
type Group struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}

// Membership links an account to a group. The pair is unique; joining
// twice is a no-op.
type Membership struct {
	ID        string
	AccountID string
	GroupID   string
	JoinedAt  time.Time
}

// GroupStats aggregates a group's funding activity for the stats endpoint.
type GroupStats struct {
	TotalRequests      int64
	TotalContributions decimal.Decimal
	ActiveRequests     int64
}
