package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountRepository defines access methods for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

// GroupRepository handles groups and the membership relation. IsMember
// is the authorization primitive for every group-scoped operation and
// is re-queried per call.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) (*Group, error)
	GetByID(ctx context.Context, id string) (*Group, error)
	ListByMember(ctx context.Context, accountID string) ([]Group, error)
	AddMember(ctx context.Context, accountID, groupID string) error
	IsMember(ctx context.Context, accountID, groupID string) (bool, error)
}

// ContributionInput carries the parameters of one ledger application.
type ContributionInput struct {
	RequestID     string
	ContributorID string
	Amount        decimal.Decimal
	IsAnonymous   bool
}

// RequestRepository persists funding requests and their dependent
// records. ApplyContribution must record the contribution and update
// the request's collected amount and status as one atomic unit,
// serializing concurrent applications against the same request.
type RequestRepository interface {
	Create(ctx context.Context, request *FundingRequest) (*FundingRequest, error)
	GetByID(ctx context.Context, id string) (*FundingRequest, error)
	ListByGroup(ctx context.Context, groupID string) ([]FundingRequest, error)
	ListByRequester(ctx context.Context, accountID string) ([]FundingRequest, error)
	ApplyContribution(ctx context.Context, input ContributionInput) (*FundingRequest, *Contribution, error)
	ListContributions(ctx context.Context, requestID string) ([]Contribution, error)
	ListContributionsByAccount(ctx context.Context, accountID string) ([]Contribution, error)
	FirstContributor(ctx context.Context, requestID string) (string, error)
	ListRepayments(ctx context.Context, requestID string) ([]Repayment, error)
	GroupStats(ctx context.Context, groupID string) (*GroupStats, error)
}

// AcknowledgementRepository persists thank-you notes.
type AcknowledgementRepository interface {
	Create(ctx context.Context, ack *Acknowledgement) (*Acknowledgement, error)
	ListByRequest(ctx context.Context, requestID string) ([]Acknowledgement, error)
}
