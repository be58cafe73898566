package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"server/internal/domain"
	"server/internal/notify"
)

// CreateRequestInput carries a funding request form.
type CreateRequestInput struct {
	Title        string
	Description  string
	AmountNeeded decimal.Decimal
}

// Validate checks field constraints.
func (in CreateRequestInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 200 {
		return fmt.Errorf("%w: title must be 1-200 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" || len(in.Description) > 1000 {
		return fmt.Errorf("%w: description must be 1-1000 characters", domain.ErrValidation)
	}
	if !in.AmountNeeded.IsPositive() {
		return fmt.Errorf("%w: amount needed must be positive", domain.ErrValidation)
	}
	return nil
}

// CreateRequest posts a funding request into a group, members only. The
// room event goes out after the row is durable.
func (s *Service) CreateRequest(ctx context.Context, accountID, groupID string, in CreateRequestInput) (*domain.FundingRequest, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, accountID, groupID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	request, err := s.requests.Create(ctx, &domain.FundingRequest{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		AmountNeeded: in.AmountNeeded,
		GroupID:      groupID,
		RequesterID:  accountID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("request_id", request.ID).Str("group_id", groupID).Msg("funding request created")
	s.hub.Publish(groupID, notify.EventNewRequest, map[string]any{
		"group_id":   groupID,
		"request_id": request.ID,
	})
	return request, nil
}

// ContributeInput carries a contribution form.
type ContributeInput struct {
	Amount      decimal.Decimal
	IsAnonymous bool
}

// Contribute applies the funding ledger rule: append the contribution,
// grow the collected amount and complete the request once collected
// covers the need, all in one atomic store operation. Contributions may
// push collected past needed; pledges are tracked, not capped. The
// room event carries the raw amount even for anonymous contributions —
// anonymity hides the identity, not the number.
func (s *Service) Contribute(ctx context.Context, accountID, requestID string, in ContributeInput) (*domain.FundingRequest, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: contribution amount must be positive", domain.ErrValidation)
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, accountID, request.GroupID); err != nil {
		return nil, err
	}
	updated, _, err := s.requests.ApplyContribution(ctx, domain.ContributionInput{
		RequestID:     requestID,
		ContributorID: accountID,
		Amount:        in.Amount,
		IsAnonymous:   in.IsAnonymous,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("request_id", requestID).
		Str("amount", in.Amount.String()).
		Str("status", string(updated.Status)).
		Msg("contribution applied")
	s.hub.Publish(updated.GroupID, notify.EventNewContribution, map[string]any{
		"request_id": requestID,
		"amount":     in.Amount,
	})
	return updated, nil
}

// RequestDetail bundles a funding request with its dependent records.
type RequestDetail struct {
	Request          domain.FundingRequest
	Contributions    []domain.Contribution
	Repayments       []domain.Repayment
	Acknowledgements []domain.Acknowledgement
}

// GetRequestDetail returns a request and everything attached to it,
// members of the owning group only.
func (s *Service) GetRequestDetail(ctx context.Context, accountID, requestID string) (*RequestDetail, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, accountID, request.GroupID); err != nil {
		return nil, err
	}
	contributions, err := s.requests.ListContributions(ctx, requestID)
	if err != nil {
		return nil, err
	}
	repayments, err := s.requests.ListRepayments(ctx, requestID)
	if err != nil {
		return nil, err
	}
	acks, err := s.acks.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return &RequestDetail{
		Request:          *request,
		Contributions:    contributions,
		Repayments:       repayments,
		Acknowledgements: acks,
	}, nil
}

// ThanksInput carries a thank-you form.
type ThanksInput struct {
	Message string
}

// Validate checks field constraints.
func (in ThanksInput) Validate() error {
	msg := strings.TrimSpace(in.Message)
	if msg == "" || len(msg) > 500 {
		return fmt.Errorf("%w: message must be 1-500 characters", domain.ErrValidation)
	}
	return nil
}

// SendThanks records a thank-you note from the requester. The recipient
// is the earliest contributor; with no contributions yet the note is
// addressed back to the sender.
func (s *Service) SendThanks(ctx context.Context, accountID, requestID string, in ThanksInput) (*domain.Acknowledgement, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequesterID != accountID {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	recipient, err := s.requests.FirstContributor(ctx, requestID)
	if errors.Is(err, domain.ErrNotFound) {
		recipient = accountID
	} else if err != nil {
		return nil, err
	}
	return s.acks.Create(ctx, &domain.Acknowledgement{
		Message:       strings.TrimSpace(in.Message),
		FromAccountID: accountID,
		ToAccountID:   recipient,
		RequestID:     requestID,
	})
}
