package service

import (
	"context"
	"fmt"
	"strings"

	"server/internal/domain"
)

// CreateGroupInput carries a group creation form.
type CreateGroupInput struct {
	Name        string
	Description string
}

// Validate checks field constraints.
func (in CreateGroupInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return fmt.Errorf("%w: group name must be 1-100 characters", domain.ErrValidation)
	}
	if len(in.Description) > 500 {
		return fmt.Errorf("%w: description must be at most 500 characters", domain.ErrValidation)
	}
	return nil
}

// CreateGroup creates a group and enrolls the creator as its first member.
func (s *Service) CreateGroup(ctx context.Context, accountID string, in CreateGroupInput) (*domain.Group, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	group, err := s.groups.Create(ctx, &domain.Group{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   accountID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.groups.AddMember(ctx, accountID, group.ID); err != nil {
		return nil, fmt.Errorf("enroll creator: %w", err)
	}
	s.logger.Info().Str("group_id", group.ID).Str("account_id", accountID).Msg("group created")
	return group, nil
}

// JoinGroup enrolls an account into an existing group. Joining twice is
// a no-op.
func (s *Service) JoinGroup(ctx context.Context, accountID, groupID string) error {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.groups.AddMember(ctx, accountID, groupID)
}

// MyGroups returns the groups the account belongs to.
func (s *Service) MyGroups(ctx context.Context, accountID string) ([]domain.Group, error) {
	return s.groups.ListByMember(ctx, accountID)
}

// requireMember is the membership guard: it re-queries the membership
// relation on every call and aborts the operation with
// domain.ErrUnauthorized before any state is touched.
func (s *Service) requireMember(ctx context.Context, accountID, groupID string) error {
	ok, err := s.groups.IsMember(ctx, accountID, groupID)
	if err != nil {
		return fmt.Errorf("membership check: %w", err)
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

// IsMember exposes the membership guard to transports that gate access
// themselves, such as the websocket room endpoint.
func (s *Service) IsMember(ctx context.Context, accountID, groupID string) (bool, error) {
	return s.groups.IsMember(ctx, accountID, groupID)
}

// GroupDetail bundles a group with its funding requests.
type GroupDetail struct {
	Group    domain.Group
	Requests []domain.FundingRequest
}

// GetGroupDetail returns a group and its requests, members only.
func (s *Service) GetGroupDetail(ctx context.Context, accountID, groupID string) (*GroupDetail, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, accountID, groupID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupDetail{Group: *group, Requests: requests}, nil
}

// GroupStats returns aggregate funding numbers for a group, members only.
func (s *Service) GroupStats(ctx context.Context, accountID, groupID string) (*domain.GroupStats, error) {
	if err := s.requireMember(ctx, accountID, groupID); err != nil {
		return nil, err
	}
	return s.requests.GroupStats(ctx, groupID)
}

// Dashboard bundles everything the landing view shows for one account.
type Dashboard struct {
	Groups        []domain.Group
	Requests      []domain.FundingRequest
	Contributions []domain.Contribution
}

// GetDashboard returns the caller's groups, authored requests and
// contributions.
func (s *Service) GetDashboard(ctx context.Context, accountID string) (*Dashboard, error) {
	groups, err := s.groups.ListByMember(ctx, accountID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequester(ctx, accountID)
	if err != nil {
		return nil, err
	}
	contributions, err := s.requests.ListContributionsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Groups: groups, Requests: requests, Contributions: contributions}, nil
}
