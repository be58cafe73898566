package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"server/internal/domain"
)

// In-memory repositories backing the service tests. ApplyContribution
// serializes on a mutex the way the SQL implementation serializes on a
// row lock.

type memAccounts struct {
	mu   sync.Mutex
	next int
	byID map[string]domain.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: make(map[string]domain.Account)}
}

func (m *memAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == account.Username || existing.Email == account.Email {
			return nil, domain.ErrConflict
		}
	}
	m.next++
	created := *account
	created.ID = fmt.Sprintf("acct-%d", m.next)
	m.byID[created.ID] = created
	return &created, nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &account, nil
}

func (m *memAccounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.byID {
		if account.Username == username {
			copied := account
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memberKey struct{ account, group string }

type memGroups struct {
	mu      sync.Mutex
	next    int
	byID    map[string]domain.Group
	members map[memberKey]bool
}

func newMemGroups() *memGroups {
	return &memGroups{byID: make(map[string]domain.Group), members: make(map[memberKey]bool)}
}

func (m *memGroups) Create(_ context.Context, group *domain.Group) (*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	created := *group
	created.ID = fmt.Sprintf("group-%d", m.next)
	m.byID[created.ID] = created
	return &created, nil
}

func (m *memGroups) GetByID(_ context.Context, id string) (*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	group, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &group, nil
}

func (m *memGroups) ListByMember(_ context.Context, accountID string) ([]domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Group
	for key := range m.members {
		if key.account == accountID {
			out = append(out, m.byID[key.group])
		}
	}
	return out, nil
}

func (m *memGroups) AddMember(_ context.Context, accountID, groupID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[memberKey{accountID, groupID}] = true
	return nil
}

func (m *memGroups) RemoveMember(accountID, groupID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members, memberKey{accountID, groupID})
}

func (m *memGroups) IsMember(_ context.Context, accountID, groupID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[memberKey{accountID, groupID}], nil
}

type memRequests struct {
	mu            sync.Mutex
	next          int
	byID          map[string]domain.FundingRequest
	contributions []domain.Contribution
	repayments    []domain.Repayment
}

func newMemRequests() *memRequests {
	return &memRequests{byID: make(map[string]domain.FundingRequest)}
}

func (m *memRequests) Create(_ context.Context, request *domain.FundingRequest) (*domain.FundingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	created := *request
	created.ID = fmt.Sprintf("req-%d", m.next)
	created.AmountCollected = decimal.Zero
	created.Status = domain.RequestStatusActive
	m.byID[created.ID] = created
	return &created, nil
}

func (m *memRequests) GetByID(_ context.Context, id string) (*domain.FundingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &request, nil
}

func (m *memRequests) ListByGroup(_ context.Context, groupID string) ([]domain.FundingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FundingRequest
	for _, request := range m.byID {
		if request.GroupID == groupID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (m *memRequests) ListByRequester(_ context.Context, accountID string) ([]domain.FundingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FundingRequest
	for _, request := range m.byID {
		if request.RequesterID == accountID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (m *memRequests) ApplyContribution(_ context.Context, input domain.ContributionInput) (*domain.FundingRequest, *domain.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.byID[input.RequestID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	contribution := domain.Contribution{
		ID:            fmt.Sprintf("contrib-%d", len(m.contributions)+1),
		Amount:        input.Amount,
		ContributorID: input.ContributorID,
		RequestID:     input.RequestID,
		IsAnonymous:   input.IsAnonymous,
	}
	m.contributions = append(m.contributions, contribution)
	request.AmountCollected = request.AmountCollected.Add(input.Amount)
	if request.Status == domain.RequestStatusActive && request.Completed() {
		request.Status = domain.RequestStatusCompleted
	}
	m.byID[request.ID] = request
	return &request, &contribution, nil
}

func (m *memRequests) ListContributions(_ context.Context, requestID string) ([]domain.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Contribution
	for _, c := range m.contributions {
		if c.RequestID == requestID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRequests) ListContributionsByAccount(_ context.Context, accountID string) ([]domain.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Contribution
	for _, c := range m.contributions {
		if c.ContributorID == accountID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRequests) FirstContributor(_ context.Context, requestID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contributions {
		if c.RequestID == requestID {
			return c.ContributorID, nil
		}
	}
	return "", domain.ErrNotFound
}

func (m *memRequests) ListRepayments(_ context.Context, requestID string) ([]domain.Repayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Repayment
	for _, r := range m.repayments {
		if r.RequestID == requestID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRequests) GroupStats(_ context.Context, groupID string) (*domain.GroupStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := domain.GroupStats{TotalContributions: decimal.Zero}
	for _, request := range m.byID {
		if request.GroupID != groupID {
			continue
		}
		stats.TotalRequests++
		if request.Status == domain.RequestStatusActive {
			stats.ActiveRequests++
		}
		for _, c := range m.contributions {
			if c.RequestID == request.ID {
				stats.TotalContributions = stats.TotalContributions.Add(c.Amount)
			}
		}
	}
	return &stats, nil
}

type memAcks struct {
	mu   sync.Mutex
	acks []domain.Acknowledgement
}

func (m *memAcks) Create(_ context.Context, ack *domain.Acknowledgement) (*domain.Acknowledgement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *ack
	created.ID = fmt.Sprintf("ack-%d", len(m.acks)+1)
	m.acks = append(m.acks, created)
	return &created, nil
}

func (m *memAcks) ListByRequest(_ context.Context, requestID string) ([]domain.Acknowledgement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Acknowledgement
	for _, ack := range m.acks {
		if ack.RequestID == requestID {
			out = append(out, ack)
		}
	}
	return out, nil
}

type recordingHub struct {
	mu     sync.Mutex
	events []struct {
		GroupID string
		Name    string
		Payload any
	}
}

func (h *recordingHub) Publish(groupID, name string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, struct {
		GroupID string
		Name    string
		Payload any
	}{groupID, name, payload})
}

type fixture struct {
	svc      *Service
	accounts *memAccounts
	groups   *memGroups
	requests *memRequests
	acks     *memAcks
	hub      *recordingHub
}

func newFixture() *fixture {
	accounts := newMemAccounts()
	groups := newMemGroups()
	requests := newMemRequests()
	acks := &memAcks{}
	hub := &recordingHub{}
	return &fixture{
		svc:      New(zerolog.Nop(), accounts, groups, requests, acks, hub),
		accounts: accounts,
		groups:   groups,
		requests: requests,
		acks:     acks,
		hub:      hub,
	}
}
