package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"server/internal/domain"
)

func TestCreateGroupEnrollsCreator(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	group, err := f.svc.CreateGroup(ctx, "acct-1", CreateGroupInput{Name: "Block club", Description: "street fund"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	ok, err := f.groups.IsMember(ctx, "acct-1", group.ID)
	if err != nil || !ok {
		t.Fatalf("creator not a member (ok=%v err=%v)", ok, err)
	}
}

func TestCreateGroupValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateGroup(context.Background(), "acct-1", CreateGroupInput{Name: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestJoinGroupUnknownGroup(t *testing.T) {
	f := newFixture()

	err := f.svc.JoinGroup(context.Background(), "acct-1", "group-missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMembershipIsReEvaluatedPerCall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	group, err := f.svc.CreateGroup(ctx, "acct-owner", CreateGroupInput{Name: "Neighbors"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	// Not a member yet: guarded reads fail.
	if _, err := f.svc.GetGroupDetail(ctx, "acct-2", group.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("before join: got %v, want ErrUnauthorized", err)
	}

	if err := f.svc.JoinGroup(ctx, "acct-2", group.ID); err != nil {
		t.Fatalf("JoinGroup: %v", err)
	}
	if _, err := f.svc.GetGroupDetail(ctx, "acct-2", group.ID); err != nil {
		t.Fatalf("after join: %v", err)
	}

	// Membership revoked out of band: the next call must see it.
	f.groups.RemoveMember("acct-2", group.ID)
	if _, err := f.svc.GetGroupDetail(ctx, "acct-2", group.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("after removal: got %v, want ErrUnauthorized", err)
	}
}

func TestGroupStatsGuarded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	member, requestID := seedRequest(t, f, 200)

	if _, err := f.svc.Contribute(ctx, member, requestID, ContributeInput{Amount: decimal.NewFromInt(75)}); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	request, _ := f.requests.GetByID(ctx, requestID)
	stats, err := f.svc.GroupStats(ctx, member, request.GroupID)
	if err != nil {
		t.Fatalf("GroupStats: %v", err)
	}
	if stats.TotalRequests != 1 || stats.ActiveRequests != 1 {
		t.Fatalf("counts: %+v", stats)
	}
	if !stats.TotalContributions.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("total contributions: got %s want 75", stats.TotalContributions)
	}

	if _, err := f.svc.GroupStats(ctx, "acct-stranger", request.GroupID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("stranger stats: got %v, want ErrUnauthorized", err)
	}
}

func TestGetDashboard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	member, requestID := seedRequest(t, f, 100)

	if _, err := f.svc.Contribute(ctx, member, requestID, ContributeInput{Amount: decimal.NewFromInt(5)}); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	dash, err := f.svc.GetDashboard(ctx, member)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if len(dash.Groups) != 1 {
		t.Fatalf("groups: got %d want 1", len(dash.Groups))
	}
	if len(dash.Requests) != 0 {
		t.Fatalf("requests: got %d want 0", len(dash.Requests))
	}
	if len(dash.Contributions) != 1 {
		t.Fatalf("contributions: got %d want 1", len(dash.Contributions))
	}
}
