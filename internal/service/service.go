// Package service is the business logic layer for the mutual-aid API.
// Every group-scoped operation passes the membership guard before
// touching the store, and ledger mutations publish room events only
// after their transaction has committed.
package service

import (
	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Publisher is the broadcast-channel contract the service needs.
// Implementations must be fire-and-forget.
type Publisher interface {
	Publish(groupID, name string, payload any)
}

// NopPublisher drops every event. Used where no hub is wired.
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, any) {}

// Service holds the repositories and collaborators behind the API.
type Service struct {
	logger   zerolog.Logger
	accounts domain.AccountRepository
	groups   domain.GroupRepository
	requests domain.RequestRepository
	acks     domain.AcknowledgementRepository
	hub      Publisher
}

// New creates a new Service with all required dependencies.
func New(logger zerolog.Logger,
	accounts domain.AccountRepository,
	groups domain.GroupRepository,
	requests domain.RequestRepository,
	acks domain.AcknowledgementRepository,
	hub Publisher,
) *Service {
	if hub == nil {
		hub = NopPublisher{}
	}
	return &Service{
		logger:   logger,
		accounts: accounts,
		groups:   groups,
		requests: requests,
		acks:     acks,
		hub:      hub,
	}
}
