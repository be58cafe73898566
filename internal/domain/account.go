package domain

import "time"

// Account represents a registered person within the platform. The
// credential is stored as a bcrypt hash, never in clear text.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
