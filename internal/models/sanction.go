package models

import (
	"time"
)

// Sanction types, from lightest to heaviest.
const (
	SanctionAmonestacion = "amonestacion"
	SanctionSuspension   = "suspension"
	SanctionExpulsion    = "expulsion"
)

// SanctionTypes enumerates the valid sanction types.
var SanctionTypes = []string{SanctionAmonestacion, SanctionSuspension, SanctionExpulsion}

// Sanction is a time-boxed restriction applied to a user by a moderator.
// A nil ExpiresAt means the sanction does not expire.
type Sanction struct {
	ID        string     `gorm:"primaryKey;size:24" json:"id"`
	UserID    string     `gorm:"not null;size:24;index" json:"user_id"`
	Type      string     `gorm:"not null" json:"type"`
	Reason    string     `json:"reason,omitempty"`
	IssuedBy  string     `gorm:"size:24" json:"issued_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Active reports whether the sanction is in force at t. Amonestaciones are
// warnings and never restrict the account.
func (s *Sanction) Active(t time.Time) bool {
	if s.Type == SanctionAmonestacion {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(t)
}

// ValidSanctionType reports whether t is in the enumerated set.
func ValidSanctionType(t string) bool {
	for _, s := range SanctionTypes {
		if s == t {
			return true
		}
	}
	return false
}
