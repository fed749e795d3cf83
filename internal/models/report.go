package models

import (
	"time"
)

// Report reasons. The enumerated set the mobile client offers when flagging
// content.
var ReportReasons = []string{"spam", "ofensivo", "inapropiado", "estafa", "otro"}

// Report is a user-submitted flag against a Post. Reports are immutable
// after creation; moderators can only delete them. TargetPostID is format
// validated but its existence is not checked at insert, so a report may
// outlive (or never match) its post; the flagged-posts view reconciles.
type Report struct {
	ID           string    `gorm:"primaryKey;size:24" json:"id"`
	TargetPostID string    `gorm:"not null;size:24;index" json:"target_post_id"`
	Reason       string    `gorm:"not null" json:"reason"`
	Details      string    `json:"details,omitempty"`
	ReporterID   string    `gorm:"size:24;index" json:"reporter_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidReason reports whether reason is in the enumerated set.
func ValidReason(reason string) bool {
	for _, r := range ReportReasons {
		if r == reason {
			return true
		}
	}
	return false
}
