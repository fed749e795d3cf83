package validation

import (
	"fmt"
	"strings"

	"campusboard/internal/models"
)

const maxReportDetails = 500

// ReportInput is the payload accepted when filing an abuse report.
type ReportInput struct {
	TargetPostID string `json:"publicacion"`
	Reason       string `json:"motivo"`
	Details      string `json:"detalle"`
}

// ValidateReportInput checks a report creation payload. Only the format of
// the target id is validated here; whether the post still exists is not the
// reporter's problem.
func ValidateReportInput(in *ReportInput) string {
	if in.TargetPostID == "" {
		return "target post id is required"
	}
	if !ValidID(in.TargetPostID) {
		return "target post id is malformed"
	}
	if in.Reason == "" {
		return "reason is required"
	}
	if !models.ValidReason(in.Reason) {
		return fmt.Sprintf("invalid reason: %s (allowed: %s)", in.Reason, strings.Join(models.ReportReasons, ", "))
	}
	if len(in.Details) > maxReportDetails {
		return fmt.Sprintf("details must be at most %d characters", maxReportDetails)
	}
	return ""
}
