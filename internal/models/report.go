package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportReason is the enumerated category a reporter picks.
type ReportReason string

const (
	ReasonHarassment           ReportReason = "harassment"
	ReasonInappropriateContent ReportReason = "inappropriate_content"
	ReasonFakeProfile          ReportReason = "fake_profile"
	ReasonSpam                 ReportReason = "spam"
	ReasonSafetyConcern        ReportReason = "safety_concern"
	ReasonHatefulConduct       ReportReason = "hateful_conduct"
	ReasonUnderage             ReportReason = "underage"
	ReasonOther                ReportReason = "other"
)

// Severity is derived from the policy table, never client-supplied.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ReportStatus transitions are monotonic:
// pending -> under_review -> {resolved, dismissed}.
type ReportStatus string

const (
	ReportPending     ReportStatus = "pending"
	ReportUnderReview ReportStatus = "under_review"
	ReportResolved    ReportStatus = "resolved"
	ReportDismissed   ReportStatus = "dismissed"
)

// ActionType is the disciplinary outcome attached to a resolved report.
type ActionType string

const (
	ActionWarning             ActionType = "warning"
	ActionTemporarySuspension ActionType = "temporary_suspension"
	ActionPermanentSuspension ActionType = "permanent_suspension"
	ActionAccountDeletion     ActionType = "account_deletion"
	ActionDismissed           ActionType = "dismissed"
	ActionNoAction            ActionType = "no_action"
)

// ReportAction is a recommendation or resolution, not a table of its own.
type ReportAction struct {
	Type           ActionType `json:"type"`
	Reason         string     `json:"reason"`
	DurationDays   *int       `json:"duration_days,omitempty"`
	NotifyReporter bool       `json:"notify_reporter"`
	NotifyReported bool       `json:"notify_reported"`
}

// IsSuspension reports whether the action creates a suspension record.
func (a ReportAction) IsSuspension() bool {
	return a.Type == ActionTemporarySuspension || a.Type == ActionPermanentSuspension
}

type Report struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReporterID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReportedID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"reported_id"`
	Reason         ReportReason `gorm:"size:50;not null" json:"reason"`
	Details        string       `gorm:"type:text;not null" json:"details"`
	ConversationID *uuid.UUID   `gorm:"type:uuid" json:"conversation_id,omitempty"`
	Status         ReportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Severity       Severity     `gorm:"size:20;not null;index" json:"severity"`
	ReviewerID     *uuid.UUID   `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	ReviewNotes    string       `gorm:"type:text" json:"review_notes,omitempty"`
	ActionTaken    ActionType   `gorm:"size:30" json:"action_taken,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	ResolvedAt     *time.Time   `json:"resolved_at,omitempty"`

	Reporter User `gorm:"foreignKey:ReporterID" json:"-"`
	Reported User `gorm:"foreignKey:ReportedID" json:"-"`
}

// UserReportHistory is the per-user aggregation the escalation engine reads.
// Recomputed from the reports table on each submission, never stored.
type UserReportHistory struct {
	UserID          uuid.UUID          `json:"user_id"`
	ReportsReceived []Report           `json:"reports_received"`
	ReportsFiled    int64              `json:"reports_filed"`
	ReceivedCount   int64              `json:"received_count"`
	IsFlagged       bool               `json:"is_flagged"`
	Suspensions     []SuspensionRecord `json:"suspensions"`
}

// ReceivedInWindow counts reports received at or after cutoff.
func (h UserReportHistory) ReceivedInWindow(cutoff time.Time) int {
	n := 0
	for _, r := range h.ReportsReceived {
		if !r.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

// SevereCount counts received reports with high or critical severity.
func (h UserReportHistory) SevereCount() int {
	n := 0
	for _, r := range h.ReportsReceived {
		if r.Severity == SeverityHigh || r.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// ValidReasons lists all reasons a reporter may submit.
var ValidReasons = map[ReportReason]bool{
	ReasonHarassment: true, ReasonInappropriateContent: true,
	ReasonFakeProfile: true, ReasonSpam: true,
	ReasonSafetyConcern: true, ReasonHatefulConduct: true,
	ReasonUnderage: true, ReasonOther: true,
}
