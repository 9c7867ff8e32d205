package dto

import "github.com/google/uuid"

type SubmitReportRequest struct {
	ReportedID     uuid.UUID  `json:"reported_id"`
	Reason         string     `json:"reason"`
	Details        string     `json:"details"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	// rejected when set; severity is derived server-side
	Severity string `json:"severity,omitempty"`
}

type ResolveReportRequest struct {
	Action         string `json:"action"`
	Reason         string `json:"reason"`
	DurationDays   *int   `json:"duration_days,omitempty"`
	NotifyReporter bool   `json:"notify_reporter"`
	NotifyReported bool   `json:"notify_reported"`
	Notes          string `json:"notes"`
}

type ApplySuspensionRequest struct {
	UserID       uuid.UUID `json:"user_id"`
	ReportID     uuid.UUID `json:"report_id"`
	Action       string    `json:"action"`
	Reason       string    `json:"reason"`
	DurationDays *int      `json:"duration_days,omitempty"`
}

type SuspensionResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ReportID      uuid.UUID `json:"report_id"`
	Reason        string    `json:"reason"`
	IsPermanent   bool      `json:"is_permanent"`
	StartsAt      string    `json:"starts_at"`
	EndsAt        *string   `json:"ends_at,omitempty"`
	RemainingDays *int      `json:"remaining_days,omitempty"`
	Active        bool      `json:"active"`
}
