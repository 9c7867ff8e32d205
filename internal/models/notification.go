package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationKind identifies what the recipient is being told about.
type NotificationKind string

const (
	NotifyReportReceived   NotificationKind = "report_received"
	NotifyReportResolved   NotificationKind = "report_resolved"
	NotifyWarningIssued    NotificationKind = "warning_issued"
	NotifyAccountSuspended NotificationKind = "account_suspended"
	NotifyPhotosUnlocked   NotificationKind = "photos_unlocked"
	NotifyAssessmentScored NotificationKind = "assessment_scored"
)

// Notification is the durable record behind the fire-and-forget notify
// collaborator. Delivery mechanics live outside this service.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      NotificationKind `gorm:"size:40;not null" json:"kind"`
	Payload   datatypes.JSON   `gorm:"type:jsonb;default:'{}'" json:"payload"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
