package models

import (
	"time"

	"github.com/google/uuid"
)

// SuspensionRecord is created by the suspension lifecycle manager only and is
// immutable once written. A nil EndsAt means the suspension is permanent.
type SuspensionRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_suspension_user_report" json:"user_id"`
	ReportID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_suspension_user_report" json:"report_id"`
	IssuerID    uuid.UUID  `gorm:"type:uuid;not null" json:"issuer_id"`
	Reason      string     `gorm:"type:text;not null" json:"reason"`
	IsPermanent bool       `gorm:"not null" json:"is_permanent"`
	StartsAt    time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
