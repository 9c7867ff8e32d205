package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is one persisted error-level log record. Rows are pruned on a
// rolling retention window, never updated.
type SystemLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LoggedAt   time.Time      `gorm:"not null;index" json:"logged_at"`
	Level      string         `gorm:"size:10;not null;index" json:"level"`
	Message    string         `gorm:"type:text" json:"message"`
	RequestID  string         `gorm:"size:64;index" json:"request_id,omitempty"`
	UserID     *string        `gorm:"size:36" json:"user_id,omitempty"`
	Error      string         `gorm:"type:text" json:"error,omitempty"`
	Attributes datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
}
