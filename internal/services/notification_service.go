package services

import (
	"encoding/json"
	"log/slog"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService records notifications for later delivery. It is
// fire-and-forget: failures are logged, never surfaced to the caller's
// flow.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify writes a notification row for userID. Errors are swallowed after
// logging so moderation and consent flows never fail on delivery problems.
func (s *NotificationService) Notify(userID uuid.UUID, kind models.NotificationKind, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}

	n := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Kind:    kind,
		Payload: datatypes.JSON(data),
	}
	if err := s.db.Create(&n).Error; err != nil {
		slog.Error("notification write failed", "user_id", userID, "kind", kind, "error", err)
	}
}

// ListFor returns a user's notifications, newest first.
func (s *NotificationService) ListFor(userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, storeErr("notification list", err)
	}
	return notifications, nil
}
