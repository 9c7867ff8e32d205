package logging

import (
	"log/slog"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"gorm.io/gorm"
)

// logRetentionDays bounds how long persisted error logs are kept.
const logRetentionDays = 30

// StartCleanup prunes expired system_logs rows once a day until done closes.
// The first pass runs shortly after startup so restarts don't defer pruning
// by a full day.
func StartCleanup(db *gorm.DB, done <-chan struct{}) {
	go func() {
		timer := time.NewTimer(time.Minute)
		defer timer.Stop()
		for {
			select {
			case <-timer.C:
				prune(db)
				timer.Reset(24 * time.Hour)
			case <-done:
				return
			}
		}
	}()
}

func prune(db *gorm.DB) {
	cutoff := time.Now().AddDate(0, 0, -logRetentionDays)
	res := db.Where("logged_at < ?", cutoff).Delete(&models.SystemLog{})
	if res.Error != nil {
		slog.Error("system log prune failed", "error", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		slog.Info("pruned expired system logs", "rows", res.RowsAffected)
	}
}
