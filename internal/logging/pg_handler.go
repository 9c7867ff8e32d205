package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	sinkBatchSize     = 64
	sinkFlushInterval = 10 * time.Second
)

// PGHandler buffers ERROR+ records and writes them to the system_logs table
// in batches. Handle never blocks on the database.
type PGHandler struct {
	db *gorm.DB

	mu      sync.Mutex
	pending []models.SystemLog

	stop     chan struct{}
	stopOnce sync.Once
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	h := &PGHandler{
		db:      db,
		pending: make([]models.SystemLog, 0, sinkBatchSize),
		stop:    make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *PGHandler) run() {
	ticker := time.NewTicker(sinkFlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.flush()
		case <-h.stop:
			h.flush()
			return
		}
	}
}

// Stop drains the buffer and terminates the flush goroutine. Safe to call
// more than once.
func (h *PGHandler) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *PGHandler) flush() {
	h.mu.Lock()
	if len(h.pending) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.pending
	h.pending = make([]models.SystemLog, 0, sinkBatchSize)
	h.mu.Unlock()

	if err := h.db.CreateInBatches(batch, sinkBatchSize).Error; err != nil {
		slog.Error("system log flush failed", "error", err, "dropped", len(batch))
	}
}

func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	row := models.SystemLog{
		ID:       uuid.New(),
		LoggedAt: record.Time,
		Level:    record.Level.String(),
		Message:  record.Message,
	}

	rest := make(map[string]any)
	record.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			row.RequestID = a.Value.String()
		case "user_id":
			id := a.Value.String()
			row.UserID = &id
		case "error":
			row.Error = a.Value.String()
		default:
			rest[a.Key] = a.Value.Any()
		}
		return true
	})
	if len(rest) > 0 {
		if raw, err := json.Marshal(rest); err == nil {
			row.Attributes = datatypes.JSON(raw)
		}
	}

	h.mu.Lock()
	h.pending = append(h.pending, row)
	full := len(h.pending) >= sinkBatchSize
	h.mu.Unlock()

	if full {
		go h.flush()
	}
	return nil
}

func (h *PGHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *PGHandler) WithGroup(string) slog.Handler      { return h }
