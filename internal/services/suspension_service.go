package services

import (
	"errors"
	"math"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuspensionService owns the suspension lifecycle. Records are immutable
// once created; application is idempotent per (user, originating report).
type SuspensionService struct {
	db    *gorm.DB
	locks *lockTable
}

func NewSuspensionService(db *gorm.DB) *SuspensionService {
	return &SuspensionService{db: db, locks: newLockTable()}
}

// buildSuspensionRecord validates the action and produces the record to
// persist. It does not touch the store.
func buildSuspensionRecord(userID uuid.UUID, action models.ReportAction, reportID, issuerID uuid.UUID, now time.Time) (*models.SuspensionRecord, error) {
	if !action.IsSuspension() {
		return nil, &InvalidActionError{Action: string(action.Type)}
	}

	record := &models.SuspensionRecord{
		ID:       uuid.New(),
		UserID:   userID,
		ReportID: reportID,
		IssuerID: issuerID,
		Reason:   action.Reason,
		StartsAt: now,
	}

	switch action.Type {
	case models.ActionPermanentSuspension:
		record.IsPermanent = true
	case models.ActionTemporarySuspension:
		if action.DurationDays == nil || *action.DurationDays <= 0 {
			return nil, &ValidationError{Field: "duration_days", Reason: "required for temporary suspension"}
		}
		ends := now.AddDate(0, 0, *action.DurationDays)
		record.EndsAt = &ends
	}

	return record, nil
}

// reuseOrBuildSuspension enforces per-(user, report) idempotency: when a
// record already exists for the pair it wins and comes back untouched,
// whatever the new action says.
func reuseOrBuildSuspension(existing *models.SuspensionRecord, userID uuid.UUID, action models.ReportAction, reportID, issuerID uuid.UUID, now time.Time) (*models.SuspensionRecord, bool, error) {
	if existing != nil {
		return existing, false, nil
	}
	record, err := buildSuspensionRecord(userID, action, reportID, issuerID, now)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// applySuspensionTx creates the record inside an existing transaction,
// returning the prior record unchanged when one already exists for the
// same (user, report) pair.
func applySuspensionTx(tx *gorm.DB, userID uuid.UUID, action models.ReportAction, reportID, issuerID uuid.UUID, now time.Time) (*models.SuspensionRecord, error) {
	var existing *models.SuspensionRecord
	var found models.SuspensionRecord
	err := tx.Where("user_id = ? AND report_id = ?", userID, reportID).First(&found).Error
	switch {
	case err == nil:
		existing = &found
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeErr("suspension lookup", err)
	}

	record, created, err := reuseOrBuildSuspension(existing, userID, action, reportID, issuerID, now)
	if err != nil {
		return nil, err
	}
	if created {
		if err := tx.Create(record).Error; err != nil {
			return nil, storeErr("suspension create", err)
		}
	}
	return record, nil
}

// ApplySuspension creates a suspension record consistent with the action.
// Fails with InvalidActionError when the action is not a suspension variant
// and with ValidationError when a temporary action lacks a duration.
func (s *SuspensionService) ApplySuspension(userID uuid.UUID, action models.ReportAction, reportID, issuerID uuid.UUID) (*models.SuspensionRecord, error) {
	lock := s.locks.get(userID.String())
	lock.Lock()
	defer lock.Unlock()

	var record *models.SuspensionRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		record, txErr = applySuspensionTx(tx, userID, action, reportID, issuerID, time.Now())
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// RemainingDays returns nil for permanent records, otherwise the days left
// rounded up and floored at zero.
func RemainingDays(record *models.SuspensionRecord, now time.Time) *int {
	if record.IsPermanent || record.EndsAt == nil {
		return nil
	}
	days := int(math.Ceil(record.EndsAt.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return &days
}

// IsActive reports whether the suspension is still in force at now.
func IsActive(record *models.SuspensionRecord, now time.Time) bool {
	if record.IsPermanent {
		return true
	}
	return record.EndsAt != nil && now.Before(*record.EndsAt)
}

// ActiveFor returns the user's currently active suspension, or nil.
func (s *SuspensionService) ActiveFor(userID uuid.UUID, now time.Time) (*models.SuspensionRecord, error) {
	var records []models.SuspensionRecord
	if err := s.db.Where("user_id = ?", userID).Order("starts_at DESC").Find(&records).Error; err != nil {
		return nil, storeErr("suspension list", err)
	}
	for i := range records {
		if IsActive(&records[i], now) {
			return &records[i], nil
		}
	}
	return nil, nil
}
