package services

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinDetailsLength is the shortest acceptable free-text report description.
const MinDetailsLength = 50

// flaggedReportCount marks a user's history once they have received this
// many reports.
const flaggedReportCount = 3

// SystemIssuerID marks suspensions applied automatically by escalation
// rather than by a human reviewer.
var SystemIssuerID = uuid.Nil

// ModerationService owns report intake: validation, severity
// classification from the policy table, escalation evaluation against the
// reported user's history, and the atomic write of report plus any
// resulting suspension.
type ModerationService struct {
	db       *gorm.DB
	table    policy.Table
	notifier *NotificationService
	locks    *lockTable
}

func NewModerationService(db *gorm.DB, table policy.Table, notifier *NotificationService) *ModerationService {
	return &ModerationService{db: db, table: table, notifier: notifier, locks: newLockTable()}
}

// SubmitReportInput carries the caller-supplied report fields. Severity is
// intentionally absent from the persisted path; a non-empty value here is
// rejected because severity is always derived.
type SubmitReportInput struct {
	ReportedID     uuid.UUID
	Reason         models.ReportReason
	Details        string
	ConversationID *uuid.UUID
	Severity       string
}

// SubmitReportOutcome bundles the stored report, the escalation decision
// and the suspension the decision produced, if any.
type SubmitReportOutcome struct {
	Report     *models.Report           `json:"report"`
	Decision   EscalationDecision       `json:"decision"`
	Suspension *models.SuspensionRecord `json:"suspension,omitempty"`
}

// SubmitReport runs the full intake pipeline under the reported user's
// lock so concurrent reports against the same user cannot race past the
// escalation thresholds.
func (s *ModerationService) SubmitReport(reporterID uuid.UUID, input SubmitReportInput) (*SubmitReportOutcome, error) {
	if reporterID == input.ReportedID {
		return nil, ErrSelfReport
	}
	if input.Severity != "" {
		return nil, &ValidationError{Field: "severity", Reason: "severity is derived from the policy table, not client-supplied"}
	}
	if utf8.RuneCountInString(input.Details) < MinDetailsLength {
		return nil, &ValidationError{Field: "details", Reason: "description must be at least 50 characters"}
	}
	if !models.ValidReasons[input.Reason] {
		return nil, &ValidationError{Field: "reason", Reason: "unknown report reason"}
	}

	severity, ok := policy.ClassifySeverity(s.table, input.Reason)
	if !ok {
		return nil, &ValidationError{Field: "reason", Reason: "no policy entry for reason"}
	}

	lock := s.locks.get(input.ReportedID.String())
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	history, err := s.GetUserHistory(input.ReportedID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:             uuid.New(),
		ReporterID:     reporterID,
		ReportedID:     input.ReportedID,
		Reason:         input.Reason,
		Details:        input.Details,
		ConversationID: input.ConversationID,
		Status:         models.ReportPending,
		Severity:       severity,
		CreatedAt:      now,
	}

	decision := EvaluateEscalation(report, history, now)

	var suspension *models.SuspensionRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return storeErr("report create", err)
		}
		if !decision.Escalate || decision.Action == nil {
			return nil
		}

		action := *decision.Action
		if action.IsSuspension() {
			var txErr error
			suspension, txErr = applySuspensionTx(tx, input.ReportedID, action, report.ID, SystemIssuerID, now)
			if txErr != nil {
				return txErr
			}
		}

		// escalated reports are closed out by the rule engine's action
		resolved := now
		report.Status = models.ReportResolved
		report.ActionTaken = action.Type
		report.ResolvedAt = &resolved
		report.ReviewNotes = decision.Reason
		if err := tx.Save(report).Error; err != nil {
			return storeErr("report update", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(reporterID, models.NotifyReportReceived, map[string]any{"report_id": report.ID})
	if decision.Escalate && decision.Action != nil {
		s.fanOutNotifications(report, *decision.Action)
	}

	return &SubmitReportOutcome{Report: report, Decision: decision, Suspension: suspension}, nil
}

// GetUserHistory recomputes the reported user's aggregation from the
// reports and suspensions tables. It is derived state, never mutated
// independently.
func (s *ModerationService) GetUserHistory(userID uuid.UUID) (*models.UserReportHistory, error) {
	var received []models.Report
	if err := s.db.Where("reported_id = ?", userID).Order("created_at DESC").Find(&received).Error; err != nil {
		return nil, storeErr("history load", err)
	}

	var filed int64
	if err := s.db.Model(&models.Report{}).Where("reporter_id = ?", userID).Count(&filed).Error; err != nil {
		return nil, storeErr("history count", err)
	}

	var suspensions []models.SuspensionRecord
	if err := s.db.Where("user_id = ?", userID).Order("starts_at DESC").Find(&suspensions).Error; err != nil {
		return nil, storeErr("history suspensions", err)
	}

	return &models.UserReportHistory{
		UserID:          userID,
		ReportsReceived: received,
		ReportsFiled:    filed,
		ReceivedCount:   int64(len(received)),
		IsFlagged:       len(received) >= flaggedReportCount,
		Suspensions:     suspensions,
	}, nil
}

// EvaluateReport re-runs the escalation engine for an existing report
// without mutating anything; reviewers use it to preview what the rules
// would do.
func (s *ModerationService) EvaluateReport(reportID uuid.UUID) (*models.Report, EscalationDecision, error) {
	report, err := s.getReport(reportID)
	if err != nil {
		return nil, EscalationDecision{}, err
	}
	history, err := s.GetUserHistory(report.ReportedID)
	if err != nil {
		return nil, EscalationDecision{}, err
	}
	return report, EvaluateEscalation(report, history, time.Now()), nil
}

// reportStatusRank orders the monotonic lifecycle. Transitions only move
// forward and never leave a terminal state.
var reportStatusRank = map[models.ReportStatus]int{
	models.ReportPending:     0,
	models.ReportUnderReview: 1,
	models.ReportResolved:    2,
	models.ReportDismissed:   2,
}

func canTransition(from, to models.ReportStatus) bool {
	fromRank, ok := reportStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := reportStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// applyStatusChange advances the report or rejects the transition, leaving
// the report untouched on rejection. Callers hold the reported user's lock.
func applyStatusChange(report *models.Report, target models.ReportStatus, event string) error {
	if !canTransition(report.Status, target) {
		return &InvalidTransitionError{From: string(report.Status), Event: event}
	}
	report.Status = target
	return nil
}

// ClaimReport moves a pending report under review by the given reviewer.
func (s *ModerationService) ClaimReport(reportID, reviewerID uuid.UUID) (*models.Report, error) {
	report, err := s.getReport(reportID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(report.ReportedID.String())
	lock.Lock()
	defer lock.Unlock()

	// re-read under the lock so a concurrent claim or resolve cannot
	// slip between the check and the write
	report, err = s.getReport(reportID)
	if err != nil {
		return nil, err
	}
	if err := applyStatusChange(report, models.ReportUnderReview, "claim"); err != nil {
		return nil, err
	}

	report.ReviewerID = &reviewerID
	if err := s.db.Save(report).Error; err != nil {
		return nil, storeErr("report update", err)
	}
	return report, nil
}

// ResolveReport closes a report with the reviewer's action, applying any
// suspension atomically with the status change and fanning out
// notifications per the action's flags.
func (s *ModerationService) ResolveReport(reportID, reviewerID uuid.UUID, action models.ReportAction, notes string) (*SubmitReportOutcome, error) {
	if action.Type == models.ActionTemporarySuspension && (action.DurationDays == nil || *action.DurationDays <= 0) {
		return nil, &ValidationError{Field: "duration_days", Reason: "required for temporary suspension"}
	}

	report, err := s.getReport(reportID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(report.ReportedID.String())
	lock.Lock()
	defer lock.Unlock()

	// re-read under the lock; the status may have moved since the first load
	report, err = s.getReport(reportID)
	if err != nil {
		return nil, err
	}

	target := models.ReportResolved
	if action.Type == models.ActionDismissed {
		target = models.ReportDismissed
	}
	if err := applyStatusChange(report, target, "resolve"); err != nil {
		return nil, err
	}

	now := time.Now()
	var suspension *models.SuspensionRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if action.IsSuspension() {
			var txErr error
			suspension, txErr = applySuspensionTx(tx, report.ReportedID, action, report.ID, reviewerID, now)
			if txErr != nil {
				return txErr
			}
		}
		report.ReviewerID = &reviewerID
		report.ReviewNotes = notes
		report.ActionTaken = action.Type
		report.ResolvedAt = &now
		if err := tx.Save(report).Error; err != nil {
			return storeErr("report update", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.fanOutNotifications(report, action)
	return &SubmitReportOutcome{Report: report, Suspension: suspension}, nil
}

// ListReports returns reports for the review queue, optionally filtered by
// status, newest first.
func (s *ModerationService) ListReports(status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storeErr("report count", err)
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, storeErr("report list", err)
	}
	return reports, total, nil
}

func (s *ModerationService) getReport(reportID uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, storeErr("report load", err)
	}
	return &report, nil
}

func (s *ModerationService) fanOutNotifications(report *models.Report, action models.ReportAction) {
	payload := map[string]any{"report_id": report.ID, "action": action.Type}
	if action.NotifyReporter {
		s.notifier.Notify(report.ReporterID, models.NotifyReportResolved, payload)
	}
	if action.NotifyReported {
		kind := models.NotifyWarningIssued
		if action.IsSuspension() {
			kind = models.NotifyAccountSuspended
		}
		s.notifier.Notify(report.ReportedID, kind, payload)
	}
}
