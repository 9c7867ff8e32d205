package services

import (
	"testing"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyWith(userID uuid.UUID, reports ...models.Report) *models.UserReportHistory {
	return &models.UserReportHistory{
		UserID:          userID,
		ReportsReceived: reports,
		ReceivedCount:   int64(len(reports)),
	}
}

func receivedReport(severity models.Severity, age time.Duration, now time.Time) models.Report {
	return models.Report{
		ID:        uuid.New(),
		Severity:  severity,
		CreatedAt: now.Add(-age),
	}
}

func TestEvaluateEscalationUnderage(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	report := &models.Report{
		ID:         uuid.New(),
		ReportedID: userID,
		Reason:     models.ReasonUnderage,
		Severity:   models.SeverityCritical,
		CreatedAt:  now,
	}

	// underage escalates permanently even with an empty history
	decision := EvaluateEscalation(report, historyWith(userID), now)
	require.True(t, decision.Escalate)
	require.NotNil(t, decision.Action)
	assert.Equal(t, models.ActionPermanentSuspension, decision.Action.Type)
	assert.Nil(t, decision.Action.DurationDays)
	assert.True(t, decision.Action.NotifyReported)
}

func TestEvaluateEscalationCriticalSeverity(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	report := &models.Report{
		ID:         uuid.New(),
		ReportedID: userID,
		Reason:     models.ReasonSafetyConcern,
		Severity:   models.SeverityCritical,
		CreatedAt:  now,
	}

	decision := EvaluateEscalation(report, historyWith(userID), now)
	require.True(t, decision.Escalate)
	require.NotNil(t, decision.Action)
	assert.Equal(t, models.ActionTemporarySuspension, decision.Action.Type)
	require.NotNil(t, decision.Action.DurationDays)
	assert.Equal(t, criticalSuspensionDays, *decision.Action.DurationDays)
	assert.True(t, decision.Action.NotifyReporter)
	assert.True(t, decision.Action.NotifyReported)
}

func TestEvaluateEscalationRepeatSevereOffender(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	history := historyWith(userID,
		receivedReport(models.SeverityHigh, 40*24*time.Hour, now),
		receivedReport(models.SeverityHigh, 10*24*time.Hour, now),
	)
	report := &models.Report{
		ID:         uuid.New(),
		ReportedID: userID,
		Reason:     models.ReasonInappropriateContent,
		Severity:   models.SeverityMedium,
		CreatedAt:  now,
	}

	// two prior high-severity reports escalate to permanent regardless of
	// the new report's own severity
	decision := EvaluateEscalation(report, history, now)
	require.True(t, decision.Escalate)
	require.NotNil(t, decision.Action)
	assert.Equal(t, models.ActionPermanentSuspension, decision.Action.Type)
	assert.Nil(t, decision.Action.DurationDays)
	assert.True(t, decision.Action.NotifyReported)
	assert.False(t, decision.Action.NotifyReporter)
}

func TestEvaluateEscalationRepeatOffenderWindow(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	history := historyWith(userID,
		receivedReport(models.SeverityLow, 25*24*time.Hour, now),
		receivedReport(models.SeverityLow, 12*24*time.Hour, now),
		receivedReport(models.SeverityMedium, 2*24*time.Hour, now),
	)
	report := &models.Report{
		ID:         uuid.New(),
		ReportedID: userID,
		Reason:     models.ReasonSpam,
		Severity:   models.SeverityLow,
		CreatedAt:  now,
	}

	decision := EvaluateEscalation(report, history, now)
	require.True(t, decision.Escalate)
	require.NotNil(t, decision.Action)
	assert.Equal(t, models.ActionTemporarySuspension, decision.Action.Type)
	require.NotNil(t, decision.Action.DurationDays)
	assert.Equal(t, repeatSuspensionDays, *decision.Action.DurationDays)
	assert.True(t, decision.Action.NotifyReported)
	assert.False(t, decision.Action.NotifyReporter)
}

func TestEvaluateEscalationWindowExcludesOldReports(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	// three low reports, but only two inside the 30-day window
	history := historyWith(userID,
		receivedReport(models.SeverityLow, 45*24*time.Hour, now),
		receivedReport(models.SeverityLow, 12*24*time.Hour, now),
		receivedReport(models.SeverityLow, 2*24*time.Hour, now),
	)
	report := &models.Report{
		ID:         uuid.New(),
		ReportedID: userID,
		Reason:     models.ReasonSpam,
		Severity:   models.SeverityLow,
		CreatedAt:  now,
	}

	decision := EvaluateEscalation(report, history, now)
	assert.False(t, decision.Escalate)
	assert.Nil(t, decision.Action)
}

func TestEvaluateEscalationManualReviewFallthrough(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	report := &models.Report{
		ID:         uuid.New(),
		ReportedID: userID,
		Reason:     models.ReasonHarassment,
		Severity:   models.SeverityLow,
		CreatedAt:  now,
	}

	decision := EvaluateEscalation(report, historyWith(userID), now)
	assert.False(t, decision.Escalate)
	assert.Nil(t, decision.Action)
	assert.NotEmpty(t, decision.Reason)
}

func TestEvaluateEscalationFirstMatchWins(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	// both the underage rule and the repeat-severe rule match; the
	// underage rule is declared first and decides alone
	history := historyWith(userID,
		receivedReport(models.SeverityCritical, 5*24*time.Hour, now),
		receivedReport(models.SeverityHigh, 3*24*time.Hour, now),
	)
	report := &models.Report{
		ID:         uuid.New(),
		ReportedID: userID,
		Reason:     models.ReasonUnderage,
		Severity:   models.SeverityCritical,
		CreatedAt:  now,
	}

	decision := EvaluateEscalation(report, history, now)
	require.True(t, decision.Escalate)
	assert.Equal(t, "reason is underage", decision.Reason)
}
