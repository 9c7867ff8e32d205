package services

import (
	"strings"
	"testing"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatusTransitionsAreMonotonic(t *testing.T) {
	cases := []struct {
		from models.ReportStatus
		to   models.ReportStatus
		want bool
	}{
		{models.ReportPending, models.ReportUnderReview, true},
		{models.ReportPending, models.ReportResolved, true},
		{models.ReportPending, models.ReportDismissed, true},
		{models.ReportUnderReview, models.ReportResolved, true},
		{models.ReportUnderReview, models.ReportDismissed, true},

		// no path backwards or sideways out of a terminal state
		{models.ReportUnderReview, models.ReportPending, false},
		{models.ReportResolved, models.ReportPending, false},
		{models.ReportResolved, models.ReportUnderReview, false},
		{models.ReportResolved, models.ReportDismissed, false},
		{models.ReportDismissed, models.ReportResolved, false},
		{models.ReportDismissed, models.ReportUnderReview, false},

		// no self-loops
		{models.ReportPending, models.ReportPending, false},
		{models.ReportResolved, models.ReportResolved, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, canTransition(tc.from, tc.to))
		})
	}
}

func TestStatusChangeCannotLeaveTerminalState(t *testing.T) {
	report := &models.Report{Status: models.ReportPending}

	require.NoError(t, applyStatusChange(report, models.ReportResolved, "resolve"))
	assert.Equal(t, models.ReportResolved, report.Status)

	// a second resolve of the same report is rejected, status untouched
	err := applyStatusChange(report, models.ReportResolved, "resolve")
	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, string(models.ReportResolved), transition.From)
	assert.Equal(t, models.ReportResolved, report.Status)

	err = applyStatusChange(report, models.ReportUnderReview, "claim")
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, models.ReportResolved, report.Status)
}

func TestSubmitReportDetailsCountCharacters(t *testing.T) {
	svc := NewModerationService(nil, policy.DefaultTable(), nil)

	// 25 two-byte runes: 50 bytes but half the required length
	details := strings.Repeat("ü", 25)
	_, err := svc.SubmitReport(uuid.New(), SubmitReportInput{
		ReportedID: uuid.New(),
		Reason:     models.ReasonSpam,
		Details:    details,
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "details", ve.Field)
}

func TestReportActionIsSuspension(t *testing.T) {
	assert.True(t, models.ReportAction{Type: models.ActionTemporarySuspension}.IsSuspension())
	assert.True(t, models.ReportAction{Type: models.ActionPermanentSuspension}.IsSuspension())
	assert.False(t, models.ReportAction{Type: models.ActionWarning}.IsSuspension())
	assert.False(t, models.ReportAction{Type: models.ActionNoAction}.IsSuspension())
}
