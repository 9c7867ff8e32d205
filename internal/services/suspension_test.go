package services

import (
	"testing"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSuspensionRecordPermanent(t *testing.T) {
	now := time.Now()
	userID, reportID, issuerID := uuid.New(), uuid.New(), uuid.New()

	record, err := buildSuspensionRecord(userID, models.ReportAction{
		Type:   models.ActionPermanentSuspension,
		Reason: "repeat severe offender",
	}, reportID, issuerID, now)

	require.NoError(t, err)
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, reportID, record.ReportID)
	assert.Equal(t, issuerID, record.IssuerID)
	assert.True(t, record.IsPermanent)
	assert.Nil(t, record.EndsAt)
	assert.Equal(t, now, record.StartsAt)
}

func TestBuildSuspensionRecordTemporary(t *testing.T) {
	now := time.Now()
	days := 7

	record, err := buildSuspensionRecord(uuid.New(), models.ReportAction{
		Type:         models.ActionTemporarySuspension,
		Reason:       "critical severity report",
		DurationDays: &days,
	}, uuid.New(), uuid.New(), now)

	require.NoError(t, err)
	assert.False(t, record.IsPermanent)
	require.NotNil(t, record.EndsAt)
	assert.Equal(t, now.AddDate(0, 0, 7), *record.EndsAt)
}

func TestBuildSuspensionRecordRejectsNonSuspension(t *testing.T) {
	for _, action := range []models.ActionType{
		models.ActionWarning,
		models.ActionDismissed,
		models.ActionNoAction,
	} {
		t.Run(string(action), func(t *testing.T) {
			_, err := buildSuspensionRecord(uuid.New(), models.ReportAction{Type: action}, uuid.New(), uuid.New(), time.Now())
			var invalid *InvalidActionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, string(action), invalid.Action)
		})
	}
}

func TestBuildSuspensionRecordTemporaryNeedsDuration(t *testing.T) {
	zero := 0
	for name, duration := range map[string]*int{"missing": nil, "zero": &zero} {
		t.Run(name, func(t *testing.T) {
			_, err := buildSuspensionRecord(uuid.New(), models.ReportAction{
				Type:         models.ActionTemporarySuspension,
				DurationDays: duration,
			}, uuid.New(), uuid.New(), time.Now())
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "duration_days", ve.Field)
		})
	}
}

func TestSuspensionIdempotentPerReport(t *testing.T) {
	now := time.Now()
	userID, reportID := uuid.New(), uuid.New()

	first, created, err := reuseOrBuildSuspension(nil, userID, models.ReportAction{
		Type:   models.ActionPermanentSuspension,
		Reason: "repeat severe offender",
	}, reportID, uuid.New(), now)
	require.NoError(t, err)
	require.True(t, created)

	// re-applying for the same (user, report) pair returns the original
	// record untouched, even with a different action
	days := 7
	again, created, err := reuseOrBuildSuspension(first, userID, models.ReportAction{
		Type:         models.ActionTemporarySuspension,
		DurationDays: &days,
	}, reportID, uuid.New(), now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, again)
	assert.True(t, again.IsPermanent)
	assert.Nil(t, again.EndsAt)
	assert.Equal(t, now, again.StartsAt)
}

func TestRemainingDays(t *testing.T) {
	now := time.Now()

	t.Run("permanent has no countdown", func(t *testing.T) {
		record := &models.SuspensionRecord{IsPermanent: true}
		assert.Nil(t, RemainingDays(record, now))
	})

	t.Run("rounds partial days up", func(t *testing.T) {
		ends := now.Add(36 * time.Hour)
		record := &models.SuspensionRecord{EndsAt: &ends}
		got := RemainingDays(record, now)
		require.NotNil(t, got)
		assert.Equal(t, 2, *got)
	})

	t.Run("expired floors at zero", func(t *testing.T) {
		ends := now.Add(-48 * time.Hour)
		record := &models.SuspensionRecord{EndsAt: &ends}
		got := RemainingDays(record, now)
		require.NotNil(t, got)
		assert.Equal(t, 0, *got)
	})
}

func TestIsActive(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	assert.True(t, IsActive(&models.SuspensionRecord{IsPermanent: true}, now))
	assert.True(t, IsActive(&models.SuspensionRecord{EndsAt: &future}, now))
	assert.False(t, IsActive(&models.SuspensionRecord{EndsAt: &past}, now))
	assert.False(t, IsActive(&models.SuspensionRecord{}, now))
}
