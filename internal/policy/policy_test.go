package policy

import (
	"testing"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySeverity(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		reason models.ReportReason
		want   models.Severity
	}{
		{models.ReasonHarassment, models.SeverityLow},
		{models.ReasonInappropriateContent, models.SeverityMedium},
		{models.ReasonFakeProfile, models.SeverityLow},
		{models.ReasonSpam, models.SeverityLow},
		{models.ReasonSafetyConcern, models.SeverityHigh},
		{models.ReasonHatefulConduct, models.SeverityMedium},
		{models.ReasonUnderage, models.SeverityCritical},
		{models.ReasonOther, models.SeverityLow},
	}

	for _, tc := range cases {
		t.Run(string(tc.reason), func(t *testing.T) {
			got, ok := ClassifySeverity(table, tc.reason)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)

			// same input, same tier
			again, _ := ClassifySeverity(table, tc.reason)
			assert.Equal(t, got, again)
		})
	}
}

func TestClassifySeverityUnknownReason(t *testing.T) {
	_, ok := ClassifySeverity(DefaultTable(), models.ReportReason("catfishing"))
	assert.False(t, ok)
}

func TestDefaultTableCoversAllReasons(t *testing.T) {
	table := DefaultTable()
	for reason := range models.ValidReasons {
		_, ok := table[reason]
		assert.True(t, ok, "missing policy entry for %s", reason)
	}
}
