package policy

import (
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
)

// Entry maps a report reason to its moderation policy.
type Entry struct {
	MinimumAction        models.ActionType
	EscalationThreshold  int
	AutoFlag             bool
	RequiresVerification bool
}

// Table is the immutable reason->policy configuration. It is passed into the
// classifier explicitly so deployments can override it and tests stay
// deterministic.
type Table map[models.ReportReason]Entry

// DefaultTable returns the shipped policy configuration.
func DefaultTable() Table {
	return Table{
		models.ReasonHarassment:           {MinimumAction: models.ActionWarning, EscalationThreshold: 2},
		models.ReasonInappropriateContent: {MinimumAction: models.ActionWarning, EscalationThreshold: 1},
		models.ReasonFakeProfile:          {MinimumAction: models.ActionWarning, EscalationThreshold: 2},
		models.ReasonSpam:                 {MinimumAction: models.ActionWarning, EscalationThreshold: 2},
		models.ReasonSafetyConcern:        {MinimumAction: models.ActionTemporarySuspension, EscalationThreshold: 1, AutoFlag: true},
		models.ReasonHatefulConduct:       {MinimumAction: models.ActionWarning, EscalationThreshold: 1},
		models.ReasonUnderage:             {MinimumAction: models.ActionPermanentSuspension, EscalationThreshold: 1, AutoFlag: true, RequiresVerification: true},
		models.ReasonOther:                {MinimumAction: models.ActionWarning, EscalationThreshold: 3},
	}
}

// ClassifySeverity derives the severity tier for a reason from the table.
// Severity is never taken from the caller. The second return is false when
// the reason is not in the table.
func ClassifySeverity(table Table, reason models.ReportReason) (models.Severity, bool) {
	entry, ok := table[reason]
	if !ok {
		return "", false
	}

	switch {
	case entry.MinimumAction == models.ActionPermanentSuspension,
		entry.AutoFlag && entry.RequiresVerification:
		return models.SeverityCritical, true
	case entry.MinimumAction == models.ActionTemporarySuspension:
		return models.SeverityHigh, true
	case entry.EscalationThreshold == 1:
		return models.SeverityMedium, true
	default:
		return models.SeverityLow, true
	}
}
