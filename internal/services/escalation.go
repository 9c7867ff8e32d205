package services

import (
	"fmt"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
)

const (
	// EscalationLookbackDays is the rolling window for repeat-report counting.
	EscalationLookbackDays = 30

	criticalSuspensionDays = 7
	repeatSuspensionDays   = 14

	severeReportLimit = 2
	repeatReportLimit = 3
)

// EscalationDecision is a recommendation, never applied directly. A
// non-escalating decision means the report waits for manual review; that is
// a valid terminal outcome, not an error.
type EscalationDecision struct {
	Escalate bool                 `json:"escalate"`
	Action   *models.ReportAction `json:"action,omitempty"`
	Reason   string               `json:"reason"`
}

// escalationRule is one predicate+action pair. Rules run in declaration
// order and the first match wins; nothing accumulates across rules.
type escalationRule struct {
	name    string
	matches func(r *models.Report, h *models.UserReportHistory, now time.Time) bool
	decide  func(r *models.Report, h *models.UserReportHistory) EscalationDecision
}

var escalationRules = []escalationRule{
	{
		name: "underage",
		matches: func(r *models.Report, _ *models.UserReportHistory, _ time.Time) bool {
			return r.Reason == models.ReasonUnderage
		},
		decide: func(r *models.Report, _ *models.UserReportHistory) EscalationDecision {
			return EscalationDecision{
				Escalate: true,
				Action: &models.ReportAction{
					Type:           models.ActionPermanentSuspension,
					Reason:         "underage user report requires immediate permanent suspension pending verification",
					NotifyReported: true,
				},
				Reason: "reason is underage",
			}
		},
	},
	{
		name: "critical_severity",
		matches: func(r *models.Report, _ *models.UserReportHistory, _ time.Time) bool {
			return r.Severity == models.SeverityCritical
		},
		decide: func(r *models.Report, _ *models.UserReportHistory) EscalationDecision {
			days := criticalSuspensionDays
			return EscalationDecision{
				Escalate: true,
				Action: &models.ReportAction{
					Type:           models.ActionTemporarySuspension,
					Reason:         "critical severity report triggers immediate temporary suspension",
					DurationDays:   &days,
					NotifyReporter: true,
					NotifyReported: true,
				},
				Reason: "report severity is critical",
			}
		},
	},
	{
		name: "repeat_severe_offender",
		matches: func(_ *models.Report, h *models.UserReportHistory, _ time.Time) bool {
			return h.SevereCount() >= severeReportLimit
		},
		decide: func(_ *models.Report, h *models.UserReportHistory) EscalationDecision {
			return EscalationDecision{
				Escalate: true,
				Action: &models.ReportAction{
					Type:           models.ActionPermanentSuspension,
					Reason:         fmt.Sprintf("%d or more high-severity reports received", severeReportLimit),
					NotifyReported: true,
				},
				Reason: fmt.Sprintf("user has %d high/critical reports", h.SevereCount()),
			}
		},
	},
	{
		name: "repeat_offender_window",
		matches: func(_ *models.Report, h *models.UserReportHistory, now time.Time) bool {
			cutoff := now.AddDate(0, 0, -EscalationLookbackDays)
			return h.ReceivedInWindow(cutoff) >= repeatReportLimit
		},
		decide: func(_ *models.Report, h *models.UserReportHistory) EscalationDecision {
			days := repeatSuspensionDays
			return EscalationDecision{
				Escalate: true,
				Action: &models.ReportAction{
					Type:           models.ActionTemporarySuspension,
					Reason:         fmt.Sprintf("%d or more reports received in the last %d days", repeatReportLimit, EscalationLookbackDays),
					DurationDays:   &days,
					NotifyReported: true,
				},
				Reason: fmt.Sprintf("%d reports within the lookback window", repeatReportLimit),
			}
		},
	},
}

// EvaluateEscalation runs the newly classified report and the reported
// user's history through the ordered rule list. It never mutates state;
// the caller decides what to do with the recommendation.
func EvaluateEscalation(report *models.Report, history *models.UserReportHistory, now time.Time) EscalationDecision {
	for _, rule := range escalationRules {
		if rule.matches(report, history, now) {
			return rule.decide(report, history)
		}
	}
	return EscalationDecision{
		Escalate: false,
		Reason:   "no escalation rule matched; report queued for manual review",
	}
}
