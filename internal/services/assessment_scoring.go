package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
)

const maxOptionScore = 10

// lowScoreCeiling is the selected-option score at or below which a
// low_score trigger fires.
const lowScoreCeiling = 3

// inconsistentSpread is the same-category score gap beyond which answers
// count as inconsistent.
const inconsistentSpread = 6

// suspiciousRedFlagCount is the red-flag total that marks the whole
// submission as a suspicious pattern.
const suspiciousRedFlagCount = 3

// ScoredQuestion is a question decoded out of its jsonb columns for the
// scoring engine.
type ScoredQuestion struct {
	ID       uuid.UUID
	Category models.AssessmentCategory
	Options  []models.AnswerOption
	Trigger  *models.AdaptiveTrigger
}

// Answer is one selected option for one question.
type Answer struct {
	QuestionID uuid.UUID `json:"question_id"`
	OptionKey  string    `json:"option_key"`
}

// IntegrityFlag signals a dishonest or inconsistent answer pattern.
type IntegrityFlag struct {
	QuestionID uuid.UUID `json:"question_id"`
	Kind       string    `json:"kind"`
	Detail     string    `json:"detail"`
}

// GrowthArea is a category averaging below the pass threshold.
type GrowthArea struct {
	Category models.AssessmentCategory `json:"category"`
	Score    float64                   `json:"score"`
}

// ScoreOutcome is the deterministic, re-derivable result of scoring a full
// answer set. Scoring the same answers twice yields identical outcomes.
type ScoreOutcome struct {
	TotalScore     int                                   `json:"total_score"`
	Percentage     int                                   `json:"percentage"`
	Passed         bool                                  `json:"passed"`
	CategoryScores map[models.AssessmentCategory]float64 `json:"category_scores"`
	IntegrityFlags []IntegrityFlag                       `json:"integrity_flags"`
	GrowthAreas    []GrowthArea                          `json:"growth_areas"`
	FollowUpIDs    []uuid.UUID                           `json:"follow_up_ids"`
}

// ScoreAssessment scores the full ordered answer set against the questions.
// threshold is the pass percentage and must come from the caller; the engine
// assumes no default. Pass is boundary inclusive.
func ScoreAssessment(questions []ScoredQuestion, answers []Answer, threshold float64) (*ScoreOutcome, error) {
	if len(answers) == 0 {
		return nil, &ValidationError{Field: "answers", Reason: "at least one answer is required"}
	}
	if threshold < 0 || threshold > 100 {
		return nil, &ValidationError{Field: "threshold", Reason: "must be between 0 and 100"}
	}

	byID := make(map[uuid.UUID]*ScoredQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	// resolve each answer to its question and selected option
	type resolved struct {
		question *ScoredQuestion
		option   models.AnswerOption
	}
	seen := make(map[uuid.UUID]bool, len(answers))
	resolvedAnswers := make([]resolved, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, &ValidationError{Field: "answers", Reason: fmt.Sprintf("unknown question %s", a.QuestionID)}
		}
		if seen[a.QuestionID] {
			return nil, &ValidationError{Field: "answers", Reason: fmt.Sprintf("duplicate answer for question %s", a.QuestionID)}
		}
		seen[a.QuestionID] = true

		var opt *models.AnswerOption
		for i := range q.Options {
			if q.Options[i].Key == a.OptionKey {
				opt = &q.Options[i]
				break
			}
		}
		if opt == nil {
			return nil, &ValidationError{Field: "answers", Reason: fmt.Sprintf("unknown option %q for question %s", a.OptionKey, a.QuestionID)}
		}
		resolvedAnswers = append(resolvedAnswers, resolved{question: q, option: *opt})
	}
	for _, q := range questions {
		if !seen[q.ID] {
			return nil, &ValidationError{Field: "answers", Reason: fmt.Sprintf("question %s left unanswered", q.ID)}
		}
	}

	total := 0
	redFlags := 0
	categoryTotals := make(map[models.AssessmentCategory]int)
	categoryCounts := make(map[models.AssessmentCategory]int)
	categoryScoreLists := make(map[models.AssessmentCategory][]int)
	for _, ra := range resolvedAnswers {
		total += ra.option.Score
		if ra.option.RedFlag {
			redFlags++
		}
		cat := ra.question.Category
		categoryTotals[cat] += ra.option.Score
		categoryCounts[cat]++
		categoryScoreLists[cat] = append(categoryScoreLists[cat], ra.option.Score)
	}

	percentage := int(math.Round(float64(total) / float64(maxOptionScore*len(resolvedAnswers)) * 100))

	categoryScores := make(map[models.AssessmentCategory]float64, len(categoryTotals))
	for cat, sum := range categoryTotals {
		categoryScores[cat] = float64(sum) / float64(categoryCounts[cat])
	}

	var flags []IntegrityFlag
	var followUps []uuid.UUID
	followUpSeen := make(map[uuid.UUID]bool)
	for _, ra := range resolvedAnswers {
		if ra.option.RedFlag {
			flags = append(flags, IntegrityFlag{
				QuestionID: ra.question.ID,
				Kind:       "red_flag_option",
				Detail:     fmt.Sprintf("selected option %q is marked as a red flag", ra.option.Key),
			})
		}

		trigger := ra.question.Trigger
		if trigger == nil {
			continue
		}
		fired := false
		switch trigger.Condition {
		case models.TriggerLowScore:
			fired = ra.option.Score <= lowScoreCeiling
		case models.TriggerInconsistent:
			fired = categorySpread(categoryScoreLists[ra.question.Category]) > inconsistentSpread
		case models.TriggerSuspiciousPattern:
			fired = redFlags >= suspiciousRedFlagCount
		}
		if !fired {
			continue
		}
		flags = append(flags, IntegrityFlag{
			QuestionID: ra.question.ID,
			Kind:       string(trigger.Condition),
			Detail:     fmt.Sprintf("adaptive trigger %s fired", trigger.Condition),
		})
		if trigger.FollowUpID != nil && !followUpSeen[*trigger.FollowUpID] {
			followUpSeen[*trigger.FollowUpID] = true
			followUps = append(followUps, *trigger.FollowUpID)
		}
	}

	scoreFloor := threshold / 10
	var growth []GrowthArea
	for cat, score := range categoryScores {
		if score < scoreFloor {
			growth = append(growth, GrowthArea{Category: cat, Score: score})
		}
	}
	sort.Slice(growth, func(i, j int) bool {
		if growth[i].Score == growth[j].Score {
			return growth[i].Category < growth[j].Category
		}
		return growth[i].Score < growth[j].Score
	})

	return &ScoreOutcome{
		TotalScore:     total,
		Percentage:     percentage,
		Passed:         float64(percentage) >= threshold,
		CategoryScores: categoryScores,
		IntegrityFlags: flags,
		GrowthAreas:    growth,
		FollowUpIDs:    followUps,
	}, nil
}

func categorySpread(scores []int) int {
	if len(scores) < 2 {
		return 0
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return hi - lo
}
