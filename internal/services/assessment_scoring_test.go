package services

import (
	"testing"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredQuestion(category models.AssessmentCategory, trigger *models.AdaptiveTrigger) ScoredQuestion {
	return ScoredQuestion{
		ID:       uuid.New(),
		Category: category,
		Options: []models.AnswerOption{
			{Key: "a", Text: "calm", Score: 10},
			{Key: "b", Text: "neutral", Score: 7},
			{Key: "c", Text: "reactive", Score: 3},
			{Key: "d", Text: "hostile", Score: 1, RedFlag: true},
		},
		Trigger: trigger,
	}
}

func answersFor(questions []ScoredQuestion, keys ...string) []Answer {
	answers := make([]Answer, len(questions))
	for i, q := range questions {
		answers[i] = Answer{QuestionID: q.ID, OptionKey: keys[i]}
	}
	return answers
}

func TestScoreAssessmentDeterministic(t *testing.T) {
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryEmotionalRegulation, nil),
		scoredQuestion(models.CategoryAccountability, nil),
		scoredQuestion(models.CategoryBoundaries, nil),
	}
	answers := answersFor(questions, "a", "b", "c")

	first, err := ScoreAssessment(questions, answers, 70)
	require.NoError(t, err)
	second, err := ScoreAssessment(questions, answers, 70)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 20, first.TotalScore)
	assert.Equal(t, 67, first.Percentage) // round(20/30*100)
	assert.False(t, first.Passed)
}

func TestScoreAssessmentPassBoundaryInclusive(t *testing.T) {
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryEmotionalRegulation, nil),
		scoredQuestion(models.CategoryAccountability, nil),
	}
	answers := answersFor(questions, "b", "b")

	// 14/20 is exactly 70%; the boundary passes
	outcome, err := ScoreAssessment(questions, answers, 70)
	require.NoError(t, err)
	assert.Equal(t, 70, outcome.Percentage)
	assert.True(t, outcome.Passed)

	outcome, err = ScoreAssessment(questions, answers, 70.5)
	require.NoError(t, err)
	assert.False(t, outcome.Passed)
}

func TestScoreAssessmentValidation(t *testing.T) {
	questions := []ScoredQuestion{scoredQuestion(models.CategoryAutonomy, nil)}

	cases := []struct {
		name      string
		answers   []Answer
		threshold float64
		field     string
	}{
		{"empty answers", nil, 70, "answers"},
		{"threshold above range", answersFor(questions, "a"), 101, "threshold"},
		{"threshold below range", answersFor(questions, "a"), -1, "threshold"},
		{"unknown question", []Answer{{QuestionID: uuid.New(), OptionKey: "a"}}, 70, "answers"},
		{"unknown option", []Answer{{QuestionID: questions[0].ID, OptionKey: "z"}}, 70, "answers"},
		{"duplicate answer", []Answer{
			{QuestionID: questions[0].ID, OptionKey: "a"},
			{QuestionID: questions[0].ID, OptionKey: "b"},
		}, 70, "answers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ScoreAssessment(questions, tc.answers, tc.threshold)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestScoreAssessmentUnansweredQuestion(t *testing.T) {
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryAutonomy, nil),
		scoredQuestion(models.CategoryBoundaries, nil),
	}
	answers := []Answer{{QuestionID: questions[0].ID, OptionKey: "a"}}

	_, err := ScoreAssessment(questions, answers, 70)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "answers", ve.Field)
}

func TestScoreAssessmentLowScoreTrigger(t *testing.T) {
	followUp := uuid.New()
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryEmotionalRegulation, &models.AdaptiveTrigger{
			Condition:  models.TriggerLowScore,
			FollowUpID: &followUp,
		}),
		scoredQuestion(models.CategoryAccountability, nil),
	}

	// score 3 is at the ceiling; the trigger fires
	outcome, err := ScoreAssessment(questions, answersFor(questions, "c", "a"), 70)
	require.NoError(t, err)
	require.Len(t, outcome.FollowUpIDs, 1)
	assert.Equal(t, followUp, outcome.FollowUpIDs[0])

	// score 7 is above the ceiling; no follow-up
	outcome, err = ScoreAssessment(questions, answersFor(questions, "b", "a"), 70)
	require.NoError(t, err)
	assert.Empty(t, outcome.FollowUpIDs)
}

func TestScoreAssessmentSuspiciousPattern(t *testing.T) {
	followUp := uuid.New()
	trigger := &models.AdaptiveTrigger{
		Condition:  models.TriggerSuspiciousPattern,
		FollowUpID: &followUp,
	}
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryIntegrityCheck, trigger),
		scoredQuestion(models.CategoryEmotionalRegulation, nil),
		scoredQuestion(models.CategoryAccountability, nil),
		scoredQuestion(models.CategoryBoundaries, nil),
	}

	// three red-flag selections mark a suspicious pattern
	outcome, err := ScoreAssessment(questions, answersFor(questions, "d", "d", "d", "a"), 70)
	require.NoError(t, err)
	assert.Contains(t, outcome.FollowUpIDs, followUp)

	var kinds []string
	for _, f := range outcome.IntegrityFlags {
		kinds = append(kinds, f.Kind)
	}
	assert.Contains(t, kinds, "red_flag_option")
	assert.Contains(t, kinds, string(models.TriggerSuspiciousPattern))

	// two red flags stay below the pattern threshold
	outcome, err = ScoreAssessment(questions, answersFor(questions, "d", "d", "a", "a"), 70)
	require.NoError(t, err)
	assert.NotContains(t, outcome.FollowUpIDs, followUp)
}

func TestScoreAssessmentFollowUpDeduped(t *testing.T) {
	followUp := uuid.New()
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryEmotionalRegulation, &models.AdaptiveTrigger{
			Condition:  models.TriggerLowScore,
			FollowUpID: &followUp,
		}),
		scoredQuestion(models.CategoryConflictRepair, &models.AdaptiveTrigger{
			Condition:  models.TriggerLowScore,
			FollowUpID: &followUp,
		}),
	}

	outcome, err := ScoreAssessment(questions, answersFor(questions, "c", "c"), 70)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{followUp}, outcome.FollowUpIDs)
}

func TestScoreAssessmentInconsistentTrigger(t *testing.T) {
	followUp := uuid.New()
	trigger := &models.AdaptiveTrigger{
		Condition:  models.TriggerInconsistent,
		FollowUpID: &followUp,
	}
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryAccountability, trigger),
		scoredQuestion(models.CategoryAccountability, nil),
	}

	// 10 vs 1 spreads beyond the inconsistency gap
	outcome, err := ScoreAssessment(questions, answersFor(questions, "a", "d"), 70)
	require.NoError(t, err)
	assert.Contains(t, outcome.FollowUpIDs, followUp)

	// 10 vs 7 is a consistent pair
	outcome, err = ScoreAssessment(questions, answersFor(questions, "a", "b"), 70)
	require.NoError(t, err)
	assert.Empty(t, outcome.FollowUpIDs)
}

func TestScoreAssessmentCategoryScores(t *testing.T) {
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryEmotionalRegulation, nil),
		scoredQuestion(models.CategoryEmotionalRegulation, nil),
		scoredQuestion(models.CategoryBoundaries, nil),
	}

	outcome, err := ScoreAssessment(questions, answersFor(questions, "a", "c", "b"), 70)
	require.NoError(t, err)

	assert.InDelta(t, 6.5, outcome.CategoryScores[models.CategoryEmotionalRegulation], 0.001)
	assert.InDelta(t, 7.0, outcome.CategoryScores[models.CategoryBoundaries], 0.001)
	// categories nobody answered never appear
	_, present := outcome.CategoryScores[models.CategoryAutonomy]
	assert.False(t, present)
}

func TestScoreAssessmentGrowthAreasOrdered(t *testing.T) {
	questions := []ScoredQuestion{
		scoredQuestion(models.CategoryEmotionalRegulation, nil),
		scoredQuestion(models.CategoryAccountability, nil),
		scoredQuestion(models.CategoryBoundaries, nil),
	}

	// threshold 70 puts the growth floor at 7.0; scores 1 and 3 fall below
	outcome, err := ScoreAssessment(questions, answersFor(questions, "d", "c", "a"), 70)
	require.NoError(t, err)

	require.Len(t, outcome.GrowthAreas, 2)
	assert.Equal(t, models.CategoryEmotionalRegulation, outcome.GrowthAreas[0].Category)
	assert.Equal(t, 1.0, outcome.GrowthAreas[0].Score)
	assert.Equal(t, models.CategoryAccountability, outcome.GrowthAreas[1].Category)
	assert.Equal(t, 3.0, outcome.GrowthAreas[1].Score)
}

func TestCategorySpread(t *testing.T) {
	assert.Equal(t, 0, categorySpread(nil))
	assert.Equal(t, 0, categorySpread([]int{5}))
	assert.Equal(t, 9, categorySpread([]int{1, 10, 4}))
}
