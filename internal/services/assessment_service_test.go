package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringSetSpansTheFullBaseBank(t *testing.T) {
	rows, err := defaultQuestionRows()
	require.NoError(t, err)

	// answering a single base question still scores against all twelve
	answered := map[uuid.UUID]bool{qRegulationStress: true}
	questions, err := scoringSet(rows, answered)
	require.NoError(t, err)
	assert.Len(t, questions, 12)

	_, err = ScoreAssessment(questions, []Answer{{QuestionID: qRegulationStress, OptionKey: "a"}}, 70)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "answers", ve.Field)
}

func TestScoringSetIncludesAnsweredFollowUps(t *testing.T) {
	rows, err := defaultQuestionRows()
	require.NoError(t, err)

	questions, err := scoringSet(rows, map[uuid.UUID]bool{qFollowUpAnger: true})
	require.NoError(t, err)
	assert.Len(t, questions, 13)

	ids := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		ids[q.ID] = true
	}
	assert.True(t, ids[qFollowUpAnger])
	assert.False(t, ids[qFollowUpRepair])
}

func TestScoringSetFullAnswerSetScores(t *testing.T) {
	rows, err := defaultQuestionRows()
	require.NoError(t, err)

	questions, err := scoringSet(rows, nil)
	require.NoError(t, err)
	require.Len(t, questions, 12)

	answers := make([]Answer, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, Answer{QuestionID: q.ID, OptionKey: q.Options[0].Key})
	}

	outcome, err := ScoreAssessment(questions, answers, 70)
	require.NoError(t, err)
	assert.Positive(t, outcome.Percentage)
}
