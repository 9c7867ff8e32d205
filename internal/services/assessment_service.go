package services

import (
	"encoding/json"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentService loads the question bank, runs the scoring engine and
// persists immutable results. The pass threshold always comes from the
// caller (the handler passes the deployment default down).
type AssessmentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewAssessmentService(db *gorm.DB, notifier *NotificationService) *AssessmentService {
	return &AssessmentService{db: db, notifier: notifier}
}

// SubmissionOutcome is either a final persisted result or a request for
// more answers: when adaptive triggers fire, the follow-up questions are
// appended to the remaining sequence and nothing is persisted yet.
type SubmissionOutcome struct {
	Result    *models.AssessmentResult    `json:"result,omitempty"`
	Score     *ScoreOutcome               `json:"score,omitempty"`
	FollowUps []models.AssessmentQuestion `json:"follow_ups,omitempty"`
}

// Questions returns the base question bank in presentation order.
// Follow-ups are excluded; they only surface via adaptive triggers.
func (s *AssessmentService) Questions() ([]models.AssessmentQuestion, error) {
	var questions []models.AssessmentQuestion
	err := s.db.Where("is_follow_up = false").Order("sort_order ASC").Find(&questions).Error
	if err != nil {
		return nil, storeErr("question list", err)
	}
	return questions, nil
}

// Submit scores the answer set. When a triggered follow-up has not been
// answered yet it is returned instead of a result; each follow-up appears
// exactly once no matter how many triggers point at it. Otherwise the
// result is persisted as a new immutable row.
func (s *AssessmentService) Submit(userID uuid.UUID, answers []Answer, threshold float64) (*SubmissionOutcome, error) {
	answered := make(map[uuid.UUID]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}

	scored, err := s.loadScoringSet(answered)
	if err != nil {
		return nil, err
	}

	outcome, err := ScoreAssessment(scored, answers, threshold)
	if err != nil {
		return nil, err
	}

	var pendingIDs []uuid.UUID
	for _, id := range outcome.FollowUpIDs {
		if !answered[id] {
			pendingIDs = append(pendingIDs, id)
		}
	}
	if len(pendingIDs) > 0 {
		var followUps []models.AssessmentQuestion
		if err := s.db.Where("id IN ?", pendingIDs).Find(&followUps).Error; err != nil {
			return nil, storeErr("follow-up load", err)
		}
		return &SubmissionOutcome{Score: outcome, FollowUps: followUps}, nil
	}

	result, err := s.persist(userID, answers, threshold, outcome)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(userID, models.NotifyAssessmentScored, map[string]any{
		"result_id":  result.ID,
		"percentage": result.Percentage,
		"passed":     result.Passed,
	})
	return &SubmissionOutcome{Result: result, Score: outcome}, nil
}

// Results returns the user's past submissions, newest first.
func (s *AssessmentService) Results(userID uuid.UUID) ([]models.AssessmentResult, error) {
	var results []models.AssessmentResult
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, storeErr("result list", err)
	}
	return results, nil
}

// loadScoringSet loads the questions a submission is judged against. The
// full base bank is always part of the set so a skipped question surfaces
// as a validation error instead of silently shrinking the denominator;
// follow-ups join only once the caller has answered them.
func (s *AssessmentService) loadScoringSet(answered map[uuid.UUID]bool) ([]ScoredQuestion, error) {
	var rows []models.AssessmentQuestion
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, storeErr("question load", err)
	}
	return scoringSet(rows, answered)
}

// scoringSet filters rows to base questions plus answered follow-ups and
// decodes their jsonb columns.
func scoringSet(rows []models.AssessmentQuestion, answered map[uuid.UUID]bool) ([]ScoredQuestion, error) {
	scored := make([]ScoredQuestion, 0, len(rows))
	for _, row := range rows {
		if row.IsFollowUp && !answered[row.ID] {
			continue
		}
		q, err := decodeQuestion(row)
		if err != nil {
			return nil, err
		}
		scored = append(scored, q)
	}
	return scored, nil
}

func decodeQuestion(row models.AssessmentQuestion) (ScoredQuestion, error) {
	q := ScoredQuestion{ID: row.ID, Category: row.Category}
	if err := json.Unmarshal(row.Options, &q.Options); err != nil {
		return q, &ValidationError{Field: "options", Reason: "malformed option payload for question " + row.ID.String()}
	}
	if len(row.Trigger) > 0 && string(row.Trigger) != "null" {
		var trigger models.AdaptiveTrigger
		if err := json.Unmarshal(row.Trigger, &trigger); err != nil {
			return q, &ValidationError{Field: "trigger", Reason: "malformed trigger payload for question " + row.ID.String()}
		}
		q.Trigger = &trigger
	}
	return q, nil
}

func (s *AssessmentService) persist(userID uuid.UUID, answers []Answer, threshold float64, outcome *ScoreOutcome) (*models.AssessmentResult, error) {
	categoryJSON, _ := json.Marshal(outcome.CategoryScores)
	flagsJSON, _ := json.Marshal(outcome.IntegrityFlags)
	growthJSON, _ := json.Marshal(outcome.GrowthAreas)
	answersJSON, _ := json.Marshal(answers)

	result := &models.AssessmentResult{
		ID:             uuid.New(),
		UserID:         userID,
		TotalScore:     outcome.TotalScore,
		Percentage:     outcome.Percentage,
		Passed:         outcome.Passed,
		Threshold:      threshold,
		CategoryScores: datatypes.JSON(categoryJSON),
		IntegrityFlags: datatypes.JSON(flagsJSON),
		GrowthAreas:    datatypes.JSON(growthJSON),
		Answers:        datatypes.JSON(answersJSON),
	}
	if err := s.db.Create(result).Error; err != nil {
		return nil, storeErr("result create", err)
	}
	return result, nil
}
