package services

import (
	"encoding/json"
	"log/slog"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stable ids so adaptive triggers can reference their follow-ups across
// deployments.
var (
	qRegulationStress  = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111001")
	qRegulationAnger   = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111002")
	qAccountabilityOwn = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111003")
	qAccountabilityEx  = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111004")
	qAutonomyAlone     = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111005")
	qAutonomyIdentity  = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111006")
	qBoundariesNo      = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111007")
	qBoundariesSpace   = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111008")
	qRepairApology     = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111009")
	qRepairFight       = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111010")
	qIntegrityHonesty  = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111011")
	qIntegrityPattern  = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111012")

	qFollowUpAnger  = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111101")
	qFollowUpRepair = uuid.MustParse("5f1c2a10-0d3e-4b6f-9a21-111111111102")
)

type seedQuestion struct {
	id         uuid.UUID
	prompt     string
	category   models.AssessmentCategory
	options    []models.AnswerOption
	trigger    *models.AdaptiveTrigger
	isFollowUp bool
}

func defaultQuestionBank() []seedQuestion {
	return []seedQuestion{
		{
			id:       qRegulationStress,
			prompt:   "When you feel overwhelmed during a disagreement, what do you usually do?",
			category: models.CategoryEmotionalRegulation,
			options: []models.AnswerOption{
				{Key: "a", Text: "Ask for a pause and come back when calmer", Score: 9},
				{Key: "b", Text: "Push through and keep talking", Score: 6},
				{Key: "c", Text: "Shut down and go quiet for days", Score: 3},
				{Key: "d", Text: "Say whatever lands hardest in the moment", Score: 1, RedFlag: true},
			},
		},
		{
			id:       qRegulationAnger,
			prompt:   "How often does anger drive what you say before you have thought it through?",
			category: models.CategoryEmotionalRegulation,
			options: []models.AnswerOption{
				{Key: "a", Text: "Rarely; I notice it rising first", Score: 9},
				{Key: "b", Text: "Sometimes, under real pressure", Score: 6},
				{Key: "c", Text: "Often", Score: 2},
				{Key: "d", Text: "Anger is not something I experience", Score: 4, RedFlag: true},
			},
			trigger: &models.AdaptiveTrigger{Condition: models.TriggerLowScore, FollowUpID: &qFollowUpAnger},
		},
		{
			id:       qAccountabilityOwn,
			prompt:   "After realizing you hurt someone unintentionally, what comes first?",
			category: models.CategoryAccountability,
			options: []models.AnswerOption{
				{Key: "a", Text: "Naming what I did and its impact", Score: 10},
				{Key: "b", Text: "Explaining my intent before anything else", Score: 5},
				{Key: "c", Text: "Waiting to see if they bring it up", Score: 3},
				{Key: "d", Text: "They are usually too sensitive", Score: 0, RedFlag: true},
			},
		},
		{
			id:       qAccountabilityEx,
			prompt:   "Thinking about your last relationship ending, how much of it was within your control?",
			category: models.CategoryAccountability,
			options: []models.AnswerOption{
				{Key: "a", Text: "Some of it; I can name my part", Score: 9},
				{Key: "b", Text: "A little, though mostly circumstances", Score: 6},
				{Key: "c", Text: "Hard to say, I have not reflected on it", Score: 4},
				{Key: "d", Text: "None; my ex was entirely the problem", Score: 1, RedFlag: true},
			},
		},
		{
			id:       qAutonomyAlone,
			prompt:   "How comfortable are you spending a weekend entirely on your own?",
			category: models.CategoryAutonomy,
			options: []models.AnswerOption{
				{Key: "a", Text: "Comfortable; I enjoy my own company", Score: 9},
				{Key: "b", Text: "Fine, though I prefer company", Score: 7},
				{Key: "c", Text: "Restless and checking my phone constantly", Score: 3},
				{Key: "d", Text: "I cannot stand being alone", Score: 1},
			},
		},
		{
			id:       qAutonomyIdentity,
			prompt:   "In past relationships, how much of your routine and interests survived?",
			category: models.CategoryAutonomy,
			options: []models.AnswerOption{
				{Key: "a", Text: "Most; we each kept our own lives", Score: 9},
				{Key: "b", Text: "Some things drifted but came back", Score: 6},
				{Key: "c", Text: "I mostly adopted my partner's life", Score: 3},
				{Key: "d", Text: "I expect a partner to build their life around mine", Score: 1, RedFlag: true},
			},
		},
		{
			id:       qBoundariesNo,
			prompt:   "Someone you are dating asks for something you are not ready for. You:",
			category: models.CategoryBoundaries,
			options: []models.AnswerOption{
				{Key: "a", Text: "Say no plainly and explain if I want to", Score: 10},
				{Key: "b", Text: "Say yes but feel resentful later", Score: 3},
				{Key: "c", Text: "Deflect and hope it does not come up again", Score: 4},
				{Key: "d", Text: "No is not something partners should say to each other", Score: 0, RedFlag: true},
			},
		},
		{
			id:       qBoundariesSpace,
			prompt:   "Your partner wants an evening with their friends, without you. How does that sit?",
			category: models.CategoryBoundaries,
			options: []models.AnswerOption{
				{Key: "a", Text: "Completely fine; separate time is healthy", Score: 9},
				{Key: "b", Text: "Fine, with a small pang I keep to myself", Score: 7},
				{Key: "c", Text: "I would want to know exactly who is there", Score: 2, RedFlag: true},
				{Key: "d", Text: "Uneasy; I would ask them to skip it", Score: 2},
			},
		},
		{
			id:       qRepairApology,
			prompt:   "What does a real apology include, in your view?",
			category: models.CategoryConflictRepair,
			options: []models.AnswerOption{
				{Key: "a", Text: "Naming the harm, owning it, changing behavior", Score: 10},
				{Key: "b", Text: "Saying sorry and moving on quickly", Score: 5},
				{Key: "c", Text: "Apologies are mostly performative", Score: 2},
				{Key: "d", Text: "Whatever ends the argument fastest", Score: 1},
			},
		},
		{
			id:       qRepairFight,
			prompt:   "A day after a bad argument, what typically happens?",
			category: models.CategoryConflictRepair,
			options: []models.AnswerOption{
				{Key: "a", Text: "One of us reaches out and we talk it through", Score: 9},
				{Key: "b", Text: "We act normal and never mention it", Score: 4},
				{Key: "c", Text: "Silent treatment until someone caves", Score: 2},
				{Key: "d", Text: "I keep score for the next argument", Score: 0, RedFlag: true},
			},
			trigger: &models.AdaptiveTrigger{Condition: models.TriggerInconsistent, FollowUpID: &qFollowUpRepair},
		},
		{
			id:       qIntegrityHonesty,
			prompt:   "Have you answered these questions as you actually behave, or as you would like to behave?",
			category: models.CategoryIntegrityCheck,
			options: []models.AnswerOption{
				{Key: "a", Text: "As I actually behave, including the unflattering parts", Score: 10},
				{Key: "b", Text: "Mostly honestly, with some polish", Score: 6},
				{Key: "c", Text: "As my best self on a good day", Score: 3},
				{Key: "d", Text: "However gets me approved", Score: 0, RedFlag: true},
			},
		},
		{
			id:       qIntegrityPattern,
			prompt:   "When nobody would ever find out, how do you treat commitments?",
			category: models.CategoryIntegrityCheck,
			options: []models.AnswerOption{
				{Key: "a", Text: "The same as when people are watching", Score: 10},
				{Key: "b", Text: "I cut small corners occasionally", Score: 6},
				{Key: "c", Text: "Rules exist for people who get caught", Score: 1, RedFlag: true},
				{Key: "d", Text: "Depends entirely on what I get out of it", Score: 2},
			},
			trigger: &models.AdaptiveTrigger{Condition: models.TriggerSuspiciousPattern},
		},
		{
			id:         qFollowUpAnger,
			prompt:     "You said anger moves faster than thought for you. What helps you slow it down?",
			category:   models.CategoryEmotionalRegulation,
			isFollowUp: true,
			options: []models.AnswerOption{
				{Key: "a", Text: "A practice I already use (breathing, stepping away)", Score: 8},
				{Key: "b", Text: "Nothing yet, but I want one", Score: 5},
				{Key: "c", Text: "Other people should stop provoking me", Score: 1, RedFlag: true},
			},
		},
		{
			id:         qFollowUpRepair,
			prompt:     "Your answers about repair pull in different directions. Which is closer to the truth?",
			category:   models.CategoryConflictRepair,
			isFollowUp: true,
			options: []models.AnswerOption{
				{Key: "a", Text: "I repair well when calm; badly when hurt", Score: 6},
				{Key: "b", Text: "I aspire to repair but rarely start it", Score: 4},
				{Key: "c", Text: "I answered what sounded best", Score: 2, RedFlag: true},
			},
		},
	}
}

// defaultQuestionRows renders the bank into persistable rows.
func defaultQuestionRows() ([]models.AssessmentQuestion, error) {
	bank := defaultQuestionBank()
	rows := make([]models.AssessmentQuestion, 0, len(bank))
	for i, q := range bank {
		optJSON, err := json.Marshal(q.options)
		if err != nil {
			return nil, err
		}
		row := models.AssessmentQuestion{
			ID:         q.id,
			Prompt:     q.prompt,
			Category:   q.category,
			Options:    datatypes.JSON(optJSON),
			IsFollowUp: q.isFollowUp,
			SortOrder:  i,
		}
		if q.trigger != nil {
			trigJSON, err := json.Marshal(q.trigger)
			if err != nil {
				return nil, err
			}
			row.Trigger = datatypes.JSON(trigJSON)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SeedQuestions inserts the default readiness bank when the table is empty.
func SeedQuestions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AssessmentQuestion{}).Count(&count).Error; err != nil {
		return storeErr("question count", err)
	}
	if count > 0 {
		return nil
	}

	rows, err := defaultQuestionRows()
	if err != nil {
		return err
	}
	if err := db.Create(&rows).Error; err != nil {
		return storeErr("question seed", err)
	}
	slog.Info("assessment question bank seeded", "questions", len(rows))
	return nil
}
