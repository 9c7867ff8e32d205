package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentCategory is the fixed six-category readiness taxonomy.
type AssessmentCategory string

const (
	CategoryEmotionalRegulation AssessmentCategory = "emotional_regulation"
	CategoryAccountability      AssessmentCategory = "accountability"
	CategoryAutonomy            AssessmentCategory = "autonomy"
	CategoryBoundaries          AssessmentCategory = "boundaries"
	CategoryConflictRepair      AssessmentCategory = "conflict_repair"
	CategoryIntegrityCheck      AssessmentCategory = "integrity_check"
)

// ValidCategories lists every category a question may belong to.
var ValidCategories = map[AssessmentCategory]bool{
	CategoryEmotionalRegulation: true, CategoryAccountability: true,
	CategoryAutonomy: true, CategoryBoundaries: true,
	CategoryConflictRepair: true, CategoryIntegrityCheck: true,
}

// TriggerCondition decides when a question spawns its adaptive follow-up.
type TriggerCondition string

const (
	TriggerLowScore          TriggerCondition = "low_score"
	TriggerInconsistent      TriggerCondition = "inconsistent"
	TriggerSuspiciousPattern TriggerCondition = "suspicious_pattern"
)

// AnswerOption is one selectable choice; score 0-10, optional red flag.
type AnswerOption struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Score   int    `json:"score"`
	RedFlag bool   `json:"red_flag,omitempty"`
}

// AdaptiveTrigger declares a follow-up question appended when the
// condition matches the respondent's answers.
type AdaptiveTrigger struct {
	Condition  TriggerCondition `json:"condition"`
	FollowUpID *uuid.UUID       `json:"follow_up_id,omitempty"`
}

// AssessmentQuestion belongs to exactly one category. Options and the
// optional adaptive trigger live in jsonb columns.
type AssessmentQuestion struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Prompt    string             `gorm:"type:text;not null" json:"prompt"`
	Category  AssessmentCategory `gorm:"size:30;not null;index" json:"category"`
	Options   datatypes.JSON     `gorm:"type:jsonb;not null" json:"options"`
	Trigger   datatypes.JSON     `gorm:"type:jsonb" json:"trigger,omitempty"`
	IsFollowUp bool              `gorm:"not null;default:false" json:"is_follow_up"`
	SortOrder int                `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time          `json:"created_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
}

// AssessmentResult is the immutable output of scoring one submission.
// A new submission always produces a new row.
type AssessmentResult struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalScore     int            `gorm:"not null" json:"total_score"`
	Percentage     int            `gorm:"not null" json:"percentage"`
	Passed         bool           `gorm:"not null" json:"passed"`
	Threshold      float64        `gorm:"not null" json:"threshold"`
	CategoryScores datatypes.JSON `gorm:"type:jsonb" json:"category_scores"`
	IntegrityFlags datatypes.JSON `gorm:"type:jsonb" json:"integrity_flags"`
	GrowthAreas    datatypes.JSON `gorm:"type:jsonb" json:"growth_areas"`
	Answers        datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	CreatedAt      time.Time      `json:"created_at"`
}
