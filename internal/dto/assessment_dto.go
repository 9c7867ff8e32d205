package dto

import "github.com/google/uuid"

type AssessmentAnswer struct {
	QuestionID uuid.UUID `json:"question_id"`
	OptionKey  string    `json:"option_key"`
}

type SubmitAssessmentRequest struct {
	Answers []AssessmentAnswer `json:"answers"`
}
