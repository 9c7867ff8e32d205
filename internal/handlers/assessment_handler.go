package handlers

import (
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/config"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/dto"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/middleware"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	assessmentService *services.AssessmentService
	cfg               *config.Config
}

func NewAssessmentHandler(assessmentService *services.AssessmentService, cfg *config.Config) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService, cfg: cfg}
}

// Questions returns the base readiness question bank.
func (h *AssessmentHandler) Questions(c *fiber.Ctx) error {
	questions, err := h.assessmentService.Questions()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"questions": questions})
}

// Submit scores a full answer set against the deployment threshold.
// When adaptive follow-ups trigger, they come back instead of a result.
func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	answers := make([]services.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, services.Answer{QuestionID: a.QuestionID, OptionKey: a.OptionKey})
	}

	outcome, err := h.assessmentService.Submit(userID, answers, h.cfg.AssessmentPassThreshold)
	if err != nil {
		return respondServiceError(c, err)
	}

	if len(outcome.FollowUps) > 0 {
		return c.Status(fiber.StatusAccepted).JSON(outcome)
	}
	return c.Status(fiber.StatusCreated).JSON(outcome)
}

// Results lists the caller's past submissions.
func (h *AssessmentHandler) Results(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	results, err := h.assessmentService.Results(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}
