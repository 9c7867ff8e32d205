package handlers

import (
	"strconv"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/dto"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/middleware"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
	suspensionService *services.SuspensionService
}

func NewModerationHandler(moderationService *services.ModerationService, suspensionService *services.SuspensionService) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		suspensionService: suspensionService,
	}
}

// SubmitReport is the user-facing intake endpoint.
func (h *ModerationHandler) SubmitReport(c *fiber.Ctx) error {
	reporterID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	outcome, err := h.moderationService.SubmitReport(reporterID, services.SubmitReportInput{
		ReportedID:     req.ReportedID,
		Reason:         models.ReportReason(req.Reason),
		Details:        req.Details,
		ConversationID: req.ConversationID,
		Severity:       req.Severity,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(outcome)
}

// ListReports serves the reviewer queue.
func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := models.ReportStatus(c.Query("status", ""))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	reports, total, err := h.moderationService.ListReports(status, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// ClaimReport moves a pending report under the calling reviewer.
func (h *ModerationHandler) ClaimReport(c *fiber.Ctx) error {
	reviewerID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.moderationService.ClaimReport(reportID, reviewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// ResolveReport closes a report with the reviewer's chosen action.
func (h *ModerationHandler) ResolveReport(c *fiber.Ctx) error {
	reviewerID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	action := models.ReportAction{
		Type:           models.ActionType(req.Action),
		Reason:         req.Reason,
		DurationDays:   req.DurationDays,
		NotifyReporter: req.NotifyReporter,
		NotifyReported: req.NotifyReported,
	}

	outcome, err := h.moderationService.ResolveReport(reportID, reviewerID, action, req.Notes)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(outcome)
}

// EvaluateReport previews the escalation decision for a report.
func (h *ModerationHandler) EvaluateReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, decision, err := h.moderationService.EvaluateReport(reportID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"report": report, "decision": decision})
}

// UserHistory returns the reported-user aggregation a reviewer sees.
func (h *ModerationHandler) UserHistory(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	history, err := h.moderationService.GetUserHistory(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(history)
}

// ApplySuspension lets a reviewer suspend directly from a report.
func (h *ModerationHandler) ApplySuspension(c *fiber.Ctx) error {
	issuerID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ApplySuspensionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	action := models.ReportAction{
		Type:         models.ActionType(req.Action),
		Reason:       req.Reason,
		DurationDays: req.DurationDays,
	}

	record, err := h.suspensionService.ApplySuspension(req.UserID, action, req.ReportID, issuerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(suspensionResponse(record, time.Now()))
}

// Suspensions lists a user's suspension records with remaining durations.
func (h *ModerationHandler) Suspensions(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	history, err := h.moderationService.GetUserHistory(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	now := time.Now()
	out := make([]dto.SuspensionResponse, 0, len(history.Suspensions))
	for i := range history.Suspensions {
		out = append(out, suspensionResponse(&history.Suspensions[i], now))
	}
	return c.JSON(fiber.Map{"suspensions": out})
}

func suspensionResponse(record *models.SuspensionRecord, now time.Time) dto.SuspensionResponse {
	resp := dto.SuspensionResponse{
		ID:            record.ID,
		UserID:        record.UserID,
		ReportID:      record.ReportID,
		Reason:        record.Reason,
		IsPermanent:   record.IsPermanent,
		StartsAt:      record.StartsAt.UTC().Format(time.RFC3339),
		RemainingDays: services.RemainingDays(record, now),
		Active:        services.IsActive(record, now),
	}
	if record.EndsAt != nil {
		ends := record.EndsAt.UTC().Format(time.RFC3339)
		resp.EndsAt = &ends
	}
	return resp
}
