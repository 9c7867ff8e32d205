package handlers

import (
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/dto"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/middleware"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ConsentHandler struct {
	consentService *services.ConsentService
}

func NewConsentHandler(consentService *services.ConsentService) *ConsentHandler {
	return &ConsentHandler{consentService: consentService}
}

func (h *ConsentHandler) StartConversation(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	conv, err := h.consentService.StartConversation(userID, req.PartnerID, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conversationResponse(conv, userID))
}

func (h *ConsentHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid conversation ID",
		})
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	conv, err := h.consentService.SendMessage(conversationID, userID, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(conversationResponse(conv, userID))
}

func (h *ConsentHandler) GiveConsent(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid conversation ID",
		})
	}

	conv, err := h.consentService.GiveConsent(conversationID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(conversationResponse(conv, userID))
}

func (h *ConsentHandler) GetConversation(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid conversation ID",
		})
	}

	conv, err := h.consentService.Get(conversationID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := conversationResponse(conv, userID)
	return c.JSON(fiber.Map{"conversation": resp, "messages": conv.Messages})
}

func conversationResponse(conv *models.Conversation, viewerID uuid.UUID) dto.ConversationResponse {
	return dto.ConversationResponse{
		ID:             conv.ID,
		Status:         string(conv.Status),
		PhotosUnlocked: conv.PhotosUnlocked,
		PhotosVisible:  services.PhotosVisibleTo(conv, viewerID),
		YouConsented:   conv.Consent(viewerID).Consented,
	}
}
