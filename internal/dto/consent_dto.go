package dto

import "github.com/google/uuid"

type StartConversationRequest struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Body      string    `json:"body"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type ConversationResponse struct {
	ID             uuid.UUID `json:"id"`
	Status         string    `json:"status"`
	PhotosUnlocked bool      `json:"photos_unlocked"`
	// whether the other participant's photos are visible to the viewer
	PhotosVisible bool `json:"photos_visible"`
	// the viewer's own consent state; the other side is never exposed
	YouConsented bool `json:"you_consented"`
}
