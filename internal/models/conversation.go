package models

import (
	"time"

	"github.com/google/uuid"
)

// ConversationStatus is the photo-reveal state machine position.
// pending_response -> both_messaged -> awaiting_consent -> photos_unlocked.
type ConversationStatus string

const (
	ConversationPendingResponse ConversationStatus = "pending_response"
	ConversationBothMessaged    ConversationStatus = "both_messaged"
	ConversationAwaitingConsent ConversationStatus = "awaiting_consent"
	ConversationPhotosUnlocked  ConversationStatus = "photos_unlocked"
)

// PhotoConsent is one participant's side of the mutual consent pair.
// Consent never resets to false; there is no revoke.
type PhotoConsent struct {
	UserID      uuid.UUID  `json:"user_id"`
	Consented   bool       `json:"consented"`
	ConsentedAt *time.Time `json:"consented_at,omitempty"`
}

// Conversation holds the message thread and the consent pair between exactly
// two users. The initiator is the participant whose first message opened it.
type Conversation struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InitiatorID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"initiator_id"`
	PartnerID          uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"partner_id"`
	Status             ConversationStatus `gorm:"size:30;not null;default:'pending_response'" json:"status"`
	InitiatorConsented bool               `gorm:"not null;default:false" json:"initiator_consented"`
	InitiatorConsentAt *time.Time         `json:"initiator_consent_at,omitempty"`
	PartnerConsented   bool               `gorm:"not null;default:false" json:"partner_consented"`
	PartnerConsentAt   *time.Time         `json:"partner_consent_at,omitempty"`
	PhotosUnlocked     bool               `gorm:"not null;default:false" json:"photos_unlocked"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// HasParticipant reports whether userID is one of the two sides.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.InitiatorID == userID || c.PartnerID == userID
}

// Consent returns userID's side of the consent pair.
func (c *Conversation) Consent(userID uuid.UUID) PhotoConsent {
	if userID == c.PartnerID {
		return PhotoConsent{UserID: c.PartnerID, Consented: c.PartnerConsented, ConsentedAt: c.PartnerConsentAt}
	}
	return PhotoConsent{UserID: c.InitiatorID, Consented: c.InitiatorConsented, ConsentedAt: c.InitiatorConsentAt}
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
