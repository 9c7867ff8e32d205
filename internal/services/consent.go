package services

import (
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
)

// consentEvent names used in InvalidTransitionError messages.
const (
	eventSendMessage = "send_message"
	eventGiveConsent = "give_consent"
)

// OtherParticipant returns the opposite side of the conversation from
// userID. Call sites never branch on "initiator vs partner" themselves.
func OtherParticipant(conv *models.Conversation, userID uuid.UUID) uuid.UUID {
	if userID == conv.InitiatorID {
		return conv.PartnerID
	}
	return conv.InitiatorID
}

// PhotosVisibleTo computes whether viewer may see the other participant's
// photos. Visibility follows the unlock flag only.
func PhotosVisibleTo(conv *models.Conversation, viewerID uuid.UUID) bool {
	return conv.HasParticipant(viewerID) && conv.PhotosUnlocked
}

// advanceOnMessage applies a send_message event to the state machine.
// The only transition it drives is the non-initiator's first reply moving
// pending_response to both_messaged; messages in later states append
// without changing state.
func advanceOnMessage(conv *models.Conversation, from uuid.UUID) {
	if conv.Status == models.ConversationPendingResponse && from == conv.PartnerID {
		conv.Status = models.ConversationBothMessaged
	}
}

// advanceOnConsent applies a give_consent event. Consent before
// both_messaged is rejected; repeat consent by the same user and consent
// after unlock are no-ops. Consent never resets once given.
func advanceOnConsent(conv *models.Conversation, userID uuid.UUID, now time.Time) error {
	switch conv.Status {
	case models.ConversationPendingResponse:
		return &InvalidTransitionError{From: string(conv.Status), Event: eventGiveConsent}

	case models.ConversationPhotosUnlocked:
		return nil

	case models.ConversationBothMessaged, models.ConversationAwaitingConsent:
		side := conv.Consent(userID)
		if side.Consented {
			return nil
		}
		if userID == conv.PartnerID {
			conv.PartnerConsented = true
			conv.PartnerConsentAt = &now
		} else {
			conv.InitiatorConsented = true
			conv.InitiatorConsentAt = &now
		}
		if conv.InitiatorConsented && conv.PartnerConsented {
			conv.Status = models.ConversationPhotosUnlocked
			conv.PhotosUnlocked = true
		} else {
			conv.Status = models.ConversationAwaitingConsent
		}
		return nil

	default:
		return &InvalidTransitionError{From: string(conv.Status), Event: eventGiveConsent}
	}
}
