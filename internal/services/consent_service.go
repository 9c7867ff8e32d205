package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsentService drives the per-conversation photo-reveal state machine and
// persists it. All read-then-write sequences on one conversation run under
// that conversation's lock; different conversations proceed in parallel.
type ConsentService struct {
	db       *gorm.DB
	notifier *NotificationService
	locks    *lockTable
}

func NewConsentService(db *gorm.DB, notifier *NotificationService) *ConsentService {
	return &ConsentService{db: db, notifier: notifier, locks: newLockTable()}
}

// pairKey is a stable lock key for the unordered participant pair.
func pairKey(a, b uuid.UUID) string {
	if strings.Compare(a.String(), b.String()) > 0 {
		a, b = b, a
	}
	return a.String() + ":" + b.String()
}

// StartConversation opens (or returns) the conversation between the two
// users and records the initiator's opening message. One conversation
// exists per pair regardless of who opened it.
func (s *ConsentService) StartConversation(initiatorID, partnerID uuid.UUID, body string) (*models.Conversation, error) {
	if initiatorID == partnerID {
		return nil, &ValidationError{Field: "partner_id", Reason: "cannot message yourself"}
	}
	if strings.TrimSpace(body) == "" {
		return nil, &ValidationError{Field: "body", Reason: "message body is required"}
	}

	lock := s.locks.get(pairKey(initiatorID, partnerID))
	lock.Lock()
	defer lock.Unlock()

	conv, err := s.findByPair(initiatorID, partnerID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, s.appendMessage(conv, initiatorID, body)
	}

	conv = &models.Conversation{
		ID:          uuid.New(),
		InitiatorID: initiatorID,
		PartnerID:   partnerID,
		Status:      models.ConversationPendingResponse,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return storeErr("conversation create", err)
		}
		msg := &models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: initiatorID, Body: body}
		if err := tx.Create(msg).Error; err != nil {
			return storeErr("message create", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// SendMessage appends a message and advances pending_response ->
// both_messaged when the non-initiator replies for the first time.
func (s *ConsentService) SendMessage(conversationID, fromID uuid.UUID, body string) (*models.Conversation, error) {
	if strings.TrimSpace(body) == "" {
		return nil, &ValidationError{Field: "body", Reason: "message body is required"}
	}

	conv, err := s.get(conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(fromID) {
		return nil, ErrNotParticipant
	}

	lock := s.locks.get(pairKey(conv.InitiatorID, conv.PartnerID))
	lock.Lock()
	defer lock.Unlock()

	// re-read under the lock
	conv, err = s.get(conversationID)
	if err != nil {
		return nil, err
	}
	return conv, s.appendMessage(conv, fromID, body)
}

// GiveConsent records the user's irreversible photo consent and unlocks
// photos once both sides have agreed. Repeats and post-unlock consents are
// no-ops; consent before both have messaged is rejected.
func (s *ConsentService) GiveConsent(conversationID, userID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.get(conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	lock := s.locks.get(pairKey(conv.InitiatorID, conv.PartnerID))
	lock.Lock()
	defer lock.Unlock()

	conv, err = s.get(conversationID)
	if err != nil {
		return nil, err
	}

	before := conv.PhotosUnlocked
	if err := advanceOnConsent(conv, userID, time.Now()); err != nil {
		return nil, err
	}
	if err := s.db.Save(conv).Error; err != nil {
		return nil, storeErr("conversation save", err)
	}

	if conv.PhotosUnlocked && !before {
		s.notifier.Notify(conv.InitiatorID, models.NotifyPhotosUnlocked, map[string]any{"conversation_id": conv.ID})
		s.notifier.Notify(conv.PartnerID, models.NotifyPhotosUnlocked, map[string]any{"conversation_id": conv.ID})
	}
	return conv, nil
}

// Get loads a conversation with its messages for one of its participants.
func (s *ConsentService) Get(conversationID, viewerID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&conv, "id = ?", conversationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, storeErr("conversation load", err)
	}
	if !conv.HasParticipant(viewerID) {
		return nil, ErrNotParticipant
	}
	return &conv, nil
}

func (s *ConsentService) get(conversationID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.First(&conv, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, storeErr("conversation load", err)
	}
	return &conv, nil
}

func (s *ConsentService) findByPair(a, b uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.Where(
		"(initiator_id = ? AND partner_id = ?) OR (initiator_id = ? AND partner_id = ?)",
		a, b, b, a,
	).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("conversation lookup", err)
	}
	return &conv, nil
}

func (s *ConsentService) appendMessage(conv *models.Conversation, fromID uuid.UUID, body string) error {
	advanceOnMessage(conv, fromID)
	return s.db.Transaction(func(tx *gorm.DB) error {
		msg := &models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: fromID, Body: body}
		if err := tx.Create(msg).Error; err != nil {
			return storeErr("message create", err)
		}
		if err := tx.Save(conv).Error; err != nil {
			return storeErr("conversation save", err)
		}
		return nil
	})
}
