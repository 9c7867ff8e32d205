package services

import (
	"testing"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversation(initiator, partner uuid.UUID) *models.Conversation {
	return &models.Conversation{
		ID:          uuid.New(),
		InitiatorID: initiator,
		PartnerID:   partner,
		Status:      models.ConversationPendingResponse,
	}
}

func TestConsentFullWalk(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	now := time.Now()

	conv := newConversation(alice, bob)
	require.Equal(t, models.ConversationPendingResponse, conv.Status)

	// partner's first reply opens the consent phase
	advanceOnMessage(conv, bob)
	require.Equal(t, models.ConversationBothMessaged, conv.Status)

	// one side consents; photos stay locked
	require.NoError(t, advanceOnConsent(conv, alice, now))
	assert.Equal(t, models.ConversationAwaitingConsent, conv.Status)
	assert.True(t, conv.InitiatorConsented)
	assert.False(t, conv.PhotosUnlocked)
	assert.False(t, PhotosVisibleTo(conv, bob))

	// second side completes the pair
	require.NoError(t, advanceOnConsent(conv, bob, now))
	assert.Equal(t, models.ConversationPhotosUnlocked, conv.Status)
	assert.True(t, conv.PhotosUnlocked)
	assert.True(t, PhotosVisibleTo(conv, alice))
	assert.True(t, PhotosVisibleTo(conv, bob))
}

func TestConsentBeforeReplyRejected(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	conv := newConversation(alice, bob)

	err := advanceOnConsent(conv, alice, time.Now())
	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, string(models.ConversationPendingResponse), transition.From)
	assert.Equal(t, models.ConversationPendingResponse, conv.Status)
	assert.False(t, conv.InitiatorConsented)
}

func TestConsentRepeatIsNoOp(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	now := time.Now()

	conv := newConversation(alice, bob)
	advanceOnMessage(conv, bob)

	require.NoError(t, advanceOnConsent(conv, alice, now))
	first := conv.InitiatorConsentAt
	require.NotNil(t, first)

	// repeating the same consent changes nothing, including the timestamp
	require.NoError(t, advanceOnConsent(conv, alice, now.Add(time.Hour)))
	assert.Equal(t, models.ConversationAwaitingConsent, conv.Status)
	assert.Equal(t, first, conv.InitiatorConsentAt)
}

func TestConsentAfterUnlockIsNoOp(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	now := time.Now()

	conv := newConversation(alice, bob)
	advanceOnMessage(conv, bob)
	require.NoError(t, advanceOnConsent(conv, alice, now))
	require.NoError(t, advanceOnConsent(conv, bob, now))
	require.Equal(t, models.ConversationPhotosUnlocked, conv.Status)

	require.NoError(t, advanceOnConsent(conv, alice, now.Add(time.Hour)))
	assert.Equal(t, models.ConversationPhotosUnlocked, conv.Status)
	assert.True(t, conv.PhotosUnlocked)
}

func TestAdvanceOnMessageInitiatorDoesNotAdvance(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	conv := newConversation(alice, bob)

	// the initiator talking to themselves never opens the consent phase
	advanceOnMessage(conv, alice)
	assert.Equal(t, models.ConversationPendingResponse, conv.Status)

	advanceOnMessage(conv, bob)
	assert.Equal(t, models.ConversationBothMessaged, conv.Status)

	// later messages never regress the state
	advanceOnMessage(conv, bob)
	assert.Equal(t, models.ConversationBothMessaged, conv.Status)
}

func TestOtherParticipant(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	conv := newConversation(alice, bob)

	assert.Equal(t, bob, OtherParticipant(conv, alice))
	assert.Equal(t, alice, OtherParticipant(conv, bob))
}

func TestPhotosVisibleToNonParticipant(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	conv := newConversation(alice, bob)
	conv.PhotosUnlocked = true
	conv.Status = models.ConversationPhotosUnlocked

	assert.False(t, PhotosVisibleTo(conv, uuid.New()))
}
