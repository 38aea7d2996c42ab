package usecase

import (
	"context"
	"testing"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/mail"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_ApproveSecondRound(t *testing.T) {
	c := invitedCandidate()
	c.Status = candidate.StatusTestCompleted
	st := newMemStore(c)
	m := &recordingMailer{}
	uc := NewReviewUsecase(st.store(), &stubGenerator{challenges: storedSet()}, m, "http://localhost:8080", nil)

	require.NoError(t, uc.ApproveSecondRound(context.Background(), c.ID))

	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, candidate.StatusSecondRoundInvited, got.Status)

	require.Len(t, st.rounds.challenges, 1)
	assert.Equal(t, c.ID, st.rounds.challenges[0].CandidateID)

	require.Len(t, m.sent, 1)
	assert.Equal(t, mail.SubjectSecondRound, m.sent[0].Subject)
	assert.Contains(t, m.sent[0].Text, "http://localhost:8080/second-round/"+c.ID.String())
	assert.Contains(t, m.sent[0].Text, "Reasoning: 3 questions")
	assert.Contains(t, m.sent[0].Text, "Coding: 2 challenges")
}

func TestReview_ApproveSecondRound_DeliveryFailureKeepsStatus(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	m := &recordingMailer{fail: map[string]bool{c.Email: true}}
	uc := NewReviewUsecase(st.store(), &stubGenerator{challenges: storedSet()}, m, "", nil)

	assert.ErrorIs(t, uc.ApproveSecondRound(context.Background(), c.ID), ErrDeliveryFailed)
	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, candidate.StatusSecondRoundInvited, got.Status)
}

func TestReview_ApproveHRRound(t *testing.T) {
	c := invitedCandidate()
	c.TestScore = 80
	st := newMemStore(c)
	m := &recordingMailer{}
	uc := NewReviewUsecase(st.store(), &stubGenerator{}, m, "", nil)

	// approvals are accepted from any status
	require.NoError(t, uc.ApproveHRRound(context.Background(), c.ID))
	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, candidate.StatusHRRoundInvited, got.Status)
	require.Len(t, m.sent, 1)
	assert.Equal(t, mail.SubjectHRRound, m.sent[0].Subject)

	assert.ErrorIs(t, uc.ApproveHRRound(context.Background(), uuid.New()), ErrNotFound)
}
