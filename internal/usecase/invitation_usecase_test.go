package usecase

import (
	"context"
	"testing"
	"time"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/resume"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvitations(st *memStore, c Cache, m *recordingMailer) *Invitations {
	return NewInvitationUsecase(st.candidates, st.resumes, c, m, InvitationConfig{
		PublicBaseURL: "https://hire.example.com/",
		Workers:       2,
	}, nil)
}

func TestInviteOne(t *testing.T) {
	st := newMemStore()
	c := newMemCache()
	require.NoError(t, c.SetJSON(context.Background(), cache.JobDescriptionKey("ada_cv.pdf"), "Go backend role", 0))
	m := &recordingMailer{}

	got, err := newInvitations(st, c, m).InviteOne(context.Background(), InviteInput{
		Name: " Ada ", Email: "ada@example.com", ResumeFilename: "ada_cv.pdf", MatchPercent: 77.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, candidate.StatusTestInvited, got.Status)
	assert.Equal(t, "Go backend role", got.JobDescription)
	assert.Equal(t, 77.5, got.MatchPercent)

	stored, err := st.candidates.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, stored.ID)

	require.Len(t, m.sent, 1)
	assert.Equal(t, mail.SubjectFirstRound, m.sent[0].Subject)
	assert.Contains(t, m.sent[0].Text, "https://hire.example.com/start_test/"+got.ID.String())
}

func TestInviteOne_JobDescriptionFromDatabase(t *testing.T) {
	st := newMemStore()
	st.resumes.items = []resume.Ranked{{Filename: "bob.docx", JobDescription: "Data engineer"}}

	got, err := newInvitations(st, nil, &recordingMailer{}).InviteOne(context.Background(), InviteInput{
		Name: "Bob", Email: "bob@example.com", ResumeFilename: "bob.docx",
	})
	require.NoError(t, err)
	assert.Equal(t, "Data engineer", got.JobDescription)
}

func TestInviteOne_Errors(t *testing.T) {
	st := newMemStore()
	m := &recordingMailer{fail: map[string]bool{"down@example.com": true}}
	uc := newInvitations(st, nil, m)

	_, err := uc.InviteOne(context.Background(), InviteInput{Name: "Ada", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.InviteOne(context.Background(), InviteInput{Name: "  ", Email: "a@b.io"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.InviteOne(context.Background(), InviteInput{Name: "Ada", Email: "down@example.com"})
	assert.ErrorIs(t, err, ErrDeliveryFailed)

	st.candidates.createErr = errBoom
	_, err = uc.InviteOne(context.Background(), InviteInput{Name: "Ada", Email: "a@b.io"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestInviteMany(t *testing.T) {
	st := newMemStore()
	m := &recordingMailer{fail: map[string]bool{"down@example.com": true}}

	res, err := newInvitations(st, nil, m).InviteMany(context.Background(), []InviteInput{
		{Name: "Ada", Email: "ada@example.com"},
		{Name: "", Email: "nobody@example.com"},
		{Name: "Bob", Email: "down@example.com"},
		{Name: "Cy", Email: "cy@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, BulkInviteResult{Sent: 2, Skipped: 1, Failed: 1}, res)
	assert.Len(t, m.sent, 2)

	_, err = newInvitations(st, nil, m).InviteMany(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInviteMany_PacesSends(t *testing.T) {
	st := newMemStore()
	m := &recordingMailer{}
	uc := NewInvitationUsecase(st.candidates, st.resumes, nil, m, InvitationConfig{
		PublicBaseURL: "https://hire.example.com",
		Workers:       4,
		RatePerSecond: 10,
	}, nil)

	in := make([]InviteInput, 5)
	for i := range in {
		in[i] = InviteInput{Name: "Cand", Email: "cand@example.com"}
	}

	start := time.Now()
	res, err := uc.InviteMany(context.Background(), in)
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Equal(t, BulkInviteResult{Sent: 5}, res)
	assert.Len(t, m.sent, 5)
	// five sends at 10 per second leave four 100ms gaps
	assert.GreaterOrEqual(t, elapsed, 380*time.Millisecond)
}
