package usecase

import (
	"context"
	"testing"

	domain "hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
		{Question: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo", "Bern"}, CorrectAnswer: "Paris"},
		{Question: "Go keyword for goroutines?", Options: []string{"go", "async", "spawn", "thread"}, CorrectAnswer: "go"},
	}
}

func invitedCandidate() candidate.Candidate {
	return candidate.Candidate{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		MatchPercent:   64.2,
		Status:         candidate.StatusTestInvited,
		JobDescription: "Go backend role",
	}
}

func TestFirstRound_StartCachesIssuedSet(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	mc := newMemCache()
	gen := &stubGenerator{questions: sampleQuestions(), points: 10}
	uc := NewFirstRoundUsecase(st.store(), gen, mc, nil, 0, nil)

	sess, err := uc.Start(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, sess.Questions, 3)
	assert.True(t, sess.ServerGraded)

	var issued []domain.Question
	ok, err := mc.GetJSON(context.Background(), cache.IssuedQuestionsKey(c.ID), &issued)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Paris", issued[1].CorrectAnswer)

	_, err = uc.Start(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstRound_StartWithoutCacheIsClientGraded(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	gen := &stubGenerator{questions: sampleQuestions(), points: 10}
	uc := NewFirstRoundUsecase(st.store(), gen, nil, nil, 0, nil)

	sess, err := uc.Start(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, sess.ServerGraded)
}

func TestFirstRound_SubmitGradesAgainstIssuedSet(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	mc := newMemCache()
	push := &recordingPusher{}
	gen := &stubGenerator{questions: sampleQuestions(), points: 10}
	uc := NewFirstRoundUsecase(st.store(), gen, mc, push, 0, nil)

	_, err := uc.Start(context.Background(), c.ID)
	require.NoError(t, err)

	id := c.ID
	res, err := uc.Submit(context.Background(), SubmitTestInput{
		CandidateID: &id,
		Answers: []Answer{
			{Question: "2+2?", Answer: " 4 ", CorrectAnswer: "4"},
			// a forged key is ignored when the server issued the set
			{Question: "Capital of France?", Answer: "Rome", CorrectAnswer: "Rome"},
			{Question: "Go keyword for goroutines?", Answer: "GO"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, SubmitTestResult{Score: 20, MaxScore: 30, Correct: 2, TotalQuestions: 3}, res)

	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, candidate.StatusTestCompleted, got.Status)
	assert.Equal(t, 20, got.TestScore)

	require.Len(t, st.results.items, 1)
	tr := st.results.items[0]
	assert.Equal(t, "Go backend role", tr.JobDescription)
	assert.Equal(t, domain.TestStatusCompleted, tr.Status)
	require.NotNil(t, tr.CandidateID)

	require.Len(t, st.notifications.items, 1)
	n := st.notifications.items[0]
	assert.Equal(t, "pending", n.Status)
	assert.Equal(t, 20.0, n.TestScore)
	assert.Equal(t, 64.2, n.MatchPercent)
	assert.Nil(t, n.CombinedScore)
	assert.Len(t, push.pushed, 1)
}

func TestFirstRound_SubmitGradesEachIssuedQuestionOnce(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	mc := newMemCache()
	uc := NewFirstRoundUsecase(st.store(), &stubGenerator{questions: sampleQuestions(), points: 10}, mc, nil, 0, nil)

	_, err := uc.Start(context.Background(), c.ID)
	require.NoError(t, err)

	answers := make([]Answer, 20)
	for i := range answers {
		answers[i] = Answer{Question: "2+2?", Answer: "4"}
	}
	id := c.ID
	res, err := uc.Submit(context.Background(), SubmitTestInput{CandidateID: &id, Answers: answers})
	require.NoError(t, err)
	assert.Equal(t, SubmitTestResult{Score: 10, MaxScore: 30, Correct: 1, TotalQuestions: 3}, res)

	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, 10, got.TestScore)
	assert.Equal(t, 3, st.results.items[0].TotalQuestions)
}

func TestGradeAnswers_PositionFallbackStopsAtIssuedSet(t *testing.T) {
	issued := sampleQuestions()
	correct, total := gradeAnswers(issued, []Answer{
		{Question: "reworded", Answer: "4"},
		{Question: "Capital of France?", Answer: "paris"},
		{Question: "unknown", Answer: "go"},
		{Question: "extra", Answer: "anything"},
		{Question: "extra 2", Answer: "anything"},
	})
	assert.Equal(t, 3, correct)
	assert.Equal(t, 3, total)
}

func TestFirstRound_SubmitWithoutIssuedSetTrustsKey(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	uc := NewFirstRoundUsecase(st.store(), &stubGenerator{points: 5}, nil, nil, 10, nil)

	res, err := uc.Submit(context.Background(), SubmitTestInput{
		CandidateName:  "Ada",
		JobDescription: "A very long job description",
		Answers: []Answer{
			{Answer: "b", CorrectAnswer: "B"},
			{Answer: "a", CorrectAnswer: "c"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Score)
	assert.Equal(t, "A very lon", st.results.items[0].JobDescription)

	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, 5, got.TestScore)
}

func TestFirstRound_SubmitUnknownName(t *testing.T) {
	st := newMemStore()
	uc := NewFirstRoundUsecase(st.store(), &stubGenerator{points: 10}, nil, nil, 0, nil)

	res, err := uc.Submit(context.Background(), SubmitTestInput{
		CandidateName: "Ghost",
		Answers:       []Answer{{Answer: "x", CorrectAnswer: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Score)
	require.Len(t, st.results.items, 1)
	assert.Nil(t, st.results.items[0].CandidateID)
	assert.Empty(t, st.notifications.items)
}

func TestFirstRound_SubmitErrors(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	mc := newMemCache()
	uc := NewFirstRoundUsecase(st.store(), &stubGenerator{points: 10}, mc, nil, 0, nil)

	_, err := uc.Submit(context.Background(), SubmitTestInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := uuid.New()
	_, err = uc.Submit(context.Background(), SubmitTestInput{CandidateID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)

	id := c.ID
	ok, _ := mc.SetIfNotExists(context.Background(), cache.SubmitLockKey(id), "1", 0)
	require.True(t, ok)
	_, err = uc.Submit(context.Background(), SubmitTestInput{CandidateID: &id})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestFirstRound_NotificationFailureIsSwallowed(t *testing.T) {
	c := invitedCandidate()
	st := newMemStore(c)
	st.notifications.createErr = errBoom
	push := &recordingPusher{}
	uc := NewFirstRoundUsecase(st.store(), &stubGenerator{points: 10}, nil, push, 0, nil)

	id := c.ID
	_, err := uc.Submit(context.Background(), SubmitTestInput{CandidateID: &id, Answers: []Answer{{Answer: "a", CorrectAnswer: "a"}}})
	require.NoError(t, err)

	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, candidate.StatusTestCompleted, got.Status)
	assert.Empty(t, push.pushed)
}
