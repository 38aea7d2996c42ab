package usecase

import (
	"context"
	"testing"

	domain "hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcq(q, correct string) domain.Question {
	return domain.Question{Question: q, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: correct}
}

func storedSet() domain.Challenges {
	return domain.Challenges{
		Reasoning: []domain.Question{mcq("r1", "a"), mcq("r2", "b"), mcq("r3", "c")},
		Aptitude:  []domain.Question{mcq("a1", "a"), mcq("a2", "b"), mcq("a3", "c")},
		Coding:    []domain.CodingChallenge{{Question: "reverse"}, {Question: "fizzbuzz"}},
	}
}

func secondRoundCandidate() candidate.Candidate {
	return candidate.Candidate{
		ID:        uuid.New(),
		Name:      "Ada",
		Email:     "ada@example.com",
		TestScore: 70,
		Status:    candidate.StatusSecondRoundInvited,
	}
}

func TestSecondRound_SubmitAgainstStoredSet(t *testing.T) {
	c := secondRoundCandidate()
	st := newMemStore(c)
	st.rounds.challenges = []domain.StoredChallenges{{ID: uuid.New(), CandidateID: c.ID, Challenges: storedSet()}}
	push := &recordingPusher{}
	uc := NewSecondRoundUsecase(st.store(), &stubGenerator{coding: 1.5}, push, nil)

	score, err := uc.Submit(context.Background(), c.ID, domain.SecondRoundAnswers{
		Reasoning: []domain.ChoiceAnswer{
			{Question: "r1", Answer: "a"},
			{Question: "r2", Answer: "x", Correct: true},
			{Question: "r3", Answer: "C"},
		},
		Aptitude: []domain.ChoiceAnswer{{Answer: "a"}, {Answer: "b"}, {Answer: "c"}},
		Coding:   []domain.CodingAnswer{{Question: "reverse", Answer: "s[::-1]"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, score.ReasoningScore)
	assert.Equal(t, 3, score.AptitudeScore)
	assert.Equal(t, 1.5, score.CodingScore)
	assert.Equal(t, 6.5, score.TotalScore)
	assert.Equal(t, 81.3, score.Percentage)
	assert.Equal(t, 8, score.MaxScore)

	got, _ := st.candidates.GetByID(context.Background(), c.ID)
	assert.Equal(t, candidate.StatusSecondRoundCompleted, got.Status)
	assert.Equal(t, 81.25, got.SecondRoundScore)

	require.Len(t, st.rounds.results, 1)
	assert.Equal(t, 81.25, st.rounds.results[0].Percentage)

	require.Len(t, st.notifications.items, 1)
	n := st.notifications.items[0]
	assert.Equal(t, "second_round_completed", n.Status)
	assert.Equal(t, 81.25, n.TestScore)
	require.NotNil(t, n.CombinedScore)
	assert.Equal(t, 75.625, *n.CombinedScore)
	assert.Len(t, push.pushed, 1)
}

func TestSecondRound_SubmitWithoutStoredSetUsesFlags(t *testing.T) {
	c := secondRoundCandidate()
	st := newMemStore(c)
	uc := NewSecondRoundUsecase(st.store(), &stubGenerator{}, nil, nil)

	score, err := uc.Submit(context.Background(), c.ID, domain.SecondRoundAnswers{
		Reasoning: []domain.ChoiceAnswer{{Correct: true}, {Correct: true}, {Correct: true}, {Correct: true}},
		Aptitude:  []domain.ChoiceAnswer{{Correct: false}, {Correct: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, score.ReasoningScore)
	assert.Equal(t, 1, score.AptitudeScore)
	assert.Equal(t, 50.0, score.Percentage)
}

func TestSecondRound_StartAndResult(t *testing.T) {
	c := secondRoundCandidate()
	st := newMemStore(c)
	fallback := domain.Challenges{Reasoning: []domain.Question{mcq("fb", "a")}}
	uc := NewSecondRoundUsecase(st.store(), &stubGenerator{fallback: fallback}, nil, nil)

	sess, err := uc.Start(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, sess.Stored)
	assert.Equal(t, fallback, sess.Challenges)

	st.rounds.challenges = []domain.StoredChallenges{{CandidateID: c.ID, Challenges: storedSet()}}
	sess, err = uc.Start(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, sess.Stored)

	_, err = uc.Start(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	res, err := uc.Result(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, SecondRoundScore{MaxScore: 8}, res)

	st.rounds.results = []domain.SecondRoundResult{{CandidateID: c.ID, ReasoningScore: 1, TotalScore: 1, Percentage: 12.5}}
	res, err = uc.Result(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, res.Percentage)
	assert.Equal(t, 1, res.ReasoningScore)
}
