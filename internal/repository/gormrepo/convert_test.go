package gormrepo

import (
	"testing"
	"time"

	"hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/notification"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound), repository.ErrNotFound)
	assert.Nil(t, notFound(nil))
}

func TestCandidateModel_KeepsStatusAndID(t *testing.T) {
	c := candidate.Candidate{
		ID:        uuid.New(),
		Name:      "Ada",
		Status:    candidate.StatusSecondRoundInvited,
		TestScore: 70,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	m := candidateModel(c)
	assert.Equal(t, c.ID.String(), m.ID)
	assert.Equal(t, "second_round_invited", m.Status)
	assert.Equal(t, c, m.domain())
}

func TestNotificationModel_NullableFields(t *testing.T) {
	n := notification.Notification{ID: uuid.New(), CandidateName: "Ada"}
	m := notificationModel(n)
	assert.Nil(t, m.CandidateID)
	assert.Nil(t, m.CombinedScore)

	id := uuid.New()
	combined := 72.5
	n.CandidateID = &id
	n.CombinedScore = &combined
	back := notificationModel(n).domain()
	require.NotNil(t, back.CandidateID)
	assert.Equal(t, id, *back.CandidateID)
	assert.Equal(t, 72.5, *back.CombinedScore)
}

func TestChallengeModel_JSONColumn(t *testing.T) {
	c := assessment.StoredChallenges{
		ID:          uuid.New(),
		CandidateID: uuid.New(),
		Challenges: assessment.Challenges{
			Reasoning: []assessment.Question{{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}},
			Coding:    []assessment.CodingChallenge{{Question: "reverse", Difficulty: "easy"}},
		},
	}
	m, err := challengeModel(c)
	require.NoError(t, err)
	assert.Contains(t, string(m.Challenges), `"correct_answer":"a"`)

	back, err := m.domain()
	require.NoError(t, err)
	assert.Equal(t, c.Challenges, back.Challenges)
}

func TestParseID_Invalid(t *testing.T) {
	assert.Equal(t, uuid.Nil, parseID("nope"))
	bad := "nope"
	assert.Nil(t, parseOptionalID(&bad))
}
