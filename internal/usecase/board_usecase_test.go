package usecase

import (
	"context"
	"strings"
	"testing"

	"hireflow/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardGroupKey(t *testing.T) {
	assert.Equal(t, "General", BoardGroupKey("  "))
	assert.Equal(t, "Go dev...", BoardGroupKey("Go dev"))
	long := strings.Repeat("x", 50)
	assert.Equal(t, strings.Repeat("x", 40)+"...", BoardGroupKey(long))
}

func TestBoard(t *testing.T) {
	mk := func(name string, st candidate.Status, score int, jd string) candidate.Candidate {
		return candidate.Candidate{ID: uuid.New(), Name: name, Status: st, TestScore: score, JobDescription: jd}
	}
	st := newMemStore(
		mk("low", candidate.StatusTestCompleted, 20, "Backend"),
		mk("high", candidate.StatusTestCompleted, 90, "Backend"),
		mk("general", candidate.StatusTestCompleted, 50, ""),
		mk("hr", candidate.StatusHRRoundInvited, 70, "Backend"),
		mk("pending", candidate.StatusPending, 0, ""),
		mk("legacy", candidate.Status("archived"), 0, "Backend"),
	)

	rounds, err := NewBoardUsecase(st.candidates, nil).Board(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 5)

	labels := make([]string, 0, len(rounds))
	for _, r := range rounds {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"Test Invited", "First Round Completed", "Second Round Invited", "Second Round Completed", "HR Round Invited"}, labels)

	// pending has no column of its own and files under "Test Invited"
	require.Len(t, rounds[0].Groups, 2)
	assert.Equal(t, "General", rounds[0].Groups[0].JobDescription)
	assert.Equal(t, "pending", rounds[0].Groups[0].Candidates[0].Name)
	assert.Equal(t, "Backend...", rounds[0].Groups[1].JobDescription)
	assert.Equal(t, "legacy", rounds[0].Groups[1].Candidates[0].Name)

	first := rounds[1]
	require.Len(t, first.Groups, 2)
	assert.Equal(t, "Backend...", first.Groups[0].JobDescription)
	require.Len(t, first.Groups[0].Candidates, 2)
	assert.Equal(t, "high", first.Groups[0].Candidates[0].Name)
	assert.Equal(t, "low", first.Groups[0].Candidates[1].Name)
	assert.Equal(t, "General", first.Groups[1].JobDescription)

	require.Len(t, rounds[4].Groups, 1)
	assert.Equal(t, "hr", rounds[4].Groups[0].Candidates[0].Name)
}
