package candidate

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending              Status = "pending"
	StatusTestInvited          Status = "test_invited"
	StatusTestCompleted        Status = "test_completed"
	StatusSecondRoundInvited   Status = "second_round_invited"
	StatusSecondRoundCompleted Status = "second_round_completed"
	StatusHRRoundInvited       Status = "hr_round_invited"
)

// BoardStatuses is the fixed column order of the HR board.
var BoardStatuses = []Status{
	StatusTestInvited,
	StatusTestCompleted,
	StatusSecondRoundInvited,
	StatusSecondRoundCompleted,
	StatusHRRoundInvited,
}

var roundLabels = map[Status]string{
	StatusTestInvited:          "Test Invited",
	StatusTestCompleted:        "First Round Completed",
	StatusSecondRoundInvited:   "Second Round Invited",
	StatusSecondRoundCompleted: "Second Round Completed",
	StatusHRRoundInvited:       "HR Round Invited",
}

// BoardColumn is the board column a status is filed under. Unknown values,
// pending included, sit with "test_invited".
func BoardColumn(s Status) Status {
	if _, ok := roundLabels[s]; ok {
		return s
	}
	return StatusTestInvited
}

// RoundLabel is the board heading for a status. Unknown values read as "Test Invited".
func RoundLabel(s Status) string {
	if l, ok := roundLabels[s]; ok {
		return l
	}
	return roundLabels[StatusTestInvited]
}

type Candidate struct {
	ID               uuid.UUID
	Name             string
	Email            string
	MatchPercent     float64
	TestScore        int
	SecondRoundScore float64
	Status           Status
	JobDescription   string
	ResumeFilename   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CombinedScore averages the first-round score and the second-round percentage.
func CombinedScore(testScore int, secondRoundPct float64) float64 {
	return (float64(testScore) + secondRoundPct) / 2
}
