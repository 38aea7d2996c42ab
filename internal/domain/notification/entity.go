package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification tells HR that a candidate finished a scored round.
type Notification struct {
	ID             uuid.UUID
	CandidateID    *uuid.UUID
	CandidateName  string
	CandidateEmail string
	TestScore      float64
	MatchPercent   float64
	CombinedScore  *float64
	Status         string
	Seen           bool
	SentAt         time.Time
}
