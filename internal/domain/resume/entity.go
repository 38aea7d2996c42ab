package resume

import (
	"time"

	"github.com/google/uuid"
)

// Ranked is one resume of a screening batch with its similarity to the batch job description.
type Ranked struct {
	ID             uuid.UUID
	BatchID        uuid.UUID
	Filename       string
	StorageKey     string
	MatchPercent   float64
	Rank           int
	JobDescription string
	Shortlisted    bool
	CreatedAt      time.Time
}

// Batch is the result of one screening run.
type Batch struct {
	ID             uuid.UUID
	JobDescription string
	Resumes        []Ranked
	CreatedAt      time.Time
}
