package assessment

import (
	"time"

	"github.com/google/uuid"
)

// Question is a four-option multiple choice item.
type Question struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer"`
	Points        int      `json:"points,omitempty" yaml:"-"`
}

type CodingChallenge struct {
	Question       string `json:"question" yaml:"question"`
	SampleInput    string `json:"sample_input" yaml:"sample_input"`
	ExpectedOutput string `json:"expected_output" yaml:"expected_output"`
	Difficulty     string `json:"difficulty" yaml:"difficulty"`
}

// Challenges is the second-round set.
type Challenges struct {
	Reasoning []Question        `json:"reasoning" yaml:"reasoning"`
	Aptitude  []Question        `json:"aptitude" yaml:"aptitude"`
	Coding    []CodingChallenge `json:"coding" yaml:"coding"`
}

// StoredChallenges is a Challenges set issued to one candidate.
type StoredChallenges struct {
	ID          uuid.UUID
	CandidateID uuid.UUID
	Challenges  Challenges
	CreatedAt   time.Time
}

const TestStatusCompleted = "completed"

// TestResult is one first-round submission.
type TestResult struct {
	ID             uuid.UUID
	CandidateID    *uuid.UUID
	CandidateName  string
	JobDescription string
	Score          int
	TotalQuestions int
	Status         string
	CompletedAt    time.Time
}

// ChoiceAnswer is one reasoning or aptitude answer. Correct is the client's own
// grading and only counts when no challenge set was stored for the candidate.
type ChoiceAnswer struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct,omitempty"`
}

type CodingAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SecondRoundAnswers holds the raw submission, kept alongside the scores.
type SecondRoundAnswers struct {
	Reasoning []ChoiceAnswer `json:"reasoning"`
	Aptitude  []ChoiceAnswer `json:"aptitude"`
	Coding    []CodingAnswer `json:"coding"`
}

// Section caps for one second-round submission. SecondRoundMax is their sum.
const (
	ReasoningMax   = 3
	AptitudeMax    = 3
	CodingMax      = 2
	SecondRoundMax = ReasoningMax + AptitudeMax + CodingMax
)

type SecondRoundResult struct {
	ID             uuid.UUID
	CandidateID    uuid.UUID
	ReasoningScore int
	AptitudeScore  int
	CodingScore    float64
	TotalScore     float64
	Percentage     float64
	Answers        SecondRoundAnswers
	SubmittedAt    time.Time
}

// Percentage scales a second-round total against SecondRoundMax.
func Percentage(total float64) float64 {
	return total / SecondRoundMax * 100
}
