package dto

import (
	"time"

	"hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	MatchPercent     float64   `json:"match_percentage"`
	TestScore        int       `json:"test_score"`
	SecondRoundScore float64   `json:"second_round_score"`
	Status           string    `json:"status"`
	RoundLabel       string    `json:"round_label"`
	JobDescription   string    `json:"job_description"`
	ResumeFilename   string    `json:"resume_filename"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewCandidateResponse(c candidate.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		MatchPercent:     c.MatchPercent,
		TestScore:        c.TestScore,
		SecondRoundScore: c.SecondRoundScore,
		Status:           string(c.Status),
		RoundLabel:       candidate.RoundLabel(c.Status),
		JobDescription:   c.JobDescription,
		ResumeFilename:   c.ResumeFilename,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func NewCandidateResponses(in []candidate.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(in))
	for _, c := range in {
		out = append(out, NewCandidateResponse(c))
	}
	return out
}

type TestResultResponse struct {
	ID             uuid.UUID `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Status         string    `json:"status"`
	CompletedAt    time.Time `json:"completed_at"`
}

type CandidateDetailsResponse struct {
	Candidate  CandidateResponse   `json:"candidate"`
	TestResult *TestResultResponse `json:"test_result"`
}

func NewCandidateDetailsResponse(c candidate.Candidate, r *assessment.TestResult) CandidateDetailsResponse {
	out := CandidateDetailsResponse{Candidate: NewCandidateResponse(c)}
	if r != nil {
		out.TestResult = &TestResultResponse{
			ID:             r.ID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Status:         r.Status,
			CompletedAt:    r.CompletedAt,
		}
	}
	return out
}
