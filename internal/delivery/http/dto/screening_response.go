package dto

import (
	"hireflow/internal/domain/resume"

	"github.com/google/uuid"
)

type RankedResumeResponse struct {
	ID           uuid.UUID `json:"id"`
	Rank         int       `json:"rank"`
	Filename     string    `json:"filename"`
	MatchPercent float64   `json:"match_percentage"`
	Shortlisted  bool      `json:"shortlisted"`
}

type ScreeningResponse struct {
	BatchID        uuid.UUID              `json:"batch_id"`
	JobDescription string                 `json:"job_description"`
	Resumes        []RankedResumeResponse `json:"resumes"`
	Skipped        []string               `json:"skipped"`
}

func NewScreeningResponse(batchID uuid.UUID, jd string, ranked []resume.Ranked, skipped []string) ScreeningResponse {
	out := ScreeningResponse{
		BatchID:        batchID,
		JobDescription: jd,
		Resumes:        make([]RankedResumeResponse, 0, len(ranked)),
		Skipped:        skipped,
	}
	if out.Skipped == nil {
		out.Skipped = []string{}
	}
	for _, r := range ranked {
		out.Resumes = append(out.Resumes, RankedResumeResponse{
			ID:           r.ID,
			Rank:         r.Rank,
			Filename:     r.Filename,
			MatchPercent: r.MatchPercent,
			Shortlisted:  r.Shortlisted,
		})
	}
	return out
}
