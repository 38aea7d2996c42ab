package gormrepo

import (
	"encoding/json"

	"hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/notification"
	"hireflow/internal/domain/resume"

	"github.com/google/uuid"
)

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseOptionalID(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func candidateModel(c candidate.Candidate) Candidate {
	return Candidate{
		ID:               c.ID.String(),
		Name:             c.Name,
		Email:            c.Email,
		MatchPercent:     c.MatchPercent,
		TestScore:        c.TestScore,
		SecondRoundScore: c.SecondRoundScore,
		Status:           string(c.Status),
		JobDescription:   c.JobDescription,
		ResumeFilename:   c.ResumeFilename,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m Candidate) domain() candidate.Candidate {
	return candidate.Candidate{
		ID:               parseID(m.ID),
		Name:             m.Name,
		Email:            m.Email,
		MatchPercent:     m.MatchPercent,
		TestScore:        m.TestScore,
		SecondRoundScore: m.SecondRoundScore,
		Status:           candidate.Status(m.Status),
		JobDescription:   m.JobDescription,
		ResumeFilename:   m.ResumeFilename,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func resumeModel(r resume.Ranked) Resume {
	return Resume{
		ID:             r.ID.String(),
		BatchID:        r.BatchID.String(),
		Filename:       r.Filename,
		StorageKey:     r.StorageKey,
		MatchPercent:   r.MatchPercent,
		Rank:           r.Rank,
		Shortlisted:    r.Shortlisted,
		JobDescription: r.JobDescription,
		CreatedAt:      r.CreatedAt,
	}
}

func (m Resume) domain() resume.Ranked {
	return resume.Ranked{
		ID:             parseID(m.ID),
		BatchID:        parseID(m.BatchID),
		Filename:       m.Filename,
		StorageKey:     m.StorageKey,
		MatchPercent:   m.MatchPercent,
		Rank:           m.Rank,
		Shortlisted:    m.Shortlisted,
		JobDescription: m.JobDescription,
		CreatedAt:      m.CreatedAt,
	}
}

func testResultModel(t assessment.TestResult) TestResult {
	return TestResult{
		ID:             t.ID.String(),
		CandidateID:    optionalID(t.CandidateID),
		CandidateName:  t.CandidateName,
		JobDescription: t.JobDescription,
		Score:          t.Score,
		TotalQuestions: t.TotalQuestions,
		Status:         t.Status,
		CompletedAt:    t.CompletedAt,
	}
}

func (m TestResult) domain() assessment.TestResult {
	return assessment.TestResult{
		ID:             parseID(m.ID),
		CandidateID:    parseOptionalID(m.CandidateID),
		CandidateName:  m.CandidateName,
		JobDescription: m.JobDescription,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Status:         m.Status,
		CompletedAt:    m.CompletedAt,
	}
}

func notificationModel(n notification.Notification) HRNotification {
	return HRNotification{
		ID:             n.ID.String(),
		CandidateID:    optionalID(n.CandidateID),
		CandidateName:  n.CandidateName,
		CandidateEmail: n.CandidateEmail,
		TestScore:      n.TestScore,
		MatchPercent:   n.MatchPercent,
		CombinedScore:  n.CombinedScore,
		Status:         n.Status,
		Seen:           n.Seen,
		SentAt:         n.SentAt,
	}
}

func (m HRNotification) domain() notification.Notification {
	return notification.Notification{
		ID:             parseID(m.ID),
		CandidateID:    parseOptionalID(m.CandidateID),
		CandidateName:  m.CandidateName,
		CandidateEmail: m.CandidateEmail,
		TestScore:      m.TestScore,
		MatchPercent:   m.MatchPercent,
		CombinedScore:  m.CombinedScore,
		Status:         m.Status,
		Seen:           m.Seen,
		SentAt:         m.SentAt,
	}
}

func challengeModel(c assessment.StoredChallenges) (SecondRoundChallenge, error) {
	b, err := json.Marshal(c.Challenges)
	if err != nil {
		return SecondRoundChallenge{}, err
	}
	return SecondRoundChallenge{
		ID:          c.ID.String(),
		CandidateID: c.CandidateID.String(),
		Challenges:  b,
		CreatedAt:   c.CreatedAt,
	}, nil
}

func (m SecondRoundChallenge) domain() (assessment.StoredChallenges, error) {
	out := assessment.StoredChallenges{
		ID:          parseID(m.ID),
		CandidateID: parseID(m.CandidateID),
		CreatedAt:   m.CreatedAt,
	}
	if err := json.Unmarshal(m.Challenges, &out.Challenges); err != nil {
		return assessment.StoredChallenges{}, err
	}
	return out, nil
}

func secondRoundResultModel(r assessment.SecondRoundResult) (SecondRoundResult, error) {
	b, err := json.Marshal(r.Answers)
	if err != nil {
		return SecondRoundResult{}, err
	}
	return SecondRoundResult{
		ID:             r.ID.String(),
		CandidateID:    r.CandidateID.String(),
		ReasoningScore: r.ReasoningScore,
		AptitudeScore:  r.AptitudeScore,
		CodingScore:    r.CodingScore,
		TotalScore:     r.TotalScore,
		Percentage:     r.Percentage,
		Answers:        b,
		SubmittedAt:    r.SubmittedAt,
	}, nil
}

func (m SecondRoundResult) domain() (assessment.SecondRoundResult, error) {
	out := assessment.SecondRoundResult{
		ID:             parseID(m.ID),
		CandidateID:    parseID(m.CandidateID),
		ReasoningScore: m.ReasoningScore,
		AptitudeScore:  m.AptitudeScore,
		CodingScore:    m.CodingScore,
		TotalScore:     m.TotalScore,
		Percentage:     m.Percentage,
		SubmittedAt:    m.SubmittedAt,
	}
	if len(m.Answers) > 0 {
		if err := json.Unmarshal(m.Answers, &out.Answers); err != nil {
			return assessment.SecondRoundResult{}, err
		}
	}
	return out, nil
}
