package dto

import "hireflow/internal/domain/assessment"

// QuestionResponse carries the answer key only when the server cannot grade
// the submission itself.
type QuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Points        int      `json:"points,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

func NewQuestionResponses(qs []assessment.Question, withAnswers bool) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(qs))
	for _, q := range qs {
		r := QuestionResponse{Question: q.Question, Options: q.Options, Points: q.Points}
		if withAnswers {
			r.CorrectAnswer = q.CorrectAnswer
		}
		out = append(out, r)
	}
	return out
}

type ChallengesResponse struct {
	Reasoning []QuestionResponse           `json:"reasoning"`
	Aptitude  []QuestionResponse           `json:"aptitude"`
	Coding    []assessment.CodingChallenge `json:"coding"`
}

func NewChallengesResponse(c assessment.Challenges, withAnswers bool) ChallengesResponse {
	coding := c.Coding
	if coding == nil {
		coding = []assessment.CodingChallenge{}
	}
	return ChallengesResponse{
		Reasoning: NewQuestionResponses(c.Reasoning, withAnswers),
		Aptitude:  NewQuestionResponses(c.Aptitude, withAnswers),
		Coding:    coding,
	}
}
