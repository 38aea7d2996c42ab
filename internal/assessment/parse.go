package assessment

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	domain "hireflow/internal/domain/assessment"
)

// stripFences removes markdown code fences the model tends to wrap JSON in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// between returns text from the first open to the last close, inclusive.
func between(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

type rawQuestion struct {
	Question      json.RawMessage `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

// decodeQuestion keeps an item only when question and correct_answer are
// strings and options is a list of exactly four strings.
func decodeQuestion(raw json.RawMessage) (domain.Question, bool) {
	var rq rawQuestion
	if err := json.Unmarshal(raw, &rq); err != nil {
		return domain.Question{}, false
	}
	var q domain.Question
	if json.Unmarshal(rq.Question, &q.Question) != nil || strings.TrimSpace(q.Question) == "" {
		return domain.Question{}, false
	}
	if json.Unmarshal(rq.CorrectAnswer, &q.CorrectAnswer) != nil || strings.TrimSpace(q.CorrectAnswer) == "" {
		return domain.Question{}, false
	}
	if json.Unmarshal(rq.Options, &q.Options) != nil || len(q.Options) != 4 {
		return domain.Question{}, false
	}
	return q, true
}

func parseQuestions(text string) []domain.Question {
	body, ok := between(stripFences(text), '[', ']')
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil
	}
	out := make([]domain.Question, 0, len(items))
	for _, it := range items {
		if q, ok := decodeQuestion(it); ok {
			out = append(out, q)
		}
	}
	return out
}

type rawChallenges struct {
	Reasoning []json.RawMessage        `json:"reasoning"`
	Aptitude  []json.RawMessage        `json:"aptitude"`
	Coding    []domain.CodingChallenge `json:"coding"`
}

// parseChallenges accepts a reply only when all three sections are present
// and non-empty. Invalid multiple-choice items are dropped.
func parseChallenges(text string) (domain.Challenges, bool) {
	body, ok := between(stripFences(text), '{', '}')
	if !ok {
		return domain.Challenges{}, false
	}
	var rc rawChallenges
	if err := json.Unmarshal([]byte(body), &rc); err != nil {
		return domain.Challenges{}, false
	}

	var out domain.Challenges
	for _, it := range rc.Reasoning {
		if q, ok := decodeQuestion(it); ok {
			out.Reasoning = append(out.Reasoning, q)
		}
	}
	for _, it := range rc.Aptitude {
		if q, ok := decodeQuestion(it); ok {
			out.Aptitude = append(out.Aptitude, q)
		}
	}
	for _, c := range rc.Coding {
		if strings.TrimSpace(c.Question) != "" {
			out.Coding = append(out.Coding, c)
		}
	}

	if len(out.Reasoning) == 0 || len(out.Aptitude) == 0 || len(out.Coding) == 0 {
		return domain.Challenges{}, false
	}
	return out, true
}

// parseRating reads a bare 0..1 score. Anything else is reported as not ok.
func parseRating(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(stripFences(text)), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
		return 0, false
	}
	return v, true
}
