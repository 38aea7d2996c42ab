package assessment

import (
	"fmt"
	"strings"
)

var secondRoundTopics = []string{
	"algorithms",
	"data structures",
	"problem solving",
	"system design",
	"programming logic",
}

func questionsPrompt(jd string, n, points int) string {
	return fmt.Sprintf(`
Generate exactly %d technical interview questions for: %s

Return ONLY a JSON array:
[
  {
    "question": "What is Android Activity?",
    "options": ["UI component", "Database", "Network", "Storage"],
    "correct_answer": "UI component",
    "points": %d
  }
]
`, n, truncateRunes(jd, 500), points)
}

func challengesPrompt(jd, topic string, seed int) string {
	return fmt.Sprintf(`
Create unique assessment questions #%d focusing on %s for job: %s

Return valid JSON:
{
  "reasoning": [
    {"question": "unique logic question", "options": ["A", "B", "C", "D"], "correct_answer": "A"},
    {"question": "different reasoning question", "options": ["A", "B", "C", "D"], "correct_answer": "B"},
    {"question": "another logic problem", "options": ["A", "B", "C", "D"], "correct_answer": "C"}
  ],
  "aptitude": [
    {"question": "math problem 1", "options": ["10", "20", "30", "40"], "correct_answer": "20"},
    {"question": "calculation question", "options": ["5", "15", "25", "35"], "correct_answer": "15"},
    {"question": "numerical reasoning", "options": ["100", "200", "300", "400"], "correct_answer": "200"}
  ],
  "coding": [
    {"question": "coding challenge 1", "sample_input": "input1", "expected_output": "output1", "difficulty": "easy"},
    {"question": "programming task", "sample_input": "input2", "expected_output": "output2", "difficulty": "medium"}
  ]
}

Make questions different from previous assessments.
`, seed, topic, truncateRunes(jd, 300))
}

func codingPrompt(question, code string) string {
	return fmt.Sprintf(`
Evaluate this coding solution:

Question: %s
Code: %s

Rate from 0-1 based on:
- Correctness of logic
- Code quality
- Completeness

Respond with only a number between 0 and 1 (e.g., 0.8)
`, question, code)
}

func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
