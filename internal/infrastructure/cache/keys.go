package cache

import (
	"strings"

	"github.com/google/uuid"
)

// JobDescriptionKey addresses the job description a resume was screened against.
// Filenames are stored the way HR sees them: underscores read as spaces.
func JobDescriptionKey(filename string) string {
	name := strings.TrimSpace(strings.ReplaceAll(filename, "_", " "))
	return "jd:" + strings.ToLower(name)
}

func IssuedQuestionsKey(candidateID uuid.UUID) string {
	return "assessment:issued:" + candidateID.String()
}

func SubmitLockKey(candidateID uuid.UUID) string {
	return "assessment:submit:lock:" + candidateID.String()
}
