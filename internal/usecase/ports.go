package usecase

import (
	"context"
	"time"

	"hireflow/internal/domain/assessment"
	"hireflow/internal/domain/notification"
)

// Cache is the slice of the Redis adapter the usecases rely on. Every method
// must tolerate the cache being unavailable.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type AssessmentGenerator interface {
	TotalQuestions() int
	PointsPerQuestion() int
	Questions(ctx context.Context, jd string) []assessment.Question
	Challenges(ctx context.Context, jd string) assessment.Challenges
	FallbackChallenges() assessment.Challenges
	EvaluateCoding(ctx context.Context, answers []assessment.CodingAnswer) float64
}

// Pusher delivers a stored notification to live dashboards.
type Pusher interface {
	Notify(n notification.Notification)
}

type noopPusher struct{}

func (noopPusher) Notify(notification.Notification) {}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error)         { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error   { return nil }
func (noopCache) Delete(context.Context, string) error                        { return nil }
func (noopCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func orNoopCache(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
