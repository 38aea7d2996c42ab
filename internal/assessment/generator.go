// Package assessment builds first-round questions and second-round challenges
// from a job description, with a static fallback whenever the model fails.
package assessment

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	"hireflow/internal/config"
	domain "hireflow/internal/domain/assessment"

	"go.uber.org/zap"
)

const (
	minJobDescriptionLen = 10
	neutralCodingRating  = 0.5
)

// ContentGenerator is the text model behind the generator.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	ai     ContentGenerator
	total  int
	points int
	pools  Pools
	log    *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Generator)

func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

func WithPools(p Pools) Option {
	return func(g *Generator) { g.pools = p }
}

// NewGenerator builds a generator. A nil ai always serves the fallback pools.
func NewGenerator(ai ContentGenerator, cfg config.AssessmentConfig, log *zap.Logger, opts ...Option) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Generator{
		ai:     ai,
		total:  cfg.TotalQuestions,
		points: cfg.PointsPerQuestion,
		log:    log,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	if g.total <= 0 {
		g.total = 10
	}
	if g.points <= 0 {
		g.points = 10
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.pools.Questions == nil {
		g.pools = DefaultPools()
	}
	return g
}

func (g *Generator) TotalQuestions() int    { return g.total }
func (g *Generator) PointsPerQuestion() int { return g.points }

// Questions returns exactly TotalQuestions items when the model delivers that
// many valid ones, otherwise a shuffled slice of the fallback pool.
func (g *Generator) Questions(ctx context.Context, jd string) []domain.Question {
	if len(strings.TrimSpace(jd)) < minJobDescriptionLen || g.ai == nil {
		return g.FallbackQuestions()
	}

	reply, err := g.ai.GenerateContent(ctx, questionsPrompt(jd, g.total, g.points))
	if err != nil {
		g.log.Warn("questions_generation_failed", zap.Error(err))
		return g.FallbackQuestions()
	}

	valid := parseQuestions(reply)
	if len(valid) < g.total {
		g.log.Warn("questions_reply_rejected", zap.Int("valid", len(valid)), zap.Int("want", g.total))
		return g.FallbackQuestions()
	}

	out := valid[:g.total]
	for i := range out {
		out[i].Points = g.points
	}
	return out
}

func (g *Generator) FallbackQuestions() []domain.Question {
	pool := append([]domain.Question(nil), g.pools.Questions...)
	g.mu.Lock()
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	g.mu.Unlock()

	n := min(g.total, len(pool))
	out := pool[:n]
	for i := range out {
		out[i].Points = g.points
	}
	return out
}

// Challenges returns the second-round set for jd.
func (g *Generator) Challenges(ctx context.Context, jd string) domain.Challenges {
	if g.ai == nil {
		return g.FallbackChallenges()
	}

	g.mu.Lock()
	topic := secondRoundTopics[g.rng.IntN(len(secondRoundTopics))]
	seed := g.rng.IntN(1000) + 1
	g.mu.Unlock()

	reply, err := g.ai.GenerateContent(ctx, challengesPrompt(jd, topic, seed))
	if err != nil {
		g.log.Warn("challenges_generation_failed", zap.Error(err))
		return g.FallbackChallenges()
	}

	c, ok := parseChallenges(reply)
	if !ok {
		g.log.Warn("challenges_reply_rejected", zap.String("topic", topic))
		return g.FallbackChallenges()
	}
	return c
}

func (g *Generator) FallbackChallenges() domain.Challenges {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.Challenges{
		Reasoning: sample(g.rng, g.pools.Reasoning, fallbackReasoning),
		Aptitude:  sample(g.rng, g.pools.Aptitude, fallbackAptitude),
		Coding:    sample(g.rng, g.pools.Coding, fallbackCoding),
	}
}

func sample[T any](r *rand.Rand, pool []T, n int) []T {
	idx := r.Perm(len(pool))
	n = min(n, len(pool))
	out := make([]T, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}

// EvaluateCoding sums a 0..1 model rating per non-empty answer. Replies that do
// not parse as a rating count 0.5. When the model fails outright every
// non-empty answer counts 0.5.
func (g *Generator) EvaluateCoding(ctx context.Context, answers []domain.CodingAnswer) float64 {
	nonEmpty := make([]domain.CodingAnswer, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a.Answer) != "" {
			nonEmpty = append(nonEmpty, a)
		}
	}
	if len(nonEmpty) == 0 {
		return 0
	}
	if g.ai == nil {
		return neutralCodingRating * float64(len(nonEmpty))
	}

	var total float64
	for _, a := range nonEmpty {
		reply, err := g.ai.GenerateContent(ctx, codingPrompt(a.Question, strings.TrimSpace(a.Answer)))
		if err != nil {
			g.log.Warn("coding_evaluation_failed", zap.Error(err))
			return neutralCodingRating * float64(len(nonEmpty))
		}
		if v, ok := parseRating(reply); ok {
			total += v
			continue
		}
		total += neutralCodingRating
	}
	return total
}

// EvaluateAnswer compares answers ignoring case and surrounding whitespace.
func EvaluateAnswer(user, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(user), strings.TrimSpace(correct))
}
