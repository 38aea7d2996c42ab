package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"hireflow/internal/assessment"
	domain "hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/notification"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SecondRoundSession struct {
	Candidate  candidate.Candidate
	Challenges domain.Challenges
	// Stored is false when no set was issued and the fallback pools were used.
	Stored bool
}

type SecondRoundScore struct {
	ReasoningScore int     `json:"reasoning_score"`
	AptitudeScore  int     `json:"aptitude_score"`
	CodingScore    float64 `json:"coding_score"`
	TotalScore     float64 `json:"total_score"`
	MaxScore       int     `json:"max_score"`
	Percentage     float64 `json:"percentage"`
}

type SecondRoundUsecase interface {
	Start(ctx context.Context, candidateID uuid.UUID) (SecondRoundSession, error)
	Submit(ctx context.Context, candidateID uuid.UUID, answers domain.SecondRoundAnswers) (SecondRoundScore, error)
	Result(ctx context.Context, candidateID uuid.UUID) (SecondRoundScore, error)
}

type SecondRound struct {
	candidates repository.CandidateRepository
	rounds     repository.SecondRoundRepository
	gen        AssessmentGenerator
	notify     notifier
	log        *zap.Logger
	now        func() time.Time
}

func NewSecondRoundUsecase(store repository.Store, gen AssessmentGenerator, push Pusher, log *zap.Logger) *SecondRound {
	if log == nil {
		log = zap.NewNop()
	}
	return &SecondRound{
		candidates: store.Candidates,
		rounds:     store.SecondRounds,
		gen:        gen,
		notify:     newNotifier(store.Notifications, push, log),
		log:        log,
		now:        time.Now,
	}
}

func (u *SecondRound) loadCandidate(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	c, err := u.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return candidate.Candidate{}, ErrNotFound
		}
		u.log.Error("candidate_load_failed", zap.String("candidate_id", id.String()), zap.Error(err))
		return candidate.Candidate{}, ErrInternal
	}
	return c, nil
}

// storedChallenges returns the latest issued set, or ok=false when none exists.
func (u *SecondRound) storedChallenges(ctx context.Context, id uuid.UUID) (domain.Challenges, bool, error) {
	sc, err := u.rounds.LatestChallenges(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Challenges{}, false, nil
		}
		return domain.Challenges{}, false, err
	}
	return sc.Challenges, true, nil
}

func (u *SecondRound) Start(ctx context.Context, candidateID uuid.UUID) (SecondRoundSession, error) {
	c, err := u.loadCandidate(ctx, candidateID)
	if err != nil {
		return SecondRoundSession{}, err
	}
	ch, ok, err := u.storedChallenges(ctx, candidateID)
	if err != nil {
		u.log.Error("challenges_load_failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return SecondRoundSession{}, ErrInternal
	}
	if !ok {
		ch = u.gen.FallbackChallenges()
	}
	return SecondRoundSession{Candidate: c, Challenges: ch, Stored: ok}, nil
}

// gradeChoices counts correct answers, capped at max. With no issued questions
// the submission's own Correct flags are counted.
func gradeChoices(issued []domain.Question, stored bool, answers []domain.ChoiceAnswer, max int) int {
	byText := make(map[string]string, len(issued))
	for _, q := range issued {
		byText[strings.TrimSpace(q.Question)] = q.CorrectAnswer
	}

	n := 0
	for i, a := range answers {
		if n >= max {
			break
		}
		if !stored {
			if a.Correct {
				n++
			}
			continue
		}
		key, ok := byText[strings.TrimSpace(a.Question)]
		if !ok && i < len(issued) {
			key, ok = issued[i].CorrectAnswer, true
		}
		if ok && assessment.EvaluateAnswer(a.Answer, key) {
			n++
		}
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (u *SecondRound) Submit(ctx context.Context, candidateID uuid.UUID, answers domain.SecondRoundAnswers) (SecondRoundScore, error) {
	c, err := u.loadCandidate(ctx, candidateID)
	if err != nil {
		return SecondRoundScore{}, err
	}
	ch, stored, err := u.storedChallenges(ctx, candidateID)
	if err != nil {
		u.log.Error("challenges_load_failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return SecondRoundScore{}, ErrInternal
	}

	coding := answers.Coding
	if len(coding) > domain.CodingMax {
		coding = coding[:domain.CodingMax]
	}

	score := SecondRoundScore{
		ReasoningScore: gradeChoices(ch.Reasoning, stored, answers.Reasoning, domain.ReasoningMax),
		AptitudeScore:  gradeChoices(ch.Aptitude, stored, answers.Aptitude, domain.AptitudeMax),
		CodingScore:    u.gen.EvaluateCoding(ctx, coding),
		MaxScore:       domain.SecondRoundMax,
	}
	score.TotalScore = float64(score.ReasoningScore+score.AptitudeScore) + score.CodingScore
	pct := domain.Percentage(score.TotalScore)
	score.Percentage = round1(pct)

	res := domain.SecondRoundResult{
		ID:             uuid.New(),
		CandidateID:    c.ID,
		ReasoningScore: score.ReasoningScore,
		AptitudeScore:  score.AptitudeScore,
		CodingScore:    score.CodingScore,
		TotalScore:     score.TotalScore,
		Percentage:     pct,
		Answers:        answers,
		SubmittedAt:    u.now().UTC(),
	}
	if err := u.rounds.SaveResult(ctx, res); err != nil {
		u.log.Error("second_round_save_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return SecondRoundScore{}, ErrInternal
	}

	if err := u.candidates.UpdateSecondRoundScore(ctx, c.ID, pct, candidate.StatusSecondRoundCompleted); err != nil {
		u.log.Error("candidate_score_update_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return SecondRoundScore{}, ErrInternal
	}

	combined := candidate.CombinedScore(c.TestScore, pct)
	id := c.ID
	u.notify.emit(ctx, notification.Notification{
		CandidateID:    &id,
		CandidateName:  c.Name,
		CandidateEmail: c.Email,
		TestScore:      pct,
		MatchPercent:   c.MatchPercent,
		CombinedScore:  &combined,
		Status:         string(candidate.StatusSecondRoundCompleted),
	})

	u.log.Info("second_round_submitted",
		zap.String("candidate_id", c.ID.String()),
		zap.Float64("total", score.TotalScore),
		zap.Float64("percentage", score.Percentage),
	)
	return score, nil
}

func (u *SecondRound) Result(ctx context.Context, candidateID uuid.UUID) (SecondRoundScore, error) {
	res, err := u.rounds.LatestResult(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SecondRoundScore{MaxScore: domain.SecondRoundMax}, nil
		}
		u.log.Error("second_round_load_failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return SecondRoundScore{}, ErrInternal
	}
	return SecondRoundScore{
		ReasoningScore: res.ReasoningScore,
		AptitudeScore:  res.AptitudeScore,
		CodingScore:    res.CodingScore,
		TotalScore:     res.TotalScore,
		MaxScore:       domain.SecondRoundMax,
		Percentage:     round1(res.Percentage),
	}, nil
}
