package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hireflow/internal/assessment"
	domain "hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/notification"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	issuedQuestionsTTL = 24 * time.Hour
	submitLockTTL      = 30 * time.Second
)

type TestSession struct {
	Candidate candidate.Candidate `json:"-"`
	Questions []domain.Question   `json:"questions"`
	// ServerGraded is false when the issued set could not be kept, in which
	// case Submit grades against the answer key sent back by the client.
	ServerGraded bool `json:"-"`
}

// Answer is one first-round response. CorrectAnswer is only trusted when the
// server has no issued set for the candidate.
type Answer struct {
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type SubmitTestInput struct {
	CandidateID    *uuid.UUID
	CandidateName  string
	JobDescription string
	Answers        []Answer
}

type SubmitTestResult struct {
	Score          int `json:"score"`
	MaxScore       int `json:"total"`
	Correct        int `json:"correct"`
	TotalQuestions int `json:"total_questions"`
}

type FirstRoundUsecase interface {
	Start(ctx context.Context, candidateID uuid.UUID) (TestSession, error)
	Questions(ctx context.Context, jd string) []domain.Question
	Submit(ctx context.Context, in SubmitTestInput) (SubmitTestResult, error)
}

type FirstRound struct {
	candidates repository.CandidateRepository
	results    repository.TestResultRepository
	gen        AssessmentGenerator
	cache      Cache
	notify     notifier
	jdLimit    int
	log        *zap.Logger
	now        func() time.Time
}

func NewFirstRoundUsecase(store repository.Store, gen AssessmentGenerator, c Cache, push Pusher, jdLimit int, log *zap.Logger) *FirstRound {
	if log == nil {
		log = zap.NewNop()
	}
	if jdLimit <= 0 {
		jdLimit = 5000
	}
	return &FirstRound{
		candidates: store.Candidates,
		results:    store.TestResults,
		gen:        gen,
		cache:      orNoopCache(c),
		notify:     newNotifier(store.Notifications, push, log),
		jdLimit:    jdLimit,
		log:        log,
		now:        time.Now,
	}
}

func (u *FirstRound) Start(ctx context.Context, candidateID uuid.UUID) (TestSession, error) {
	c, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TestSession{}, ErrNotFound
		}
		u.log.Error("candidate_load_failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return TestSession{}, ErrInternal
	}

	questions := u.gen.Questions(ctx, c.JobDescription)
	_, noop := u.cache.(noopCache)
	graded := !noop
	if err := u.cache.SetJSON(ctx, cache.IssuedQuestionsKey(c.ID), questions, issuedQuestionsTTL); err != nil {
		u.log.Warn("issued_questions_cache_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		graded = false
	}
	return TestSession{Candidate: c, Questions: questions, ServerGraded: graded}, nil
}

func (u *FirstRound) Questions(ctx context.Context, jd string) []domain.Question {
	return u.gen.Questions(ctx, jd)
}

// gradeAnswers counts correct answers. With an issued set every issued
// question is graded at most once, matched by question text first and
// position second, and the total is the size of that set.
func gradeAnswers(issued []domain.Question, answers []Answer) (correct, total int) {
	if len(issued) == 0 {
		for _, a := range answers {
			if assessment.EvaluateAnswer(a.Answer, a.CorrectAnswer) {
				correct++
			}
		}
		return correct, len(answers)
	}

	byText := make(map[string]int, len(issued))
	for i, q := range issued {
		byText[strings.TrimSpace(q.Question)] = i
	}
	graded := make([]bool, len(issued))
	for i, a := range answers {
		idx, ok := byText[strings.TrimSpace(a.Question)]
		if !ok {
			if i >= len(issued) {
				continue
			}
			idx = i
		}
		if graded[idx] {
			continue
		}
		graded[idx] = true
		if assessment.EvaluateAnswer(a.Answer, issued[idx].CorrectAnswer) {
			correct++
		}
	}
	return correct, len(issued)
}

func (u *FirstRound) loadIssued(ctx context.Context, id *uuid.UUID) []domain.Question {
	if id == nil {
		return nil
	}
	var issued []domain.Question
	ok, err := u.cache.GetJSON(ctx, cache.IssuedQuestionsKey(*id), &issued)
	if err != nil || !ok {
		return nil
	}
	return issued
}

func (u *FirstRound) findCandidate(ctx context.Context, in SubmitTestInput) (*candidate.Candidate, error) {
	if in.CandidateID != nil {
		c, err := u.candidates.GetByID(ctx, *in.CandidateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &c, nil
	}
	c, err := u.candidates.GetLatestByName(ctx, strings.TrimSpace(in.CandidateName))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (u *FirstRound) Submit(ctx context.Context, in SubmitTestInput) (SubmitTestResult, error) {
	if in.CandidateID == nil && strings.TrimSpace(in.CandidateName) == "" {
		return SubmitTestResult{}, ErrInvalidInput
	}

	if in.CandidateID != nil {
		lock := cache.SubmitLockKey(*in.CandidateID)
		acquired, err := u.cache.SetIfNotExists(ctx, lock, "1", submitLockTTL)
		if err == nil && !acquired {
			return SubmitTestResult{}, ErrDuplicateSubmission
		}
		defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lock) }()
	}

	c, err := u.findCandidate(ctx, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return SubmitTestResult{}, err
		}
		u.log.Error("candidate_load_failed", zap.Error(err))
		return SubmitTestResult{}, ErrInternal
	}

	points := u.gen.PointsPerQuestion()
	correct, total := gradeAnswers(u.loadIssued(ctx, in.CandidateID), in.Answers)
	res := SubmitTestResult{
		Score:          correct * points,
		MaxScore:       total * points,
		Correct:        correct,
		TotalQuestions: total,
	}

	name := strings.TrimSpace(in.CandidateName)
	jd := in.JobDescription
	var candidateID *uuid.UUID
	if c != nil {
		name = c.Name
		id := c.ID
		candidateID = &id
		if strings.TrimSpace(jd) == "" {
			jd = c.JobDescription
		}
	}

	tr := domain.TestResult{
		ID:             uuid.New(),
		CandidateID:    candidateID,
		CandidateName:  name,
		JobDescription: truncateRunes(jd, u.jdLimit),
		Score:          res.Score,
		TotalQuestions: res.TotalQuestions,
		Status:         domain.TestStatusCompleted,
		CompletedAt:    u.now().UTC(),
	}
	if err := u.results.Create(ctx, tr); err != nil {
		u.log.Error("test_result_save_failed", zap.String("candidate", name), zap.Error(err))
		return SubmitTestResult{}, ErrInternal
	}

	if c == nil {
		u.log.Info("test_submitted", zap.String("candidate", name), zap.Int("score", res.Score), zap.Bool("matched_candidate", false))
		return res, nil
	}

	if err := u.candidates.UpdateTestScore(ctx, c.ID, res.Score, candidate.StatusTestCompleted); err != nil {
		u.log.Error("candidate_score_update_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return SubmitTestResult{}, ErrInternal
	}

	u.notify.emit(ctx, notification.Notification{
		CandidateID:    candidateID,
		CandidateName:  c.Name,
		CandidateEmail: c.Email,
		TestScore:      float64(res.Score),
		MatchPercent:   c.MatchPercent,
		Status:         string(candidate.StatusPending),
	})
	u.log.Info("test_submitted", zap.String("candidate_id", c.ID.String()), zap.Int("score", res.Score))
	return res, nil
}
