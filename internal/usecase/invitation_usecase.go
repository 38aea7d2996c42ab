package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/mail"
	"hireflow/internal/repository"
	"hireflow/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InviteInput struct {
	Name           string
	Email          string
	ResumeFilename string
	MatchPercent   float64
}

func (in InviteInput) valid() bool {
	return strings.TrimSpace(in.Name) != "" && strings.Contains(in.Email, "@")
}

type BulkInviteResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type InvitationUsecase interface {
	InviteOne(ctx context.Context, in InviteInput) (candidate.Candidate, error)
	InviteMany(ctx context.Context, in []InviteInput) (BulkInviteResult, error)
}

type Invitations struct {
	candidates repository.CandidateRepository
	resumes    repository.ResumeRepository
	cache      Cache
	mailer     mail.Sender
	baseURL    string
	workers    int
	rate       int
	log        *zap.Logger
	now        func() time.Time
}

type InvitationConfig struct {
	PublicBaseURL string
	Workers       int
	RatePerSecond int
}

func NewInvitationUsecase(candidates repository.CandidateRepository, resumes repository.ResumeRepository, c Cache, mailer mail.Sender, cfg InvitationConfig, log *zap.Logger) *Invitations {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Invitations{
		candidates: candidates,
		resumes:    resumes,
		cache:      orNoopCache(c),
		mailer:     mailer,
		baseURL:    strings.TrimRight(cfg.PublicBaseURL, "/"),
		workers:    cfg.Workers,
		rate:       cfg.RatePerSecond,
		log:        log,
		now:        time.Now,
	}
}

// StartTestLink is the candidate-facing first-round URL.
func StartTestLink(baseURL string, id uuid.UUID) string {
	return strings.TrimRight(baseURL, "/") + "/start_test/" + id.String()
}

func SecondRoundLink(baseURL string, id uuid.UUID) string {
	return strings.TrimRight(baseURL, "/") + "/second-round/" + id.String()
}

// jobDescriptionFor resolves the job description a resume was screened
// against, preferring the cache.
func (u *Invitations) jobDescriptionFor(ctx context.Context, filename string) string {
	if filename == "" {
		return ""
	}
	var jd string
	if ok, err := u.cache.GetJSON(ctx, cache.JobDescriptionKey(filename), &jd); err == nil && ok {
		return jd
	}
	r, err := u.resumes.LatestByFilename(ctx, filename)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			u.log.Warn("jd_lookup_failed", zap.String("file", filename), zap.Error(err))
		}
		return ""
	}
	return r.JobDescription
}

func (u *Invitations) InviteOne(ctx context.Context, in InviteInput) (candidate.Candidate, error) {
	if !in.valid() {
		return candidate.Candidate{}, ErrInvalidInput
	}
	return u.invite(ctx, in)
}

func (u *Invitations) invite(ctx context.Context, in InviteInput) (candidate.Candidate, error) {
	now := u.now().UTC()
	c := candidate.Candidate{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.TrimSpace(in.Email),
		MatchPercent:   in.MatchPercent,
		Status:         candidate.StatusTestInvited,
		JobDescription: u.jobDescriptionFor(ctx, in.ResumeFilename),
		ResumeFilename: in.ResumeFilename,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.candidates.Create(ctx, c); err != nil {
		u.log.Error("candidate_create_failed", zap.String("email", c.Email), zap.Error(err))
		return candidate.Candidate{}, ErrInternal
	}

	msg := mail.FirstRoundInvitation(c.Email, c.Name, StartTestLink(u.baseURL, c.ID))
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.log.Error("invite_send_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return c, ErrDeliveryFailed
	}
	u.log.Info("candidate_invited", zap.String("candidate_id", c.ID.String()), zap.Float64("match_percent", c.MatchPercent))
	return c, nil
}

func (u *Invitations) InviteMany(ctx context.Context, in []InviteInput) (BulkInviteResult, error) {
	if len(in) == 0 {
		return BulkInviteResult{}, ErrInvalidInput
	}

	var res BulkInviteResult
	valid := make([]InviteInput, 0, len(in))
	for _, item := range in {
		if !item.valid() {
			res.Skipped++
			continue
		}
		valid = append(valid, item)
	}

	errs := worker.Map(ctx, u.workers, u.rate, len(valid), func(ctx context.Context, i int) error {
		_, err := u.invite(ctx, valid[i])
		return err
	})
	for _, err := range errs {
		if err != nil {
			res.Failed++
			continue
		}
		res.Sent++
	}

	u.log.Info("bulk_invite_completed", zap.Int("sent", res.Sent), zap.Int("skipped", res.Skipped), zap.Int("failed", res.Failed))
	return res, nil
}
