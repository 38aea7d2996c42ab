package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/mail"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewUsecase interface {
	ApproveSecondRound(ctx context.Context, candidateID uuid.UUID) error
	ApproveHRRound(ctx context.Context, candidateID uuid.UUID) error
}

// Review moves candidates forward on HR approval. Approvals are accepted from
// any status.
type Review struct {
	candidates repository.CandidateRepository
	rounds     repository.SecondRoundRepository
	gen        AssessmentGenerator
	mailer     mail.Sender
	baseURL    string
	log        *zap.Logger
	now        func() time.Time
}

func NewReviewUsecase(store repository.Store, gen AssessmentGenerator, mailer mail.Sender, publicBaseURL string, log *zap.Logger) *Review {
	if log == nil {
		log = zap.NewNop()
	}
	return &Review{
		candidates: store.Candidates,
		rounds:     store.SecondRounds,
		gen:        gen,
		mailer:     mailer,
		baseURL:    strings.TrimRight(publicBaseURL, "/"),
		log:        log,
		now:        time.Now,
	}
}

func (u *Review) advance(ctx context.Context, id uuid.UUID, status candidate.Status) (candidate.Candidate, error) {
	c, err := u.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return candidate.Candidate{}, ErrNotFound
		}
		u.log.Error("candidate_load_failed", zap.String("candidate_id", id.String()), zap.Error(err))
		return candidate.Candidate{}, ErrInternal
	}
	if err := u.candidates.UpdateStatus(ctx, id, status); err != nil {
		u.log.Error("candidate_status_update_failed", zap.String("candidate_id", id.String()), zap.String("status", string(status)), zap.Error(err))
		return candidate.Candidate{}, ErrInternal
	}
	c.Status = status
	return c, nil
}

func (u *Review) ApproveSecondRound(ctx context.Context, candidateID uuid.UUID) error {
	c, err := u.advance(ctx, candidateID, candidate.StatusSecondRoundInvited)
	if err != nil {
		return err
	}

	ch := u.gen.Challenges(ctx, c.JobDescription)
	err = u.rounds.SaveChallenges(ctx, domain.StoredChallenges{
		ID:          uuid.New(),
		CandidateID: c.ID,
		Challenges:  ch,
		CreatedAt:   u.now().UTC(),
	})
	if err != nil {
		u.log.Error("challenges_save_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return ErrInternal
	}

	msg := mail.SecondRoundInvitation(c.Email, c.Name, SecondRoundLink(u.baseURL, c.ID), mail.SectionCounts{
		Reasoning: len(ch.Reasoning),
		Aptitude:  len(ch.Aptitude),
		Coding:    len(ch.Coding),
	})
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.log.Error("second_round_invite_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return ErrDeliveryFailed
	}
	u.log.Info("second_round_approved", zap.String("candidate_id", c.ID.String()))
	return nil
}

func (u *Review) ApproveHRRound(ctx context.Context, candidateID uuid.UUID) error {
	c, err := u.advance(ctx, candidateID, candidate.StatusHRRoundInvited)
	if err != nil {
		return err
	}
	if err := u.mailer.Send(ctx, mail.HRRoundInvitation(c.Email, c.Name, c.MatchPercent, c.TestScore)); err != nil {
		u.log.Error("hr_round_invite_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return ErrDeliveryFailed
	}
	u.log.Info("hr_round_approved", zap.String("candidate_id", c.ID.String()))
	return nil
}
