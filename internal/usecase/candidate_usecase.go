package usecase

import (
	"context"
	"errors"
	"io"

	domain "hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/repository"
	"hireflow/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CandidateDetails struct {
	Candidate  candidate.Candidate
	TestResult *domain.TestResult
}

type ResumeDocument struct {
	Filename string
	Body     io.ReadCloser
}

type CandidateUsecase interface {
	Details(ctx context.Context, id uuid.UUID) (CandidateDetails, error)
	Resume(ctx context.Context, id uuid.UUID) (ResumeDocument, error)
}

type Candidates struct {
	candidates repository.CandidateRepository
	results    repository.TestResultRepository
	resumes    repository.ResumeRepository
	files      storage.Store
	log        *zap.Logger
}

func NewCandidateUsecase(store repository.Store, files storage.Store, log *zap.Logger) *Candidates {
	if log == nil {
		log = zap.NewNop()
	}
	return &Candidates{
		candidates: store.Candidates,
		results:    store.TestResults,
		resumes:    store.Resumes,
		files:      files,
		log:        log,
	}
}

func (u *Candidates) get(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
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

func (u *Candidates) Details(ctx context.Context, id uuid.UUID) (CandidateDetails, error) {
	c, err := u.get(ctx, id)
	if err != nil {
		return CandidateDetails{}, err
	}

	tr, err := u.results.LatestByCandidate(ctx, c.ID)
	if errors.Is(err, repository.ErrNotFound) {
		tr, err = u.results.LatestByName(ctx, c.Name)
	}
	switch {
	case err == nil:
		return CandidateDetails{Candidate: c, TestResult: &tr}, nil
	case errors.Is(err, repository.ErrNotFound):
		return CandidateDetails{Candidate: c}, nil
	default:
		u.log.Error("test_result_load_failed", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		return CandidateDetails{}, ErrInternal
	}
}

func (u *Candidates) Resume(ctx context.Context, id uuid.UUID) (ResumeDocument, error) {
	c, err := u.get(ctx, id)
	if err != nil {
		return ResumeDocument{}, err
	}
	if c.ResumeFilename == "" {
		return ResumeDocument{}, ErrNotFound
	}
	r, err := u.resumes.LatestByFilename(ctx, c.ResumeFilename)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ResumeDocument{}, ErrNotFound
		}
		u.log.Error("resume_lookup_failed", zap.String("file", c.ResumeFilename), zap.Error(err))
		return ResumeDocument{}, ErrInternal
	}
	if r.StorageKey == "" {
		return ResumeDocument{}, ErrNotFound
	}
	body, err := u.files.Open(ctx, r.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ResumeDocument{}, ErrNotFound
		}
		u.log.Error("resume_open_failed", zap.String("key", r.StorageKey), zap.Error(err))
		return ResumeDocument{}, ErrInternal
	}
	return ResumeDocument{Filename: r.Filename, Body: body}, nil
}
