package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hireflow/internal/domain/resume"
	"hireflow/internal/export"
	"hireflow/internal/extract"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/repository"
	"hireflow/internal/search"
	"hireflow/internal/storage"
	"hireflow/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// jobDescriptionTTL bounds how long an invitation can still find the job
// description a resume was screened against.
const jobDescriptionTTL = 30 * 24 * time.Hour

type ResumeFile struct {
	Filename string
	Data     []byte
}

type ScreenInput struct {
	JobDescription string
	Files          []ResumeFile
}

type ScreeningResult struct {
	BatchID        uuid.UUID       `json:"batch_id"`
	JobDescription string          `json:"job_description"`
	Resumes        []resume.Ranked `json:"resumes"`
	Skipped        []string        `json:"skipped"`
}

type ScreeningUsecase interface {
	Screen(ctx context.Context, in ScreenInput) (ScreeningResult, error)
	Batch(ctx context.Context, batchID uuid.UUID) (ScreeningResult, error)
	Export(ctx context.Context, batchID uuid.UUID) ([]byte, error)
}

type Screening struct {
	resumes repository.ResumeRepository
	files   storage.Store
	cache   Cache
	top     int
	workers int
	log     *zap.Logger
	now     func() time.Time
}

func NewScreeningUsecase(resumes repository.ResumeRepository, files storage.Store, c Cache, top, workers int, log *zap.Logger) *Screening {
	if top <= 0 {
		top = 3
	}
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Screening{
		resumes: resumes,
		files:   files,
		cache:   orNoopCache(c),
		top:     top,
		workers: workers,
		log:     log,
		now:     time.Now,
	}
}

type extracted struct {
	key  string
	text string
}

func (u *Screening) Screen(ctx context.Context, in ScreenInput) (ScreeningResult, error) {
	jd := strings.TrimSpace(in.JobDescription)
	if jd == "" {
		return ScreeningResult{}, ErrInvalidInput
	}

	batchID := uuid.New()
	out := make([]extracted, len(in.Files))
	errs := worker.Map(ctx, u.workers, 0, len(in.Files), func(ctx context.Context, i int) error {
		f := in.Files[i]
		if !extract.Allowed(f.Filename) {
			return extract.ErrUnsupported
		}
		text, err := extract.Text(f.Filename, f.Data)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return extract.ErrEmpty
		}
		key := storage.ResumeKey(batchID, i, f.Filename)
		if err := u.files.Put(ctx, key, bytes.NewReader(f.Data), int64(len(f.Data)), http.DetectContentType(f.Data)); err != nil {
			return fmt.Errorf("store %s: %w", f.Filename, err)
		}
		out[i] = extracted{key: key, text: text}
		return nil
	})

	res := ScreeningResult{BatchID: batchID, JobDescription: jd, Skipped: []string{}}
	docs := make([]search.Document, 0, len(in.Files))
	for i, err := range errs {
		name := in.Files[i].Filename
		if err != nil {
			if !errors.Is(err, extract.ErrUnsupported) && !errors.Is(err, extract.ErrEmpty) {
				u.log.Warn("resume_skipped", zap.String("file", name), zap.Error(err))
			}
			res.Skipped = append(res.Skipped, name)
			continue
		}
		docs = append(docs, search.Document{OriginalIndex: i, Name: name, Text: out[i].text})
	}
	if len(docs) == 0 {
		return ScreeningResult{}, ErrNoResumes
	}

	now := u.now().UTC()
	ranked := search.RankDocuments(jd, docs)
	res.Resumes = make([]resume.Ranked, 0, len(ranked))
	for _, r := range ranked {
		res.Resumes = append(res.Resumes, resume.Ranked{
			ID:             uuid.New(),
			BatchID:        batchID,
			Filename:       r.Name,
			StorageKey:     out[r.OriginalIndex].key,
			MatchPercent:   r.MatchPercent,
			Rank:           r.Rank,
			JobDescription: jd,
			Shortlisted:    r.Rank <= u.top,
			CreatedAt:      now,
		})
	}

	if err := u.resumes.SaveBatch(ctx, res.Resumes); err != nil {
		u.log.Error("resume_batch_save_failed", zap.String("batch_id", batchID.String()), zap.Error(err))
		return ScreeningResult{}, ErrInternal
	}

	for _, r := range res.Resumes {
		if err := u.cache.SetJSON(ctx, cache.JobDescriptionKey(r.Filename), jd, jobDescriptionTTL); err != nil {
			u.log.Debug("jd_cache_set_failed", zap.String("file", r.Filename), zap.Error(err))
		}
	}

	u.log.Info("screening_completed",
		zap.String("batch_id", batchID.String()),
		zap.Int("ranked", len(res.Resumes)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

func (u *Screening) Batch(ctx context.Context, batchID uuid.UUID) (ScreeningResult, error) {
	items, err := u.resumes.ListBatch(ctx, batchID)
	if err != nil {
		u.log.Error("resume_batch_load_failed", zap.String("batch_id", batchID.String()), zap.Error(err))
		return ScreeningResult{}, ErrInternal
	}
	if len(items) == 0 {
		return ScreeningResult{}, ErrNotFound
	}
	return ScreeningResult{
		BatchID:        batchID,
		JobDescription: items[0].JobDescription,
		Resumes:        items,
		Skipped:        []string{},
	}, nil
}

func (u *Screening) Export(ctx context.Context, batchID uuid.UUID) ([]byte, error) {
	res, err := u.Batch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	b, err := export.ScreeningBytes(res.JobDescription, res.Resumes, u.now())
	if err != nil {
		u.log.Error("screening_export_failed", zap.String("batch_id", batchID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return b, nil
}
