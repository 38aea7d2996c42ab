// Package gormrepo implements the repository interfaces on MySQL through gorm.
package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"hireflow/internal/domain/admin"
	"hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/notification"
	"hireflow/internal/domain/resume"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("gorm automigrate: %w", err)
	}
	return nil
}

func NewStore(db *gorm.DB) repository.Store {
	return repository.Store{
		Admins:        &AdminRepository{db: db},
		Resumes:       &ResumeRepository{db: db},
		Candidates:    &CandidateRepository{db: db},
		TestResults:   &TestResultRepository{db: db},
		Notifications: &NotificationRepository{db: db},
		SecondRounds:  &SecondRoundRepository{db: db},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

type AdminRepository struct{ db *gorm.DB }

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&AdminUser{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *AdminRepository) Create(ctx context.Context, u admin.User) error {
	return r.db.WithContext(ctx).Create(&AdminUser{
		ID:           u.ID.String(),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}).Error
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (admin.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (admin.User, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *AdminRepository) first(ctx context.Context, where string, arg any) (admin.User, error) {
	var m AdminUser
	if err := r.db.WithContext(ctx).Where(where, arg).First(&m).Error; err != nil {
		return admin.User{}, notFound(err)
	}
	return admin.User{ID: parseID(m.ID), Username: m.Username, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}, nil
}

type ResumeRepository struct{ db *gorm.DB }

func (r *ResumeRepository) SaveBatch(ctx context.Context, items []resume.Ranked) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]Resume, 0, len(items))
	for _, it := range items {
		rows = append(rows, resumeModel(it))
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	})
}

func (r *ResumeRepository) ListBatch(ctx context.Context, batchID uuid.UUID) ([]resume.Ranked, error) {
	var rows []Resume
	if err := r.db.WithContext(ctx).Where("batch_id = ?", batchID.String()).Order("`rank` ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]resume.Ranked, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.domain())
	}
	return out, nil
}

func (r *ResumeRepository) LatestByFilename(ctx context.Context, filename string) (resume.Ranked, error) {
	var m Resume
	if err := r.db.WithContext(ctx).Where("filename = ?", filename).Order("created_at DESC").First(&m).Error; err != nil {
		return resume.Ranked{}, notFound(err)
	}
	return m.domain(), nil
}

type CandidateRepository struct{ db *gorm.DB }

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	m := candidateModel(c)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	var m Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m).Error; err != nil {
		return candidate.Candidate{}, notFound(err)
	}
	return m.domain(), nil
}

func (r *CandidateRepository) GetLatestByName(ctx context.Context, name string) (candidate.Candidate, error) {
	var m Candidate
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at DESC").First(&m).Error; err != nil {
		return candidate.Candidate{}, notFound(err)
	}
	return m.domain(), nil
}

func (r *CandidateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status candidate.Status) error {
	return r.updates(ctx, id, map[string]any{"status": string(status)})
}

func (r *CandidateRepository) UpdateTestScore(ctx context.Context, id uuid.UUID, score int, status candidate.Status) error {
	return r.updates(ctx, id, map[string]any{"test_score": score, "status": string(status)})
}

func (r *CandidateRepository) UpdateSecondRoundScore(ctx context.Context, id uuid.UUID, pct float64, status candidate.Status) error {
	return r.updates(ctx, id, map[string]any{"second_round_score": pct, "status": string(status)})
}

func (r *CandidateRepository) updates(ctx context.Context, id uuid.UUID, values map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Candidate{}).Where("id = ?", id.String()).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) ListAll(ctx context.Context) ([]candidate.Candidate, error) {
	var rows []Candidate
	if err := r.db.WithContext(ctx).Order("test_score DESC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]candidate.Candidate, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.domain())
	}
	return out, nil
}

type TestResultRepository struct{ db *gorm.DB }

func (r *TestResultRepository) Create(ctx context.Context, t assessment.TestResult) error {
	m := testResultModel(t)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *TestResultRepository) LatestByCandidate(ctx context.Context, candidateID uuid.UUID) (assessment.TestResult, error) {
	return r.latest(ctx, "candidate_id = ?", candidateID.String())
}

func (r *TestResultRepository) LatestByName(ctx context.Context, name string) (assessment.TestResult, error) {
	return r.latest(ctx, "candidate_name = ?", name)
}

func (r *TestResultRepository) latest(ctx context.Context, where string, arg any) (assessment.TestResult, error) {
	var m TestResult
	if err := r.db.WithContext(ctx).Where(where, arg).Order("completed_at DESC").First(&m).Error; err != nil {
		return assessment.TestResult{}, notFound(err)
	}
	return m.domain(), nil
}

type NotificationRepository struct{ db *gorm.DB }

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	m := notificationModel(n)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *NotificationRepository) ListRecent(ctx context.Context, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []HRNotification
	if err := r.db.WithContext(ctx).Where("candidate_id IS NOT NULL").Order("sent_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]notification.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.domain())
	}
	return out, nil
}

func (r *NotificationRepository) MarkSeen(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&HRNotification{}).Where("id = ?", id.String()).Update("seen", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&HRNotification{}).Where("id = ?", id.String()).Count(&n).Error; err != nil {
			return err
		}
		// MySQL reports zero affected rows when the value was already set.
		if n == 0 {
			return repository.ErrNotFound
		}
	}
	return nil
}

type SecondRoundRepository struct{ db *gorm.DB }

func (r *SecondRoundRepository) SaveChallenges(ctx context.Context, c assessment.StoredChallenges) error {
	m, err := challengeModel(c)
	if err != nil {
		return fmt.Errorf("encode challenges: %w", err)
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *SecondRoundRepository) LatestChallenges(ctx context.Context, candidateID uuid.UUID) (assessment.StoredChallenges, error) {
	var m SecondRoundChallenge
	if err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID.String()).Order("created_at DESC").First(&m).Error; err != nil {
		return assessment.StoredChallenges{}, notFound(err)
	}
	out, err := m.domain()
	if err != nil {
		return assessment.StoredChallenges{}, fmt.Errorf("decode challenges: %w", err)
	}
	return out, nil
}

func (r *SecondRoundRepository) SaveResult(ctx context.Context, res assessment.SecondRoundResult) error {
	m, err := secondRoundResultModel(res)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *SecondRoundRepository) LatestResult(ctx context.Context, candidateID uuid.UUID) (assessment.SecondRoundResult, error) {
	var m SecondRoundResult
	if err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID.String()).Order("submitted_at DESC").First(&m).Error; err != nil {
		return assessment.SecondRoundResult{}, notFound(err)
	}
	out, err := m.domain()
	if err != nil {
		return assessment.SecondRoundResult{}, fmt.Errorf("decode answers: %w", err)
	}
	return out, nil
}
