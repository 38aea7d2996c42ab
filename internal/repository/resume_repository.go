package repository

import (
	"context"
	"fmt"

	"hireflow/internal/database"
	"hireflow/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	SaveBatch(ctx context.Context, items []resume.Ranked) error
	ListBatch(ctx context.Context, batchID uuid.UUID) ([]resume.Ranked, error)
	LatestByFilename(ctx context.Context, filename string) (resume.Ranked, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, batch_id, filename, storage_key, match_percent, rank, shortlisted, job_description, created_at`

func (r *PostgresResumeRepository) SaveBatch(ctx context.Context, items []resume.Ranked) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, it := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO resumes (`+resumeColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, it.BatchID, it.Filename, it.StorageKey, it.MatchPercent, it.Rank, it.Shortlisted, it.JobDescription, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert resume %s: %w", it.Filename, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresResumeRepository) ListBatch(ctx context.Context, batchID uuid.UUID) ([]resume.Ranked, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+resumeColumns+`
		 FROM resumes
		 WHERE batch_id = $1
		 ORDER BY rank ASC`,
		batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Ranked, 0)
	for rows.Next() {
		it, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) LatestByFilename(ctx context.Context, filename string) (resume.Ranked, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+resumeColumns+`
		 FROM resumes
		 WHERE filename = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		filename,
	)
	it, err := scanResume(row)
	if err != nil {
		if database.IsNoRows(err) {
			return resume.Ranked{}, ErrNotFound
		}
		return resume.Ranked{}, err
	}
	return it, nil
}

func scanResume(row database.Row) (resume.Ranked, error) {
	var it resume.Ranked
	err := row.Scan(&it.ID, &it.BatchID, &it.Filename, &it.StorageKey, &it.MatchPercent, &it.Rank, &it.Shortlisted, &it.JobDescription, &it.CreatedAt)
	return it, err
}
