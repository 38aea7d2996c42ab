package repository

import (
	"context"
	"time"

	"hireflow/internal/database"
	"hireflow/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	Create(ctx context.Context, c candidate.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	// GetLatestByName returns the most recently created candidate with that name.
	GetLatestByName(ctx context.Context, name string) (candidate.Candidate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status candidate.Status) error
	UpdateTestScore(ctx context.Context, id uuid.UUID, score int, status candidate.Status) error
	UpdateSecondRoundScore(ctx context.Context, id uuid.UUID, pct float64, status candidate.Status) error
	// ListAll returns every candidate by test score descending, oldest first on ties.
	ListAll(ctx context.Context) ([]candidate.Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, name, email, match_percent, test_score, second_round_score, status, job_description, resume_filename, created_at, updated_at`

func (r *PostgresCandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidates (`+candidateColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Name, c.Email, c.MatchPercent, c.TestScore, c.SecondRoundScore, string(c.Status),
		c.JobDescription, c.ResumeFilename, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	return scanCandidateRow(row)
}

func (r *PostgresCandidateRepository) GetLatestByName(ctx context.Context, name string) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates
		 WHERE name = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		name,
	)
	return scanCandidateRow(row)
}

func (r *PostgresCandidateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status candidate.Status) error {
	return r.update(ctx,
		`UPDATE candidates SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now().UTC(),
	)
}

func (r *PostgresCandidateRepository) UpdateTestScore(ctx context.Context, id uuid.UUID, score int, status candidate.Status) error {
	return r.update(ctx,
		`UPDATE candidates SET test_score = $2, status = $3, updated_at = $4 WHERE id = $1`,
		id, score, string(status), time.Now().UTC(),
	)
}

func (r *PostgresCandidateRepository) UpdateSecondRoundScore(ctx context.Context, id uuid.UUID, pct float64, status candidate.Status) error {
	return r.update(ctx,
		`UPDATE candidates SET second_round_score = $2, status = $3, updated_at = $4 WHERE id = $1`,
		id, pct, string(status), time.Now().UTC(),
	)
}

func (r *PostgresCandidateRepository) update(ctx context.Context, q string, args ...any) error {
	n, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) ListAll(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates
		 ORDER BY test_score DESC, created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCandidateRow(row database.Row) (candidate.Candidate, error) {
	c, err := scanCandidate(row)
	if err != nil {
		if database.IsNoRows(err) {
			return candidate.Candidate{}, ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	return c, nil
}

func scanCandidate(row database.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	var status string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.MatchPercent, &c.TestScore, &c.SecondRoundScore, &status,
		&c.JobDescription, &c.ResumeFilename, &c.CreatedAt, &c.UpdatedAt)
	c.Status = candidate.Status(status)
	return c, err
}
