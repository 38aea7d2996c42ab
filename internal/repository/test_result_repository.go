package repository

import (
	"context"

	"hireflow/internal/database"
	"hireflow/internal/domain/assessment"

	"github.com/google/uuid"
)

type TestResultRepository interface {
	Create(ctx context.Context, r assessment.TestResult) error
	LatestByCandidate(ctx context.Context, candidateID uuid.UUID) (assessment.TestResult, error)
	LatestByName(ctx context.Context, name string) (assessment.TestResult, error)
}

type PostgresTestResultRepository struct {
	db database.DB
}

func NewPostgresTestResultRepository(db database.DB) *PostgresTestResultRepository {
	return &PostgresTestResultRepository{db: db}
}

const testResultColumns = `id, candidate_id, candidate_name, job_description, score, total_questions, status, completed_at`

func (r *PostgresTestResultRepository) Create(ctx context.Context, t assessment.TestResult) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO test_results (`+testResultColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.CandidateID, t.CandidateName, t.JobDescription, t.Score, t.TotalQuestions, t.Status, t.CompletedAt,
	)
	return err
}

func (r *PostgresTestResultRepository) LatestByCandidate(ctx context.Context, candidateID uuid.UUID) (assessment.TestResult, error) {
	return r.latest(ctx, `candidate_id = $1`, candidateID)
}

func (r *PostgresTestResultRepository) LatestByName(ctx context.Context, name string) (assessment.TestResult, error) {
	return r.latest(ctx, `candidate_name = $1`, name)
}

func (r *PostgresTestResultRepository) latest(ctx context.Context, where string, arg any) (assessment.TestResult, error) {
	var t assessment.TestResult
	err := r.db.QueryRow(ctx,
		`SELECT `+testResultColumns+`
		 FROM test_results
		 WHERE `+where+`
		 ORDER BY completed_at DESC
		 LIMIT 1`,
		arg,
	).Scan(&t.ID, &t.CandidateID, &t.CandidateName, &t.JobDescription, &t.Score, &t.TotalQuestions, &t.Status, &t.CompletedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return assessment.TestResult{}, ErrNotFound
		}
		return assessment.TestResult{}, err
	}
	return t, nil
}
