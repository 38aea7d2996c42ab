package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hireflow/internal/database"
	"hireflow/internal/domain/assessment"

	"github.com/google/uuid"
)

type SecondRoundRepository interface {
	SaveChallenges(ctx context.Context, c assessment.StoredChallenges) error
	LatestChallenges(ctx context.Context, candidateID uuid.UUID) (assessment.StoredChallenges, error)
	SaveResult(ctx context.Context, r assessment.SecondRoundResult) error
	LatestResult(ctx context.Context, candidateID uuid.UUID) (assessment.SecondRoundResult, error)
}

type PostgresSecondRoundRepository struct {
	db database.DB
}

func NewPostgresSecondRoundRepository(db database.DB) *PostgresSecondRoundRepository {
	return &PostgresSecondRoundRepository{db: db}
}

func (r *PostgresSecondRoundRepository) SaveChallenges(ctx context.Context, c assessment.StoredChallenges) error {
	b, err := json.Marshal(c.Challenges)
	if err != nil {
		return fmt.Errorf("encode challenges: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO second_round_challenges (id, candidate_id, challenges, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.CandidateID, b, c.CreatedAt,
	)
	return err
}

func (r *PostgresSecondRoundRepository) LatestChallenges(ctx context.Context, candidateID uuid.UUID) (assessment.StoredChallenges, error) {
	var c assessment.StoredChallenges
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, candidate_id, challenges, created_at
		 FROM second_round_challenges
		 WHERE candidate_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		candidateID,
	).Scan(&c.ID, &c.CandidateID, &raw, &c.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return assessment.StoredChallenges{}, ErrNotFound
		}
		return assessment.StoredChallenges{}, err
	}
	if err := json.Unmarshal(raw, &c.Challenges); err != nil {
		return assessment.StoredChallenges{}, fmt.Errorf("decode challenges: %w", err)
	}
	return c, nil
}

func (r *PostgresSecondRoundRepository) SaveResult(ctx context.Context, res assessment.SecondRoundResult) error {
	b, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO second_round_results
		 (id, candidate_id, reasoning_score, aptitude_score, coding_score, total_score, percentage, answers, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID, res.CandidateID, res.ReasoningScore, res.AptitudeScore, res.CodingScore, res.TotalScore, res.Percentage, b, res.SubmittedAt,
	)
	return err
}

func (r *PostgresSecondRoundRepository) LatestResult(ctx context.Context, candidateID uuid.UUID) (assessment.SecondRoundResult, error) {
	var res assessment.SecondRoundResult
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, candidate_id, reasoning_score, aptitude_score, coding_score, total_score, percentage, answers, submitted_at
		 FROM second_round_results
		 WHERE candidate_id = $1
		 ORDER BY submitted_at DESC
		 LIMIT 1`,
		candidateID,
	).Scan(&res.ID, &res.CandidateID, &res.ReasoningScore, &res.AptitudeScore, &res.CodingScore, &res.TotalScore, &res.Percentage, &raw, &res.SubmittedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return assessment.SecondRoundResult{}, ErrNotFound
		}
		return assessment.SecondRoundResult{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &res.Answers); err != nil {
			return assessment.SecondRoundResult{}, fmt.Errorf("decode answers: %w", err)
		}
	}
	return res, nil
}
