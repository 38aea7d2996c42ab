package repository

import (
	"context"

	"hireflow/internal/database"
	"hireflow/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) error
	// ListRecent returns notifications that reference a candidate, newest first.
	ListRecent(ctx context.Context, limit int) ([]notification.Notification, error)
	MarkSeen(ctx context.Context, id uuid.UUID) error
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO hr_notifications
		 (id, candidate_id, candidate_name, candidate_email, test_score, match_percent, combined_score, status, seen, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.CandidateID, n.CandidateName, n.CandidateEmail, n.TestScore, n.MatchPercent, n.CombinedScore, n.Status, n.Seen, n.SentAt,
	)
	return err
}

func (r *PostgresNotificationRepository) ListRecent(ctx context.Context, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_id, candidate_name, candidate_email, test_score, match_percent, combined_score, status, seen, sent_at
		 FROM hr_notifications
		 WHERE candidate_id IS NOT NULL
		 ORDER BY sent_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0, limit)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.CandidateID, &n.CandidateName, &n.CandidateEmail, &n.TestScore, &n.MatchPercent,
			&n.CombinedScore, &n.Status, &n.Seen, &n.SentAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkSeen(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE hr_notifications SET seen = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
