package seeder

import (
	"context"
	"fmt"

	"hireflow/internal/database"
)

// EnsureTableColumns fails when a Postgres table lacks any of columns.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}

// CoreColumns are the columns the repositories read, per table.
var CoreColumns = map[string][]string{
	"admin_users":             {"id", "username", "password_hash", "created_at"},
	"resumes":                 {"id", "batch_id", "filename", "storage_key", "match_percent", "rank", "shortlisted", "job_description"},
	"candidates":              {"id", "name", "email", "match_percent", "test_score", "second_round_score", "status", "job_description", "resume_filename"},
	"test_results":            {"id", "candidate_id", "candidate_name", "job_description", "score", "total_questions", "status", "completed_at"},
	"hr_notifications":        {"id", "candidate_id", "candidate_name", "test_score", "combined_score", "status", "seen", "sent_at"},
	"second_round_challenges": {"id", "candidate_id", "challenges", "created_at"},
	"second_round_results":    {"id", "candidate_id", "reasoning_score", "aptitude_score", "coding_score", "total_score", "percentage", "answers", "submitted_at"},
}

// CheckSchema runs EnsureTableColumns over CoreColumns.
func CheckSchema(ctx context.Context, db database.DB) error {
	for table, cols := range CoreColumns {
		if err := EnsureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}
	return nil
}
