package repository

import (
	"context"

	"hireflow/internal/database"
	"hireflow/internal/domain/admin"

	"github.com/google/uuid"
)

type AdminRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, u admin.User) error
	GetByUsername(ctx context.Context, username string) (admin.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (admin.User, error)
}

type PostgresAdminRepository struct {
	db database.DB
}

func NewPostgresAdminRepository(db database.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresAdminRepository) Create(ctx context.Context, u admin.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt,
	)
	return err
}

func (r *PostgresAdminRepository) GetByUsername(ctx context.Context, username string) (admin.User, error) {
	return r.get(ctx, `username = $1`, username)
}

func (r *PostgresAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (admin.User, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *PostgresAdminRepository) get(ctx context.Context, where string, arg any) (admin.User, error) {
	var u admin.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admin_users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return admin.User{}, ErrNotFound
		}
		return admin.User{}, err
	}
	return u, nil
}
