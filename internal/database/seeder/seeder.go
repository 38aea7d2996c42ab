package seeder

import (
	"context"

	"hireflow/internal/repository"
)

// Seeder fills initial rows. Run must be idempotent: it is executed on every start.
type Seeder interface {
	Name() string
	Run(ctx context.Context, store repository.Store) error
}
