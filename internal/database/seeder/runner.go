package seeder

import (
	"context"
	"fmt"

	"hireflow/internal/logger"
	"hireflow/internal/repository"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Log     *zap.Logger
}

func (r Runner) Run(ctx context.Context, store repository.Store) error {
	log := logger.OrNop(r.Log)
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, store); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Debug("seeder_done", zap.String("seeder", s.Name()))
	}
	return nil
}
