package seeder

import (
	"context"
	"errors"
	"strings"

	"hireflow/internal/logger"
	"hireflow/internal/repository"
	ucauth "hireflow/internal/usecase/auth"

	"go.uber.org/zap"
)

// AdminSeeder creates the configured admin when no admin exists yet.
type AdminSeeder struct {
	Username string
	Password string
	Log      *zap.Logger
}

func (AdminSeeder) Name() string { return "default_admin" }

func (s AdminSeeder) Run(ctx context.Context, store repository.Store) error {
	if store.Admins == nil {
		return errors.New("nil admin repository")
	}
	if strings.TrimSpace(s.Password) == "" {
		return nil
	}

	created, err := ucauth.NewService(store.Admins).EnsureDefault(ctx, s.Username, s.Password)
	if err != nil {
		return err
	}
	if created {
		logger.OrNop(s.Log).Info("default_admin_created", zap.String("username", strings.ToLower(strings.TrimSpace(s.Username))))
	}
	return nil
}

// Defaults is the seeder set run by serve and migrate.
func Defaults(adminUsername, adminPassword string, log *zap.Logger) []Seeder {
	return []Seeder{
		AdminSeeder{Username: adminUsername, Password: adminPassword, Log: log},
	}
}
