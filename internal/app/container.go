package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hireflow/internal/ai/gemini"
	"hireflow/internal/assessment"
	"hireflow/internal/config"
	"hireflow/internal/database"
	"hireflow/internal/database/migration"
	dbmysql "hireflow/internal/database/mysql"
	dbpostgres "hireflow/internal/database/postgres"
	"hireflow/internal/database/seeder"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/logger"
	"hireflow/internal/mail"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/repository"
	"hireflow/internal/repository/gormrepo"
	"hireflow/internal/storage"
	"hireflow/internal/ws"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectTimeout = 10 * time.Second

// Container owns every long-lived dependency of the service.
type Container struct {
	Config config.Config
	Log    *zap.Logger

	// Exactly one of DB (postgres) and Gorm (mysql) is set.
	DB   database.DB
	Gorm *gorm.DB

	Store     repository.Store
	Cache     *cache.Redis
	Files     storage.Store
	Mailer    mail.Sender
	Generator *assessment.Generator
	Hub       *ws.Hub
	JWT       jwt.Service

	closers []func() error
}

// OpenStore connects the configured database and returns the repositories on it.
func OpenStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: logger.OrNop(log)}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Database.Driver {
	case "mysql":
		gdb, err := dbmysql.Connect(ctx, cfg.Database, cfg.Log.Debug, logger.Component(c.Log, "mysql"))
		if err != nil {
			return nil, err
		}
		c.Gorm = gdb
		c.Store = gormrepo.NewStore(gdb)
		c.closers = append(c.closers, func() error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	case "postgres":
		db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Component(c.Log, "postgres"))
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Store = repository.NewPostgresStore(db)
		c.closers = append(c.closers, db.Close)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return c, nil
}

// NewContainer opens the store and builds every adapter the HTTP server uses.
func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	c, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := c.wire(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) wire(ctx context.Context) error {
	cfg := c.Config

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger.Component(c.Log, "cache"))
	c.closers = append(c.closers, c.Cache.Close)

	files, err := storage.New(ctx, cfg.Storage, logger.Component(c.Log, "storage"))
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	c.Files = files

	mailer, err := mail.NewSender(cfg.Mail, cfg.RabbitMQ, logger.Component(c.Log, "mail"))
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	c.Mailer = mailer
	if q, ok := mailer.(*mail.QueueSender); ok {
		c.closers = append(c.closers, q.Close)
	}

	var ai assessment.ContentGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.Gemini, logger.Component(c.Log, "gemini"))
		if err != nil {
			return fmt.Errorf("gemini: %w", err)
		}
		ai = client
	} else {
		c.Log.Warn("gemini_disabled", zap.String("reason", "no api key"))
	}
	c.Generator = assessment.NewGenerator(ai, cfg.Assessment, logger.Component(c.Log, "assessment"))

	c.Hub = ws.NewHub(logger.Component(c.Log, "ws"))
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	return nil
}

// Migrate brings the schema up to date and runs the seeders.
func (c *Container) Migrate(ctx context.Context) error {
	switch {
	case c.DB != nil:
		r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Log: logger.Component(c.Log, "migration")}
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := seeder.CheckSchema(ctx, c.DB); err != nil {
			return err
		}
	case c.Gorm != nil:
		if err := gormrepo.AutoMigrate(ctx, c.Gorm); err != nil {
			return err
		}
	default:
		return errors.New("migrate: no database")
	}

	seeders := seeder.Runner{
		Seeders: seeder.Defaults(c.Config.Admin.Username, c.Config.Admin.Password, c.Log),
		Log:     c.Log,
	}
	return seeders.Run(ctx, c.Store)
}

// Ping checks the relational store.
func (c *Container) Ping(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Ping(ctx)
	}
	if c.Gorm != nil {
		sqlDB, err := c.Gorm.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	return errors.New("no database")
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
