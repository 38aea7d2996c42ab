package app

import (
	"context"
	"fmt"
	"strings"

	"hireflow/internal/config"
	"hireflow/internal/delivery/http/handler"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/delivery/http/routes"
	v1 "hireflow/internal/delivery/http/routes/v1"
	"hireflow/internal/logger"
	"hireflow/internal/usecase"
	"hireflow/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Usecases is the application layer the HTTP API is built on.
type Usecases struct {
	Auth         usecase.AuthUsecase
	Screening    usecase.ScreeningUsecase
	Invitation   usecase.InvitationUsecase
	FirstRound   usecase.FirstRoundUsecase
	SecondRound  usecase.SecondRoundUsecase
	Review       usecase.ReviewUsecase
	Notification usecase.NotificationUsecase
	Board        usecase.BoardUsecase
	Candidate    usecase.CandidateUsecase
}

// NewUsecases wires the usecases over the container's adapters.
func NewUsecases(c *Container) Usecases {
	cfg := c.Config
	log := c.Log

	var cch usecase.Cache
	if c.Cache != nil && c.Cache.Available() {
		cch = c.Cache
	}
	var push usecase.Pusher
	if c.Hub != nil {
		push = c.Hub
	}

	return Usecases{
		Auth:      usecase.NewAuthUsecase(c.Store.Admins, c.JWT),
		Screening: usecase.NewScreeningUsecase(c.Store.Resumes, c.Files, cch, cfg.App.TopCandidates, cfg.App.Workers, logger.Component(log, "screening")),
		Invitation: usecase.NewInvitationUsecase(c.Store.Candidates, c.Store.Resumes, cch, c.Mailer, usecase.InvitationConfig{
			PublicBaseURL: cfg.App.PublicBaseURL,
			Workers:       cfg.App.Workers,
			RatePerSecond: cfg.Mail.RatePerSecond,
		}, logger.Component(log, "invitation")),
		FirstRound:   usecase.NewFirstRoundUsecase(c.Store, c.Generator, cch, push, cfg.Assessment.JobDescriptionLimit, logger.Component(log, "first_round")),
		SecondRound:  usecase.NewSecondRoundUsecase(c.Store, c.Generator, push, logger.Component(log, "second_round")),
		Review:       usecase.NewReviewUsecase(c.Store, c.Generator, c.Mailer, cfg.App.PublicBaseURL, logger.Component(log, "review")),
		Notification: usecase.NewNotificationUsecase(c.Store.Notifications, logger.Component(log, "notification")),
		Board:        usecase.NewBoardUsecase(c.Store.Candidates, logger.Component(log, "board")),
		Candidate:    usecase.NewCandidateUsecase(c.Store, c.Files, logger.Component(log, "candidate")),
	}
}

// New builds the fiber app with every route mounted.
func New(c *Container, uc Usecases) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: cfg.App.BodyLimitMB * 1024 * 1024,
	})

	registerGlobalMiddleware(f, c.Log)

	deps := map[string]handler.Pinger{"database": c}
	if c.Cache != nil && c.Cache.Available() {
		deps["redis"] = c.Cache
	}
	health := handler.NewHealthHandler(deps)
	handlers := v1.Handlers{
		Auth:          handler.NewAuthHandler(uc.Auth),
		Screening:     handler.NewScreeningHandler(uc.Screening),
		Invitation:    handler.NewInvitationHandler(uc.Invitation),
		FirstRound:    handler.NewFirstRoundHandler(uc.FirstRound),
		SecondRound:   handler.NewSecondRoundHandler(uc.SecondRound),
		Review:        handler.NewReviewHandler(uc.Review),
		Notification:  handler.NewNotificationHandler(uc.Notification),
		Board:         handler.NewBoardHandler(uc.Board),
		Candidate:     handler.NewCandidateHandler(uc.Candidate),
		Notifications: ws.NewHandler(c.Hub, logger.Component(c.Log, "ws")),
	}
	routes.NewRegistry(health, handlers, middleware.NewAuthMiddleware(c.JWT)).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, applies migrations and seeders, and starts
// the notification hub. The returned cleanup stops the hub and closes the container.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if err := c.Migrate(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c, NewUsecases(c))
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Component(log, "http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Component(log, "http")).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
