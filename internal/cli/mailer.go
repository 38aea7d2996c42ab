package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"hireflow/internal/logger"
	"hireflow/internal/mail"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mailerCmd = &cobra.Command{
	Use:   "mailer",
	Short: "Consume the mail queue and deliver over SMTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if cfg.RabbitMQ.URL == "" {
			return errors.New("rabbitmq.url (RABBITMQ_URL) is required")
		}
		if cfg.Mail.Username == "" || cfg.Mail.Password == "" {
			return errors.New("mail.username and mail.password are required")
		}

		consumer, err := mail.NewConsumer(cfg.RabbitMQ, logger.Component(log, "mailer"))
		if err != nil {
			return err
		}
		defer func() { _ = consumer.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info("starting_mailer", zap.String("smtp", cfg.Mail.Host), zap.String("version", version))
		return consumer.Run(ctx, mail.NewSMTPSender(cfg.Mail))
	},
}

func init() {
	rootCmd.AddCommand(mailerCmd)
}
