// Package mail composes candidate emails and delivers them over SMTP, through
// a RabbitMQ queue drained by the mailer command, or to the log.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hireflow/internal/config"

	"go.uber.org/zap"
)

var ErrInvalidMessage = errors.New("invalid mail message")

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

func (m Message) Validate() error {
	if !strings.Contains(m.To, "@") {
		return fmt.Errorf("%w: recipient %q", ErrInvalidMessage, m.To)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: empty subject", ErrInvalidMessage)
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender builds the sender selected by cfg.Transport.
func NewSender(cfg config.MailConfig, mq config.RabbitMQConfig, log *zap.Logger) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", "log":
		return NewLogSender(log), nil
	case "smtp":
		return NewSMTPSender(cfg), nil
	case "queue":
		return NewQueueSender(mq, log)
	default:
		return nil, fmt.Errorf("unsupported mail transport %q", cfg.Transport)
	}
}

// LogSender records messages instead of sending them.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.Info("mail_logged", zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.Int("text_len", len(msg.Text)))
	return nil
}
