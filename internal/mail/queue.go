package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"hireflow/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	defaultExchange   = "hireflow.mail"
	defaultQueue      = "hireflow.mail.outbound"
	defaultRoutingKey = "mail.send"
)

// channel is the subset of *amqp.Channel the queue sender and consumer use.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

type topology struct {
	exchange, queue, key string
	prefetch             int
}

func topologyFrom(cfg config.RabbitMQConfig) topology {
	t := topology{exchange: cfg.Exchange, queue: cfg.Queue, key: cfg.RoutingKey, prefetch: cfg.Prefetch}
	if t.exchange == "" {
		t.exchange = defaultExchange
	}
	if t.queue == "" {
		t.queue = defaultQueue
	}
	if t.key == "" {
		t.key = defaultRoutingKey
	}
	if t.prefetch <= 0 {
		t.prefetch = 10
	}
	return t
}

func dial(cfg config.RabbitMQConfig, t topology) (*amqp.Connection, *amqp.Channel, error) {
	if cfg.URL == "" {
		return nil, nil, errors.New("rabbitmq url is required for queue transport")
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(t.exchange, "direct", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", t.exchange, err)
	}
	if _, err := ch.QueueDeclare(t.queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue %s: %w", t.queue, err)
	}
	if err := ch.QueueBind(t.queue, t.key, t.exchange, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to bind queue %s: %w", t.queue, err)
	}
	return conn, ch, nil
}

// QueueSender publishes messages as persistent JSON for the mailer process.
type QueueSender struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   channel
	t    topology
	log  *zap.Logger
}

func NewQueueSender(cfg config.RabbitMQConfig, log *zap.Logger) (*QueueSender, error) {
	t := topologyFrom(cfg)
	conn, ch, err := dial(cfg, t)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("mail_queue_connected", zap.String("exchange", t.exchange), zap.String("queue", t.queue))
	return &QueueSender{conn: conn, ch: ch, t: t, log: log}, nil
}

func (s *QueueSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.ch.PublishWithContext(ctx, s.t.exchange, s.t.key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish mail: %w", err)
	}
	s.log.Debug("mail_enqueued", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func (s *QueueSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Consumer drains the mail queue and hands each message to a delivering Sender.
type Consumer struct {
	conn *amqp.Connection
	ch   channel
	t    topology
	log  *zap.Logger
}

func NewConsumer(cfg config.RabbitMQConfig, log *zap.Logger) (*Consumer, error) {
	t := topologyFrom(cfg)
	conn, ch, err := dial(cfg, t)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{conn: conn, ch: ch, t: t, log: log}, nil
}

// Run blocks until ctx is done or the delivery channel closes. Malformed
// payloads are dropped, failed sends are requeued.
func (c *Consumer) Run(ctx context.Context, sender Sender) error {
	if err := c.ch.Qos(c.t.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	deliveries, err := c.ch.Consume(c.t.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}
	c.log.Info("mail_consumer_started", zap.String("queue", c.t.queue), zap.Int("prefetch", c.t.prefetch))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("mail delivery channel closed")
			}
			c.handle(ctx, sender, d)
		}
	}
}

type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Consumer) handle(ctx context.Context, sender Sender, d amqp.Delivery) {
	c.process(ctx, sender, d.Body, d)
}

func (c *Consumer) process(ctx context.Context, sender Sender, body []byte, ack acker) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		c.log.Warn("mail_payload_invalid", zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}
	if err := sender.Send(ctx, msg); err != nil {
		if errors.Is(err, ErrInvalidMessage) {
			c.log.Warn("mail_rejected", zap.String("to", msg.To), zap.Error(err))
			_ = ack.Nack(false, false)
			return
		}
		c.log.Error("mail_send_failed", zap.String("to", msg.To), zap.Error(err))
		_ = ack.Nack(false, true)
		return
	}
	c.log.Info("mail_sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	_ = ack.Ack(false)
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
