package usecase

import (
	"context"
	"errors"
	"time"

	"hireflow/internal/domain/notification"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const feedLimit = 20

type FeedItem struct {
	ID            uuid.UUID `json:"id"`
	CandidateName string    `json:"candidate_name"`
	TestScore     int       `json:"test_score"`
	CombinedScore *float64  `json:"combined_score"`
	SentOn        string    `json:"sent_on"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	Seen          bool      `json:"seen"`
}

type Feed struct {
	Notifications []FeedItem `json:"notifications"`
	UnseenCount   int        `json:"unseen_count"`
}

type NotificationUsecase interface {
	Feed(ctx context.Context) (Feed, error)
	MarkSeen(ctx context.Context, id uuid.UUID) error
}

type Notifications struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func NewNotificationUsecase(repo repository.NotificationRepository, log *zap.Logger) *Notifications {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifications{repo: repo, log: log}
}

func (u *Notifications) Feed(ctx context.Context) (Feed, error) {
	items, err := u.repo.ListRecent(ctx, feedLimit)
	if err != nil {
		u.log.Error("notification_feed_failed", zap.Error(err))
		return Feed{}, ErrInternal
	}

	out := Feed{Notifications: make([]FeedItem, 0, len(items))}
	for _, n := range items {
		if n.CandidateID == nil {
			continue
		}
		name := n.CandidateName
		if name == "" {
			name = "Unknown"
		}
		out.Notifications = append(out.Notifications, FeedItem{
			ID:            n.ID,
			CandidateName: name,
			TestScore:     int(n.TestScore),
			CombinedScore: n.CombinedScore,
			SentOn:        n.SentAt.Format("2006-01-02 15:04"),
			CandidateID:   *n.CandidateID,
			Seen:          n.Seen,
		})
		if !n.Seen {
			out.UnseenCount++
		}
	}
	return out, nil
}

func (u *Notifications) MarkSeen(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.MarkSeen(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		u.log.Error("notification_mark_seen_failed", zap.String("id", id.String()), zap.Error(err))
		return ErrInternal
	}
	return nil
}

// notifier stores an HR notification and pushes it live. Failures are logged
// and never reach the caller.
type notifier struct {
	repo repository.NotificationRepository
	push Pusher
	log  *zap.Logger
	now  func() time.Time
}

func newNotifier(repo repository.NotificationRepository, push Pusher, log *zap.Logger) notifier {
	if push == nil {
		push = noopPusher{}
	}
	return notifier{repo: repo, push: push, log: log, now: time.Now}
}

func (n notifier) emit(ctx context.Context, item notification.Notification) {
	item.ID = uuid.New()
	item.SentAt = n.now().UTC()
	if err := n.repo.Create(ctx, item); err != nil {
		n.log.Error("notification_create_failed",
			zap.String("candidate", item.CandidateName),
			zap.String("status", item.Status),
			zap.Error(err),
		)
		return
	}
	n.push.Notify(item)
	n.log.Info("notification_created", zap.String("candidate", item.CandidateName), zap.String("status", item.Status))
}
