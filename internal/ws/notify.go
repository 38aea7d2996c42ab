package ws

import (
	"encoding/json"
	"time"

	"hireflow/internal/domain/notification"
)

const EventNotificationCreated = "hr_notification"

type NotificationEvent struct {
	Type          string   `json:"type"`
	ID            string   `json:"id"`
	CandidateID   string   `json:"candidate_id,omitempty"`
	CandidateName string   `json:"candidate_name"`
	TestScore     int      `json:"test_score"`
	MatchPercent  float64  `json:"match_percent"`
	CombinedScore *float64 `json:"combined_score"`
	Status        string   `json:"status"`
	Timestamp     string   `json:"timestamp"`
}

func newNotificationEvent(n notification.Notification) NotificationEvent {
	evt := NotificationEvent{
		Type:          EventNotificationCreated,
		ID:            n.ID.String(),
		CandidateName: n.CandidateName,
		TestScore:     int(n.TestScore),
		MatchPercent:  n.MatchPercent,
		CombinedScore: n.CombinedScore,
		Status:        n.Status,
		Timestamp:     n.SentAt.UTC().Format(time.RFC3339),
	}
	if n.CandidateID != nil {
		evt.CandidateID = n.CandidateID.String()
	}
	if n.SentAt.IsZero() {
		evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return evt
}

// Notify broadcasts n to every connected dashboard. It is a no-op on a nil hub.
func (h *Hub) Notify(n notification.Notification) {
	if h == nil {
		return
	}
	b, err := json.Marshal(newNotificationEvent(n))
	if err != nil {
		return
	}
	h.Broadcast(b)
}
