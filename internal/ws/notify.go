package ws

import (
	"encoding/json"
	"time"
)

type RecommendationsUpdatedEvent struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// Notifier adapts the hub to the usecase layer's notification port.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyRecommendationsUpdated(userID string, count int) {
	if n == nil || n.hub == nil || userID == "" {
		return
	}

	evt := RecommendationsUpdatedEvent{
		Type:      "recommendations_updated",
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(userID, b)
}
