package repository

import (
	"context"
	"encoding/json"
	"time"

	"career-compass/internal/database"

	"github.com/google/uuid"
)

type AnalyticsEvent struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	EventType string
	Payload   map[string]any
	CreatedAt time.Time
}

type EventTypeCount struct {
	EventType string
	Count     int64
}

// UserEventSummary aggregates one user's events of a single type.
type UserEventSummary struct {
	EventType    string
	Count        int64
	LastActivity time.Time
}

type AnalyticsRepository interface {
	InsertEvent(ctx context.Context, ev AnalyticsEvent) (AnalyticsEvent, error)
	CountEventsByType(ctx context.Context, since *time.Time) ([]EventTypeCount, error)
	FindEventsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]AnalyticsEvent, error)
	SummarizeEventsByUser(ctx context.Context, userID uuid.UUID) ([]UserEventSummary, error)
}

type PostgresAnalyticsRepository struct {
	db database.DB
}

func NewPostgresAnalyticsRepository(db database.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) InsertEvent(ctx context.Context, ev AnalyticsEvent) (AnalyticsEvent, error) {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.Payload == nil {
		ev.Payload = map[string]any{}
	}

	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return AnalyticsEvent{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO analytics_events (id, user_id, event_type, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		ev.ID, ev.UserID, ev.EventType, payload,
	)
	if err := row.Scan(&ev.CreatedAt); err != nil {
		return AnalyticsEvent{}, err
	}
	return ev, nil
}

func (r *PostgresAnalyticsRepository) FindEventsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]AnalyticsEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_type, payload, created_at
		 FROM analytics_events
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AnalyticsEvent, 0)
	for rows.Next() {
		ev := AnalyticsEvent{UserID: &userID}
		var payload []byte
		if err := rows.Scan(&ev.ID, &ev.EventType, &payload, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &ev.Payload); err != nil {
				return nil, err
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) SummarizeEventsByUser(ctx context.Context, userID uuid.UUID) ([]UserEventSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT event_type, COUNT(*) AS total, MAX(created_at) AS last_activity
		 FROM analytics_events
		 WHERE user_id = $1
		 GROUP BY event_type
		 ORDER BY total DESC, event_type ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserEventSummary, 0)
	for rows.Next() {
		var s UserEventSummary
		if err := rows.Scan(&s.EventType, &s.Count, &s.LastActivity); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) CountEventsByType(ctx context.Context, since *time.Time) ([]EventTypeCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT event_type, COUNT(*) AS total
		 FROM analytics_events
		 WHERE $1::timestamptz IS NULL OR created_at >= $1
		 GROUP BY event_type
		 ORDER BY total DESC, event_type ASC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EventTypeCount, 0)
	for rows.Next() {
		var c EventTypeCount
		if err := rows.Scan(&c.EventType, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
