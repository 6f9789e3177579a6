package usecase

import (
	"context"
	"time"
)

// RecommendationCache is the slice of the redis cache the recommendation
// usecase needs; a nil implementation means caching is disabled.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RecommendationNotifier pushes a "recommendations updated" signal to a
// user's live connections after a regeneration commits.
type RecommendationNotifier interface {
	NotifyRecommendationsUpdated(userID string, count int)
}
