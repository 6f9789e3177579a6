package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

func newAnalyticsFixture(events *mockAnalyticsRepo) AnalyticsUsecase {
	return NewAnalyticsUsecase(
		events,
		&mockUserRepo{},
		&mockSkillRepo{},
		&mockCareerRepo{},
		&mockCourseRepo{},
		&mockRecommendationRepo{},
	)
}

func TestAnalyticsUsecase_RecordEvent_RequiresType(t *testing.T) {
	uc := newAnalyticsFixture(&mockAnalyticsRepo{})

	if _, err := uc.RecordEvent(context.Background(), nil, "   ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyticsUsecase_UserActivity(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	events := &mockAnalyticsRepo{
		userEvents: []repository.AnalyticsEvent{
			{ID: uuid.New(), UserID: &userID, EventType: "career_viewed", CreatedAt: now},
			{ID: uuid.New(), UserID: &userID, EventType: "skill_added", CreatedAt: now.Add(-time.Hour)},
		},
		userSummary: []repository.UserEventSummary{
			{EventType: "career_viewed", Count: 7, LastActivity: now},
			{EventType: "skill_added", Count: 2, LastActivity: now.Add(-time.Hour)},
		},
	}
	uc := newAnalyticsFixture(events)

	activity, err := uc.UserActivity(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if events.lastUserID != userID {
		t.Fatalf("expected lookup for %s, got %s", userID, events.lastUserID)
	}
	if events.lastLimit != userActivityLimit {
		t.Fatalf("expected event limit %d, got %d", userActivityLimit, events.lastLimit)
	}
	if len(activity.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(activity.Events))
	}
	if len(activity.Summary) != 2 || activity.Summary[0].EventType != "career_viewed" || activity.Summary[0].Count != 7 {
		t.Fatalf("unexpected summary: %+v", activity.Summary)
	}
}

func TestAnalyticsUsecase_UserActivity_RepoFailure(t *testing.T) {
	uc := newAnalyticsFixture(&mockAnalyticsRepo{userErr: errors.New("db down")})

	if _, err := uc.UserActivity(context.Background(), uuid.New()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
