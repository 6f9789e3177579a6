package usecase

import (
	"context"
	"strings"
	"time"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

const (
	topCareerLimit    = 5
	userActivityLimit = 50
)

type AnalyticsSummary struct {
	TotalUsers           int64
	TotalSkills          int64
	TotalCareers         int64
	TotalCourses         int64
	TotalRecommendations int64
	EventsByType         []repository.EventTypeCount
	TopCareers           []repository.CareerRecommendationCount
}

// UserActivity is one user's recent events plus per-type aggregates.
type UserActivity struct {
	Events  []repository.AnalyticsEvent
	Summary []repository.UserEventSummary
}

type AnalyticsUsecase interface {
	RecordEvent(ctx context.Context, userID *uuid.UUID, eventType string, payload map[string]any) (repository.AnalyticsEvent, error)
	Summary(ctx context.Context, since *time.Time) (AnalyticsSummary, error)
	UserActivity(ctx context.Context, userID uuid.UUID) (UserActivity, error)
}

type analyticsUsecase struct {
	events          repository.AnalyticsRepository
	users           repository.UserRepository
	skills          repository.SkillRepository
	careers         repository.CareerRepository
	courses         repository.CourseRepository
	recommendations repository.RecommendationRepository
}

func NewAnalyticsUsecase(
	events repository.AnalyticsRepository,
	users repository.UserRepository,
	skills repository.SkillRepository,
	careers repository.CareerRepository,
	courses repository.CourseRepository,
	recommendations repository.RecommendationRepository,
) AnalyticsUsecase {
	return &analyticsUsecase{
		events:          events,
		users:           users,
		skills:          skills,
		careers:         careers,
		courses:         courses,
		recommendations: recommendations,
	}
}

func (u *analyticsUsecase) RecordEvent(ctx context.Context, userID *uuid.UUID, eventType string, payload map[string]any) (repository.AnalyticsEvent, error) {
	eventType = strings.TrimSpace(eventType)
	if eventType == "" || len(eventType) > 100 {
		return repository.AnalyticsEvent{}, ErrInvalidInput
	}

	ev, err := u.events.InsertEvent(ctx, repository.AnalyticsEvent{
		UserID:    userID,
		EventType: eventType,
		Payload:   payload,
	})
	if err != nil {
		return repository.AnalyticsEvent{}, ErrInternal
	}
	return ev, nil
}

func (u *analyticsUsecase) Summary(ctx context.Context, since *time.Time) (AnalyticsSummary, error) {
	var s AnalyticsSummary
	var err error

	if s.TotalUsers, err = u.users.CountUsers(ctx); err != nil {
		return AnalyticsSummary{}, ErrInternal
	}
	if s.TotalSkills, err = u.skills.CountSkills(ctx); err != nil {
		return AnalyticsSummary{}, ErrInternal
	}
	if s.TotalCareers, err = u.careers.CountCareers(ctx); err != nil {
		return AnalyticsSummary{}, ErrInternal
	}
	if s.TotalCourses, err = u.courses.CountCourses(ctx); err != nil {
		return AnalyticsSummary{}, ErrInternal
	}
	if s.TotalRecommendations, err = u.recommendations.CountRecommendations(ctx); err != nil {
		return AnalyticsSummary{}, ErrInternal
	}
	if s.EventsByType, err = u.events.CountEventsByType(ctx, since); err != nil {
		return AnalyticsSummary{}, ErrInternal
	}
	if s.TopCareers, err = u.recommendations.TopRecommendedCareers(ctx, topCareerLimit); err != nil {
		return AnalyticsSummary{}, ErrInternal
	}
	return s, nil
}

func (u *analyticsUsecase) UserActivity(ctx context.Context, userID uuid.UUID) (UserActivity, error) {
	events, err := u.events.FindEventsByUser(ctx, userID, userActivityLimit)
	if err != nil {
		return UserActivity{}, ErrInternal
	}
	summary, err := u.events.SummarizeEventsByUser(ctx, userID)
	if err != nil {
		return UserActivity{}, ErrInternal
	}
	return UserActivity{Events: events, Summary: summary}, nil
}
