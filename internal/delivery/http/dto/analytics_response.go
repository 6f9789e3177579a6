package dto

import (
	"time"

	"career-compass/internal/repository"
	"career-compass/internal/usecase"

	"github.com/google/uuid"
)

type AnalyticsEventResponse struct {
	ID        uuid.UUID `json:"id"`
	EventType string    `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

type EventTypeCountResponse struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

type TopCareerResponse struct {
	CareerID uuid.UUID `json:"career_id"`
	Title    string    `json:"title"`
	Count    int64     `json:"count"`
}

type AnalyticsSummaryResponse struct {
	TotalUsers           int64                    `json:"total_users"`
	TotalSkills          int64                    `json:"total_skills"`
	TotalCareers         int64                    `json:"total_careers"`
	TotalCourses         int64                    `json:"total_courses"`
	TotalRecommendations int64                    `json:"total_recommendations"`
	EventsByType         []EventTypeCountResponse `json:"events_by_type"`
	TopCareers           []TopCareerResponse      `json:"top_careers"`
}

type UserActivityEventResponse struct {
	ID        uuid.UUID      `json:"id"`
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

type UserEventSummaryResponse struct {
	EventType    string    `json:"event_type"`
	Count        int64     `json:"count"`
	LastActivity time.Time `json:"last_activity"`
}

type UserActivityResponse struct {
	Events  []UserActivityEventResponse `json:"events"`
	Summary []UserEventSummaryResponse  `json:"summary"`
}

func NewAnalyticsEventResponse(ev repository.AnalyticsEvent) AnalyticsEventResponse {
	return AnalyticsEventResponse{ID: ev.ID, EventType: ev.EventType, CreatedAt: ev.CreatedAt}
}

func NewUserActivityResponse(a usecase.UserActivity) UserActivityResponse {
	events := make([]UserActivityEventResponse, 0, len(a.Events))
	for _, ev := range a.Events {
		events = append(events, UserActivityEventResponse{
			ID:        ev.ID,
			EventType: ev.EventType,
			Payload:   ev.Payload,
			CreatedAt: ev.CreatedAt,
		})
	}
	summary := make([]UserEventSummaryResponse, 0, len(a.Summary))
	for _, s := range a.Summary {
		summary = append(summary, UserEventSummaryResponse{
			EventType:    s.EventType,
			Count:        s.Count,
			LastActivity: s.LastActivity,
		})
	}
	return UserActivityResponse{Events: events, Summary: summary}
}

func NewAnalyticsSummaryResponse(s usecase.AnalyticsSummary) AnalyticsSummaryResponse {
	events := make([]EventTypeCountResponse, 0, len(s.EventsByType))
	for _, e := range s.EventsByType {
		events = append(events, EventTypeCountResponse{EventType: e.EventType, Count: e.Count})
	}
	top := make([]TopCareerResponse, 0, len(s.TopCareers))
	for _, t := range s.TopCareers {
		top = append(top, TopCareerResponse{CareerID: t.CareerID, Title: t.Title, Count: t.Count})
	}
	return AnalyticsSummaryResponse{
		TotalUsers:           s.TotalUsers,
		TotalSkills:          s.TotalSkills,
		TotalCareers:         s.TotalCareers,
		TotalCourses:         s.TotalCourses,
		TotalRecommendations: s.TotalRecommendations,
		EventsByType:         events,
		TopCareers:           top,
	}
}
