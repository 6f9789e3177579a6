package dto

import (
	"time"

	"career-compass/internal/usecase"

	"github.com/google/uuid"
)

type RecommendationDetailResponse struct {
	ID               uuid.UUID        `json:"id"`
	Score            float64          `json:"score"`
	MatchPercentage  int              `json:"match_percentage"`
	Reason           string           `json:"reason"`
	CreatedAt        time.Time        `json:"created_at"`
	Career           CareerResponse   `json:"career"`
	SuggestedCourses []CourseResponse `json:"suggested_courses"`
}

func NewRecommendationDetailResponses(items []usecase.RecommendationDetail) []RecommendationDetailResponse {
	out := make([]RecommendationDetailResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RecommendationDetailResponse{
			ID:               it.ID,
			Score:            it.Score,
			MatchPercentage:  it.MatchPercentage,
			Reason:           it.Reason,
			CreatedAt:        it.CreatedAt,
			Career:           NewCareerResponse(it.Career),
			SuggestedCourses: NewCourseResponses(it.SuggestedCourses),
		})
	}
	return out
}
