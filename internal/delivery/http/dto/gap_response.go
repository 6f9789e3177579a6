package dto

import (
	"career-compass/internal/usecase"

	"github.com/google/uuid"
)

type HeldSkillResponse struct {
	SkillID  uuid.UUID `json:"skill_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Level    string    `json:"level"`
}

type MissingSkillResponse struct {
	SkillID  uuid.UUID `json:"skill_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type GapAnalysisResponse struct {
	Career             CareerResponse         `json:"career"`
	Readiness          int                    `json:"readiness"`
	SkillsHeld         []HeldSkillResponse    `json:"skills_held"`
	SkillsMissing      []MissingSkillResponse `json:"skills_missing"`
	RemediationCourses []CourseResponse       `json:"remediation_courses"`
}

func NewGapAnalysisResponse(g usecase.GapAnalysis) GapAnalysisResponse {
	held := make([]HeldSkillResponse, 0, len(g.SkillsHeld))
	for _, h := range g.SkillsHeld {
		held = append(held, HeldSkillResponse{SkillID: h.SkillID, Name: h.Name, Category: h.Category, Level: h.Level})
	}
	missing := make([]MissingSkillResponse, 0, len(g.SkillsMissing))
	for _, m := range g.SkillsMissing {
		missing = append(missing, MissingSkillResponse{SkillID: m.SkillID, Name: m.Name, Category: m.Category})
	}
	return GapAnalysisResponse{
		Career:             NewCareerResponse(g.Career),
		Readiness:          g.Readiness,
		SkillsHeld:         held,
		SkillsMissing:      missing,
		RemediationCourses: NewCourseResponses(g.RemediationCourses),
	}
}
