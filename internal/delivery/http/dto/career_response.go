package dto

import (
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

type CareerSkillResponse struct {
	SkillID  uuid.UUID `json:"skill_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type CareerResponse struct {
	ID             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	Industry       string                `json:"industry,omitempty"`
	AverageSalary  int64                 `json:"average_salary,omitempty"`
	GrowthRate     float64               `json:"growth_rate,omitempty"`
	RequiredSkills []CareerSkillResponse `json:"required_skills"`
}

type CareerListResponse struct {
	Items  []CareerResponse `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

func NewCareerResponse(c repository.CareerWithSkills) CareerResponse {
	skills := make([]CareerSkillResponse, 0, len(c.RequiredSkills))
	for _, s := range c.RequiredSkills {
		skills = append(skills, CareerSkillResponse{SkillID: s.SkillID, Name: s.Name, Category: s.Category})
	}
	return CareerResponse{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Industry:       c.Industry,
		AverageSalary:  c.AverageSalary,
		GrowthRate:     c.GrowthRate,
		RequiredSkills: skills,
	}
}

func NewCareerResponses(careers []repository.CareerWithSkills) []CareerResponse {
	out := make([]CareerResponse, 0, len(careers))
	for _, c := range careers {
		out = append(out, NewCareerResponse(c))
	}
	return out
}
