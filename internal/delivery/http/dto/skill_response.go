package dto

import (
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
}

func NewSkillResponse(s repository.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category, Description: s.Description}
}

func NewSkillResponses(skills []repository.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, NewSkillResponse(s))
	}
	return out
}
