package dto

import (
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

type CourseSkillResponse struct {
	SkillID uuid.UUID `json:"skill_id"`
	Name    string    `json:"name"`
}

type CourseResponse struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Provider     string                `json:"provider,omitempty"`
	URL          string                `json:"url,omitempty"`
	Difficulty   string                `json:"difficulty"`
	SkillsTaught []CourseSkillResponse `json:"skills_taught"`
}

type CourseListResponse struct {
	Items  []CourseResponse `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

func NewCourseResponse(c repository.CourseWithSkills) CourseResponse {
	skills := make([]CourseSkillResponse, 0, len(c.SkillsTaught))
	for _, s := range c.SkillsTaught {
		skills = append(skills, CourseSkillResponse{SkillID: s.SkillID, Name: s.Name})
	}
	return CourseResponse{
		ID:           c.ID,
		Title:        c.Title,
		Provider:     c.Provider,
		URL:          c.URL,
		Difficulty:   c.Difficulty,
		SkillsTaught: skills,
	}
}

func NewCourseResponses(courses []repository.CourseWithSkills) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
