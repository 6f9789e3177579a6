package dto

import (
	"time"

	"career-compass/internal/repository"
	"career-compass/internal/usecase"

	"github.com/google/uuid"
)

type UserSkillResponse struct {
	ID            uuid.UUID `json:"id"`
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	SkillCategory string    `json:"skill_category"`
	Level         string    `json:"level"`
}

func NewUserSkillResponse(us repository.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		ID:            us.ID,
		SkillID:       us.SkillID,
		SkillName:     us.SkillName,
		SkillCategory: us.SkillCategory,
		Level:         us.Level,
	}
}

func NewUserSkillResponses(items []repository.UserSkill) []UserSkillResponse {
	out := make([]UserSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewUserSkillResponse(it))
	}
	return out
}

type BulkSkillFailureResponse struct {
	SkillID uuid.UUID `json:"skill_id"`
	Reason  string    `json:"reason"`
}

type BulkAddUserSkillsResponse struct {
	Added   []UserSkillResponse        `json:"added"`
	Skipped []BulkSkillFailureResponse `json:"skipped"`
	Errors  []BulkSkillFailureResponse `json:"errors"`
}

func NewBulkAddUserSkillsResponse(r usecase.BulkAddResult) BulkAddUserSkillsResponse {
	out := BulkAddUserSkillsResponse{
		Added:   NewUserSkillResponses(r.Added),
		Skipped: make([]BulkSkillFailureResponse, 0, len(r.Skipped)),
		Errors:  make([]BulkSkillFailureResponse, 0, len(r.Errors)),
	}
	for _, s := range r.Skipped {
		out.Skipped = append(out.Skipped, BulkSkillFailureResponse{SkillID: s.SkillID, Reason: s.Reason})
	}
	for _, e := range r.Errors {
		out.Errors = append(out.Errors, BulkSkillFailureResponse{SkillID: e.SkillID, Reason: e.Reason})
	}
	return out
}

type SkillHolderResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

type UsersBySkillResponse struct {
	Users   []SkillHolderResponse `json:"users"`
	Total   int                   `json:"total"`
	ByLevel map[string]int        `json:"by_level"`
}

func NewUsersBySkillResponse(r usecase.UsersBySkill) UsersBySkillResponse {
	users := make([]SkillHolderResponse, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, SkillHolderResponse{
			UserID:    u.UserID,
			Name:      u.Name,
			Email:     u.Email,
			Level:     u.Level,
			CreatedAt: u.CreatedAt,
		})
	}
	return UsersBySkillResponse{Users: users, Total: r.Total, ByLevel: r.ByLevel}
}
