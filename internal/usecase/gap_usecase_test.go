package usecase

import (
	"context"
	"errors"
	"testing"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

func TestGapUsecase_CareerNotFound(t *testing.T) {
	uc := NewGapUsecase(
		&mockCareerRepo{byIDErr: repository.ErrCareerNotFound},
		&mockUserSkillRepo{},
		&mockCourseRepo{},
	)

	_, err := uc.AnalyzeCareer(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, repository.ErrCareerNotFound) {
		t.Fatalf("expected ErrCareerNotFound, got %v", err)
	}
}

func TestGapUsecase_AnalyzeCareer(t *testing.T) {
	userID := uuid.New()
	skillA := uuid.New()
	skillB := uuid.New()
	skillC := uuid.New()

	careers := &mockCareerRepo{byID: repository.CareerWithSkills{
		Career: repository.Career{ID: uuid.New(), Title: "DevOps Engineer"},
		RequiredSkills: []repository.CareerSkill{
			{SkillID: skillA, Name: "Docker", Category: "DevOps"},
			{SkillID: skillB, Name: "Kubernetes", Category: "DevOps"},
			{SkillID: skillC, Name: "Linux", Category: "Systems"},
		},
	}}
	userSkills := &mockUserSkillRepo{items: []repository.UserSkill{
		{ID: uuid.New(), UserID: userID, SkillID: skillA, Level: "INTERMEDIATE"},
	}}
	courses := &mockCourseRepo{teaching: []repository.CourseWithSkills{
		{Course: repository.Course{ID: uuid.New(), Title: "Kubernetes in Production"}},
	}}

	uc := NewGapUsecase(careers, userSkills, courses)

	got, err := uc.AnalyzeCareer(context.Background(), userID, careers.byID.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if got.Readiness != 33 {
		t.Fatalf("expected readiness 33, got %d", got.Readiness)
	}
	if len(got.SkillsHeld) != 1 || got.SkillsHeld[0].Name != "Docker" || got.SkillsHeld[0].Level != "INTERMEDIATE" {
		t.Fatalf("unexpected held skills: %+v", got.SkillsHeld)
	}
	if len(got.SkillsMissing) != 2 {
		t.Fatalf("expected 2 missing skills, got %d", len(got.SkillsMissing))
	}
	if got.SkillsMissing[0].Name != "Kubernetes" || got.SkillsMissing[1].Name != "Linux" {
		t.Fatalf("missing skills out of order: %+v", got.SkillsMissing)
	}

	if len(got.RemediationCourses) != 1 {
		t.Fatalf("expected 1 remediation course, got %d", len(got.RemediationCourses))
	}
	if courses.lastLimit != remediationCourseLimit {
		t.Fatalf("expected course limit %d, got %d", remediationCourseLimit, courses.lastLimit)
	}
	if len(courses.lastSkillIDs) != 2 {
		t.Fatalf("expected courses looked up for missing skills only, got %v", courses.lastSkillIDs)
	}
}

func TestGapUsecase_FullyReadySkipsCourseLookup(t *testing.T) {
	userID := uuid.New()
	skill := uuid.New()

	careers := &mockCareerRepo{byID: repository.CareerWithSkills{
		Career:         repository.Career{ID: uuid.New(), Title: "Analyst"},
		RequiredSkills: []repository.CareerSkill{{SkillID: skill, Name: "SQL"}},
	}}
	userSkills := &mockUserSkillRepo{items: []repository.UserSkill{
		{ID: uuid.New(), UserID: userID, SkillID: skill, Level: "ADVANCED"},
	}}
	courses := &mockCourseRepo{}

	uc := NewGapUsecase(careers, userSkills, courses)

	got, err := uc.AnalyzeCareer(context.Background(), userID, careers.byID.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Readiness != 100 {
		t.Fatalf("expected readiness 100, got %d", got.Readiness)
	}
	if len(got.RemediationCourses) != 0 {
		t.Fatalf("expected no remediation courses, got %d", len(got.RemediationCourses))
	}
	if courses.lastLimit != 0 {
		t.Fatalf("expected no course lookup, but limit=%d was requested", courses.lastLimit)
	}
}
