package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

func recommendationFixture() (uuid.UUID, *mockUserSkillRepo, *mockCareerRepo) {
	userID := uuid.New()
	skillA := uuid.New()
	skillB := uuid.New()

	userSkills := &mockUserSkillRepo{items: []repository.UserSkill{
		{ID: uuid.New(), UserID: userID, SkillID: skillA, Level: "ADVANCED"},
		{ID: uuid.New(), UserID: userID, SkillID: skillB, Level: "BEGINNER"},
	}}

	careers := &mockCareerRepo{all: []repository.CareerWithSkills{
		{
			Career: repository.Career{ID: uuid.New(), Title: "Backend Engineer"},
			RequiredSkills: []repository.CareerSkill{
				{SkillID: skillA, Name: "Go"},
				{SkillID: skillB, Name: "SQL"},
			},
		},
		{
			Career: repository.Career{ID: uuid.New(), Title: "Unrelated"},
			RequiredSkills: []repository.CareerSkill{
				{SkillID: uuid.New(), Name: "Other"},
			},
		},
	}}

	return userID, userSkills, careers
}

func TestRecommendationUsecase_Generate_NoSkills(t *testing.T) {
	uc := NewRecommendationUsecase(
		&mockRecommendationRepo{}, &mockCareerRepo{}, &mockUserSkillRepo{}, &mockCourseRepo{},
		nil, 0, nil,
	)

	_, err := uc.Generate(context.Background(), uuid.New(), 5)
	if !errors.Is(err, ErrNoSkillsRegistered) {
		t.Fatalf("expected ErrNoSkillsRegistered, got %v", err)
	}
}

func TestRecommendationUsecase_Generate_PersistsAndNotifies(t *testing.T) {
	userID, userSkills, careers := recommendationFixture()
	recs := &mockRecommendationRepo{careersByID: careersByID(careers.all)}
	cache := newMockCache()
	notifier := &mockNotifier{}

	uc := NewRecommendationUsecase(recs, careers, userSkills, &mockCourseRepo{}, cache, time.Minute, notifier)

	items, err := uc.Generate(context.Background(), userID, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(items))
	}
	if items[0].Career.Title != "Backend Engineer" {
		t.Fatalf("unexpected career: %q", items[0].Career.Title)
	}
	if len(items[0].Career.RequiredSkills) != 2 {
		t.Fatalf("expected career detail with 2 required skills, got %d", len(items[0].Career.RequiredSkills))
	}

	if recs.replacedFor != userID {
		t.Fatalf("expected replace for %s, got %s", userID, recs.replacedFor)
	}
	if len(recs.replaced) != 1 {
		t.Fatalf("expected 1 persisted row, got %d", len(recs.replaced))
	}
	row := recs.replaced[0]
	if row.Reason != "Matched 2 out of 2 required skills" {
		t.Fatalf("unexpected reason: %q", row.Reason)
	}
	if row.MatchPercentage != 100 {
		t.Fatalf("expected 100%% match, got %d", row.MatchPercentage)
	}

	if notifier.calls != 1 || notifier.userID != userID.String() || notifier.count != 1 {
		t.Fatalf("notifier not called as expected: %+v", notifier)
	}
	if len(cache.deleted) == 0 || !strings.Contains(cache.deleted[0], userID.String()) {
		t.Fatalf("expected cache invalidation for user, got %v", cache.deleted)
	}
}

// Generate answers with the persisted rows joined with full career detail,
// not the bare engine scores.
func TestRecommendationUsecase_Generate_ReturnsPersistedDetail(t *testing.T) {
	userID, userSkills, careers := recommendationFixture()
	careers.all[0].Career.Description = "Builds services"
	careers.all[0].Career.Industry = "Software"
	recs := &mockRecommendationRepo{careersByID: careersByID(careers.all)}
	courses := &mockCourseRepo{teaching: []repository.CourseWithSkills{
		{Course: repository.Course{ID: uuid.New(), Title: "Go Basics"}},
	}}

	uc := NewRecommendationUsecase(recs, careers, userSkills, courses, nil, 0, nil)

	items, err := uc.Generate(context.Background(), userID, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(items))
	}
	got := items[0]
	if got.Career.Description != "Builds services" || got.Career.Industry != "Software" {
		t.Fatalf("career detail missing from generate result: %+v", got.Career.Career)
	}
	if got.Reason != "Matched 2 out of 2 required skills" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
	if len(got.SuggestedCourses) != 1 || got.SuggestedCourses[0].Title != "Go Basics" {
		t.Fatalf("expected course suggestions on generate result, got %+v", got.SuggestedCourses)
	}
}

func TestRecommendationUsecase_Generate_ZeroQualifyingCareersIsEmptySuccess(t *testing.T) {
	userID := uuid.New()
	userSkills := &mockUserSkillRepo{items: []repository.UserSkill{
		{ID: uuid.New(), UserID: userID, SkillID: uuid.New(), Level: "ADVANCED"},
	}}
	careers := &mockCareerRepo{all: []repository.CareerWithSkills{
		{
			Career:         repository.Career{ID: uuid.New(), Title: "Unrelated"},
			RequiredSkills: []repository.CareerSkill{{SkillID: uuid.New()}},
		},
	}}
	recs := &mockRecommendationRepo{}
	cache := newMockCache()
	notifier := &mockNotifier{}

	uc := NewRecommendationUsecase(recs, careers, userSkills, &mockCourseRepo{}, cache, time.Minute, notifier)

	items, err := uc.Generate(context.Background(), userID, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty result, got %d", len(items))
	}

	// The previously stored set survives a run that matches nothing.
	if recs.replacedFor != (uuid.UUID{}) {
		t.Fatalf("replace must not run when nothing qualifies, ran for %s", recs.replacedFor)
	}
	if notifier.calls != 0 {
		t.Fatalf("notifier must not fire when nothing qualifies, fired %d times", notifier.calls)
	}
	if len(cache.deleted) != 0 {
		t.Fatalf("cache must stay intact when nothing qualifies, deleted %v", cache.deleted)
	}
}

func TestRecommendationUsecase_Generate_ReplaceFailureSurfaces(t *testing.T) {
	userID, userSkills, careers := recommendationFixture()
	recs := &mockRecommendationRepo{replaceErr: errors.New("db down")}

	uc := NewRecommendationUsecase(recs, careers, userSkills, &mockCourseRepo{}, nil, 0, nil)

	if _, err := uc.Generate(context.Background(), userID, 5); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestRecommendationUsecase_GetRecommendations_Empty(t *testing.T) {
	uc := NewRecommendationUsecase(
		&mockRecommendationRepo{}, &mockCareerRepo{}, &mockUserSkillRepo{}, &mockCourseRepo{},
		nil, 0, nil,
	)

	_, err := uc.GetRecommendations(context.Background(), uuid.New())
	if !errors.Is(err, ErrNoRecommendationsFound) {
		t.Fatalf("expected ErrNoRecommendationsFound, got %v", err)
	}
}

func TestRecommendationUsecase_GetRecommendations_SuggestsCoursesAndCaches(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()

	recs := &mockRecommendationRepo{byUser: []repository.RecommendationWithCareer{
		{
			Recommendation: repository.Recommendation{
				ID:              uuid.New(),
				UserID:          userID,
				Score:           52.9,
				MatchPercentage: 67,
				Reason:          "Matched 2 out of 3 required skills",
			},
			Career: repository.CareerWithSkills{
				Career:         repository.Career{ID: uuid.New(), Title: "Data Scientist"},
				RequiredSkills: []repository.CareerSkill{{SkillID: skillID, Name: "Python"}},
			},
		},
	}}
	courses := &mockCourseRepo{teaching: []repository.CourseWithSkills{
		{Course: repository.Course{ID: uuid.New(), Title: "Data Analysis with Python"}},
	}}
	cache := newMockCache()

	uc := NewRecommendationUsecase(recs, &mockCareerRepo{}, &mockUserSkillRepo{}, courses, cache, time.Minute, nil)

	items, err := uc.GetRecommendations(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if len(items[0].SuggestedCourses) != 1 {
		t.Fatalf("expected 1 suggested course, got %d", len(items[0].SuggestedCourses))
	}
	if courses.lastLimit != suggestedCoursesPerCareer {
		t.Fatalf("expected course limit %d, got %d", suggestedCoursesPerCareer, courses.lastLimit)
	}
	if len(cache.store) != 1 {
		t.Fatalf("expected cache write, store=%v", cache.store)
	}

	// A second read must come from cache, not hit the course repo again.
	courses.teaching = nil
	again, err := uc.GetRecommendations(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err on cached read: %v", err)
	}
	if len(again) != 1 || len(again[0].SuggestedCourses) != 1 {
		t.Fatalf("expected cached result, got %+v", again)
	}
}

func TestRecommendationUsecase_Delete(t *testing.T) {
	cache := newMockCache()
	uc := NewRecommendationUsecase(
		&mockRecommendationRepo{}, &mockCareerRepo{}, &mockUserSkillRepo{}, &mockCourseRepo{},
		cache, time.Minute, nil,
	)

	userID := uuid.New()
	if err := uc.DeleteRecommendation(context.Background(), uuid.New(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cache.deleted) != 1 {
		t.Fatalf("expected cache invalidation, got %v", cache.deleted)
	}

	notFound := NewRecommendationUsecase(
		&mockRecommendationRepo{deleteErr: repository.ErrRecommendationNotFound},
		&mockCareerRepo{}, &mockUserSkillRepo{}, &mockCourseRepo{}, nil, 0, nil,
	)
	err := notFound.DeleteRecommendation(context.Background(), uuid.New(), userID)
	if !errors.Is(err, repository.ErrRecommendationNotFound) {
		t.Fatalf("expected ErrRecommendationNotFound, got %v", err)
	}
}
