package usecase

import (
	"context"
	"errors"

	"career-compass/internal/domain/recommend"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

const remediationCourseLimit = 10

type HeldSkillDetail struct {
	SkillID  uuid.UUID
	Name     string
	Category string
	Level    string
}

type MissingSkillDetail struct {
	SkillID  uuid.UUID
	Name     string
	Category string
}

type GapAnalysis struct {
	Career             repository.CareerWithSkills
	Readiness          int
	SkillsHeld         []HeldSkillDetail
	SkillsMissing      []MissingSkillDetail
	RemediationCourses []repository.CourseWithSkills
}

type GapUsecase interface {
	AnalyzeCareer(ctx context.Context, userID uuid.UUID, careerID uuid.UUID) (GapAnalysis, error)
}

type gapUsecase struct {
	careers    repository.CareerRepository
	userSkills repository.UserSkillRepository
	courses    repository.CourseRepository
}

func NewGapUsecase(
	careers repository.CareerRepository,
	userSkills repository.UserSkillRepository,
	courses repository.CourseRepository,
) GapUsecase {
	return &gapUsecase{careers: careers, userSkills: userSkills, courses: courses}
}

func (u *gapUsecase) AnalyzeCareer(ctx context.Context, userID uuid.UUID, careerID uuid.UUID) (GapAnalysis, error) {
	career, err := u.careers.FindByID(ctx, careerID)
	if err != nil {
		if errors.Is(err, repository.ErrCareerNotFound) {
			return GapAnalysis{}, err
		}
		return GapAnalysis{}, ErrInternal
	}

	skills, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return GapAnalysis{}, ErrInternal
	}

	required := make([]uuid.UUID, 0, len(career.RequiredSkills))
	byID := make(map[uuid.UUID]repository.CareerSkill, len(career.RequiredSkills))
	for _, s := range career.RequiredSkills {
		required = append(required, s.SkillID)
		byID[s.SkillID] = s
	}

	gap := recommend.AnalyzeGap(toEngineSkills(skills), required)

	out := GapAnalysis{
		Career:        career,
		Readiness:     gap.Readiness,
		SkillsHeld:    make([]HeldSkillDetail, 0, len(gap.Held)),
		SkillsMissing: make([]MissingSkillDetail, 0, len(gap.Missing)),
	}
	for _, h := range gap.Held {
		cs := byID[h.SkillID]
		out.SkillsHeld = append(out.SkillsHeld, HeldSkillDetail{
			SkillID:  h.SkillID,
			Name:     cs.Name,
			Category: cs.Category,
			Level:    string(h.Level),
		})
	}
	for _, sid := range gap.Missing {
		cs := byID[sid]
		out.SkillsMissing = append(out.SkillsMissing, MissingSkillDetail{
			SkillID:  sid,
			Name:     cs.Name,
			Category: cs.Category,
		})
	}

	if len(gap.Missing) > 0 {
		courses, err := u.courses.FindTeachingAny(ctx, gap.Missing, remediationCourseLimit)
		if err != nil {
			return GapAnalysis{}, ErrInternal
		}
		out.RemediationCourses = courses
	}

	return out, nil
}
