package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var validDifficulties = map[string]struct{}{
	"BEGINNER":     {},
	"INTERMEDIATE": {},
	"ADVANCED":     {},
}

type CourseInput struct {
	Title      string
	Provider   string
	URL        string
	Difficulty string
	SkillIDs   []uuid.UUID
}

type CourseUsecase interface {
	List(ctx context.Context, f repository.CourseFilter) ([]repository.CourseWithSkills, int64, error)
	Get(ctx context.Context, id uuid.UUID) (repository.CourseWithSkills, error)
	Create(ctx context.Context, in CourseInput) (repository.CourseWithSkills, error)
	Update(ctx context.Context, id uuid.UUID, in CourseInput) (repository.CourseWithSkills, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseUsecase struct {
	courses repository.CourseRepository
	skills  repository.SkillRepository
}

func NewCourseUsecase(courses repository.CourseRepository, skills repository.SkillRepository) CourseUsecase {
	return &courseUsecase{courses: courses, skills: skills}
}

func (u *courseUsecase) List(ctx context.Context, f repository.CourseFilter) ([]repository.CourseWithSkills, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	out, total, err := u.courses.ListCourses(ctx, f)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return out, total, nil
}

func (u *courseUsecase) Get(ctx context.Context, id uuid.UUID) (repository.CourseWithSkills, error) {
	c, err := u.courses.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return repository.CourseWithSkills{}, err
		}
		return repository.CourseWithSkills{}, ErrInternal
	}
	return c, nil
}

func (u *courseUsecase) Create(ctx context.Context, in CourseInput) (repository.CourseWithSkills, error) {
	c, skillIDs, err := u.validate(ctx, in)
	if err != nil {
		return repository.CourseWithSkills{}, err
	}

	c.ID = uuid.New()
	created, err := u.courses.CreateCourse(ctx, c, skillIDs)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.CourseWithSkills{}, repository.ErrSkillNotFound
		}
		return repository.CourseWithSkills{}, ErrInternal
	}
	return created, nil
}

func (u *courseUsecase) Update(ctx context.Context, id uuid.UUID, in CourseInput) (repository.CourseWithSkills, error) {
	c, skillIDs, err := u.validate(ctx, in)
	if err != nil {
		return repository.CourseWithSkills{}, err
	}
	c.ID = id

	updated, err := u.courses.UpdateCourse(ctx, c, skillIDs)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return repository.CourseWithSkills{}, err
		}
		if isForeignKeyViolation(err) {
			return repository.CourseWithSkills{}, repository.ErrSkillNotFound
		}
		return repository.CourseWithSkills{}, ErrInternal
	}
	return updated, nil
}

func (u *courseUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.courses.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return err
		}
		return ErrInternal
	}
	return nil
}

func (u *courseUsecase) validate(ctx context.Context, in CourseInput) (repository.Course, []uuid.UUID, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return repository.Course{}, nil, ErrInvalidInput
	}
	difficulty := strings.ToUpper(strings.TrimSpace(in.Difficulty))
	if _, ok := validDifficulties[difficulty]; !ok {
		return repository.Course{}, nil, ErrInvalidInput
	}

	seen := make(map[uuid.UUID]struct{}, len(in.SkillIDs))
	skillIDs := make([]uuid.UUID, 0, len(in.SkillIDs))
	for _, sid := range in.SkillIDs {
		if sid == uuid.Nil {
			return repository.Course{}, nil, ErrInvalidInput
		}
		if _, dup := seen[sid]; dup {
			continue
		}
		seen[sid] = struct{}{}
		skillIDs = append(skillIDs, sid)
	}

	for _, sid := range skillIDs {
		exists, err := u.skills.SkillExistsByID(ctx, sid)
		if err != nil {
			return repository.Course{}, nil, ErrInternal
		}
		if !exists {
			return repository.Course{}, nil, repository.ErrSkillNotFound
		}
	}

	return repository.Course{
		Title:      title,
		Provider:   strings.TrimSpace(in.Provider),
		URL:        strings.TrimSpace(in.URL),
		Difficulty: difficulty,
	}, skillIDs, nil
}
