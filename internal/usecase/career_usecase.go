package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var ErrCareerTitleTaken = errors.New("career title already exists")

type CareerInput struct {
	Title         string
	Description   string
	Industry      string
	AverageSalary int64
	GrowthRate    float64
	SkillIDs      []uuid.UUID
}

type CareerUsecase interface {
	List(ctx context.Context, f repository.CareerFilter) ([]repository.CareerWithSkills, int64, error)
	Get(ctx context.Context, id uuid.UUID) (repository.CareerWithSkills, error)
	Create(ctx context.Context, in CareerInput) (repository.CareerWithSkills, error)
	Update(ctx context.Context, id uuid.UUID, in CareerInput) (repository.CareerWithSkills, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type careerUsecase struct {
	careers repository.CareerRepository
	skills  repository.SkillRepository
}

func NewCareerUsecase(careers repository.CareerRepository, skills repository.SkillRepository) CareerUsecase {
	return &careerUsecase{careers: careers, skills: skills}
}

func (u *careerUsecase) List(ctx context.Context, f repository.CareerFilter) ([]repository.CareerWithSkills, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	out, total, err := u.careers.ListCareers(ctx, f)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return out, total, nil
}

func (u *careerUsecase) Get(ctx context.Context, id uuid.UUID) (repository.CareerWithSkills, error) {
	c, err := u.careers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCareerNotFound) {
			return repository.CareerWithSkills{}, err
		}
		return repository.CareerWithSkills{}, ErrInternal
	}
	return c, nil
}

func (u *careerUsecase) Create(ctx context.Context, in CareerInput) (repository.CareerWithSkills, error) {
	c, skillIDs, err := u.validate(ctx, in)
	if err != nil {
		return repository.CareerWithSkills{}, err
	}

	taken, err := u.careers.ExistsByTitle(ctx, c.Title, uuid.Nil)
	if err != nil {
		return repository.CareerWithSkills{}, ErrInternal
	}
	if taken {
		return repository.CareerWithSkills{}, ErrCareerTitleTaken
	}

	c.ID = uuid.New()
	created, err := u.careers.CreateCareer(ctx, c, skillIDs)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.CareerWithSkills{}, ErrCareerTitleTaken
		}
		if isForeignKeyViolation(err) {
			return repository.CareerWithSkills{}, repository.ErrSkillNotFound
		}
		return repository.CareerWithSkills{}, ErrInternal
	}
	return created, nil
}

func (u *careerUsecase) Update(ctx context.Context, id uuid.UUID, in CareerInput) (repository.CareerWithSkills, error) {
	c, skillIDs, err := u.validate(ctx, in)
	if err != nil {
		return repository.CareerWithSkills{}, err
	}
	c.ID = id

	taken, err := u.careers.ExistsByTitle(ctx, c.Title, id)
	if err != nil {
		return repository.CareerWithSkills{}, ErrInternal
	}
	if taken {
		return repository.CareerWithSkills{}, ErrCareerTitleTaken
	}

	updated, err := u.careers.UpdateCareer(ctx, c, skillIDs)
	if err != nil {
		if errors.Is(err, repository.ErrCareerNotFound) {
			return repository.CareerWithSkills{}, err
		}
		if isUniqueViolation(err) {
			return repository.CareerWithSkills{}, ErrCareerTitleTaken
		}
		if isForeignKeyViolation(err) {
			return repository.CareerWithSkills{}, repository.ErrSkillNotFound
		}
		return repository.CareerWithSkills{}, ErrInternal
	}
	return updated, nil
}

func (u *careerUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.careers.DeleteCareer(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCareerNotFound) {
			return err
		}
		return ErrInternal
	}
	return nil
}

func (u *careerUsecase) validate(ctx context.Context, in CareerInput) (repository.Career, []uuid.UUID, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return repository.Career{}, nil, ErrInvalidInput
	}

	seen := make(map[uuid.UUID]struct{}, len(in.SkillIDs))
	skillIDs := make([]uuid.UUID, 0, len(in.SkillIDs))
	for _, sid := range in.SkillIDs {
		if sid == uuid.Nil {
			return repository.Career{}, nil, ErrInvalidInput
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
			return repository.Career{}, nil, ErrInternal
		}
		if !exists {
			return repository.Career{}, nil, repository.ErrSkillNotFound
		}
	}

	return repository.Career{
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Industry:      strings.TrimSpace(in.Industry),
		AverageSalary: in.AverageSalary,
		GrowthRate:    in.GrowthRate,
	}, skillIDs, nil
}
