package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var ErrSkillNameTaken = errors.New("skill name already exists")

type SkillUsecase interface {
	List(ctx context.Context, f repository.SkillFilter) ([]repository.Skill, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Skill, error)
	Create(ctx context.Context, s repository.Skill) (repository.Skill, error)
	Update(ctx context.Context, s repository.Skill) (repository.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type skillUsecase struct {
	skills repository.SkillRepository
}

func NewSkillUsecase(skills repository.SkillRepository) SkillUsecase {
	return &skillUsecase{skills: skills}
}

func (u *skillUsecase) List(ctx context.Context, f repository.SkillFilter) ([]repository.Skill, error) {
	out, err := u.skills.GetAllSkills(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *skillUsecase) Get(ctx context.Context, id uuid.UUID) (repository.Skill, error) {
	s, err := u.skills.GetSkillByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.Skill{}, err
		}
		return repository.Skill{}, ErrInternal
	}
	return s, nil
}

func (u *skillUsecase) Create(ctx context.Context, s repository.Skill) (repository.Skill, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return repository.Skill{}, ErrInvalidInput
	}

	taken, err := u.skills.SkillExistsByName(ctx, s.Name)
	if err != nil {
		return repository.Skill{}, ErrInternal
	}
	if taken {
		return repository.Skill{}, ErrSkillNameTaken
	}

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	created, err := u.skills.CreateSkill(ctx, s)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.Skill{}, ErrSkillNameTaken
		}
		return repository.Skill{}, ErrInternal
	}
	return created, nil
}

func (u *skillUsecase) Update(ctx context.Context, s repository.Skill) (repository.Skill, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return repository.Skill{}, ErrInvalidInput
	}

	updated, err := u.skills.UpdateSkill(ctx, s)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.Skill{}, err
		}
		if isUniqueViolation(err) {
			return repository.Skill{}, ErrSkillNameTaken
		}
		return repository.Skill{}, ErrInternal
	}
	return updated, nil
}

func (u *skillUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.skills.DeleteSkill(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return err
		}
		return ErrInternal
	}
	return nil
}
