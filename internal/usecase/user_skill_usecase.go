package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/domain/recommend"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUnknownProficiencyLevel = errors.New("unknown proficiency level")
	ErrSkillAlreadyRegistered  = errors.New("skill already registered for user")
)

// BulkSkillInput is one entry of a bulk add; an empty level defaults
// to BEGINNER.
type BulkSkillInput struct {
	SkillID uuid.UUID
	Level   string
}

type BulkSkillFailure struct {
	SkillID uuid.UUID
	Reason  string
}

// BulkAddResult partitions a bulk add per entry: created rows, entries
// skipped because the skill was already registered, and entries that
// failed validation. One bad entry never aborts the rest.
type BulkAddResult struct {
	Added   []repository.UserSkill
	Skipped []BulkSkillFailure
	Errors  []BulkSkillFailure
}

// UsersBySkill lists the holders of one skill with per-level counts.
type UsersBySkill struct {
	Users   []repository.SkillHolder
	Total   int
	ByLevel map[string]int
}

type UserSkillUsecase interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error)
	Add(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level string) (repository.UserSkill, error)
	BulkAdd(ctx context.Context, userID uuid.UUID, items []BulkSkillInput) (BulkAddResult, error)
	FindUsersBySkill(ctx context.Context, skillID uuid.UUID, level string) (UsersBySkill, error)
	UpdateLevel(ctx context.Context, id uuid.UUID, userID uuid.UUID, level string) (repository.UserSkill, error)
	Remove(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type userSkillUsecase struct {
	userSkills repository.UserSkillRepository
	skills     repository.SkillRepository
}

func NewUserSkillUsecase(userSkills repository.UserSkillRepository, skills repository.SkillRepository) UserSkillUsecase {
	return &userSkillUsecase{userSkills: userSkills, skills: skills}
}

func (u *userSkillUsecase) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	out, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *userSkillUsecase) Add(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level string) (repository.UserSkill, error) {
	lvl, ok := recommend.ParseLevel(level)
	if !ok {
		return repository.UserSkill{}, ErrUnknownProficiencyLevel
	}
	if skillID == uuid.Nil {
		return repository.UserSkill{}, ErrInvalidInput
	}

	exists, err := u.skills.SkillExistsByID(ctx, skillID)
	if err != nil {
		return repository.UserSkill{}, ErrInternal
	}
	if !exists {
		return repository.UserSkill{}, repository.ErrSkillNotFound
	}

	created, err := u.userSkills.Create(ctx, repository.UserSkill{
		ID:      uuid.New(),
		UserID:  userID,
		SkillID: skillID,
		Level:   string(lvl),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return repository.UserSkill{}, ErrSkillAlreadyRegistered
		}
		if isForeignKeyViolation(err) {
			return repository.UserSkill{}, repository.ErrSkillNotFound
		}
		return repository.UserSkill{}, ErrInternal
	}
	return created, nil
}

func (u *userSkillUsecase) BulkAdd(ctx context.Context, userID uuid.UUID, items []BulkSkillInput) (BulkAddResult, error) {
	if len(items) == 0 {
		return BulkAddResult{}, ErrInvalidInput
	}

	result := BulkAddResult{
		Added:   []repository.UserSkill{},
		Skipped: []BulkSkillFailure{},
		Errors:  []BulkSkillFailure{},
	}
	for _, item := range items {
		level := item.Level
		if level == "" {
			level = string(recommend.LevelBeginner)
		}

		created, err := u.Add(ctx, userID, item.SkillID, level)
		switch {
		case err == nil:
			result.Added = append(result.Added, created)
		case errors.Is(err, ErrSkillAlreadyRegistered):
			result.Skipped = append(result.Skipped, BulkSkillFailure{SkillID: item.SkillID, Reason: "already registered"})
		case errors.Is(err, repository.ErrSkillNotFound):
			result.Errors = append(result.Errors, BulkSkillFailure{SkillID: item.SkillID, Reason: "skill not found"})
		case errors.Is(err, ErrUnknownProficiencyLevel):
			result.Errors = append(result.Errors, BulkSkillFailure{SkillID: item.SkillID, Reason: "unknown proficiency level"})
		case errors.Is(err, ErrInvalidInput):
			result.Errors = append(result.Errors, BulkSkillFailure{SkillID: item.SkillID, Reason: "skill id is required"})
		default:
			return BulkAddResult{}, ErrInternal
		}
	}
	return result, nil
}

func (u *userSkillUsecase) FindUsersBySkill(ctx context.Context, skillID uuid.UUID, level string) (UsersBySkill, error) {
	if level != "" {
		lvl, ok := recommend.ParseLevel(strings.ToUpper(level))
		if !ok {
			return UsersBySkill{}, ErrUnknownProficiencyLevel
		}
		level = string(lvl)
	}

	exists, err := u.skills.SkillExistsByID(ctx, skillID)
	if err != nil {
		return UsersBySkill{}, ErrInternal
	}
	if !exists {
		return UsersBySkill{}, repository.ErrSkillNotFound
	}

	holders, err := u.userSkills.FindBySkill(ctx, skillID, level)
	if err != nil {
		return UsersBySkill{}, ErrInternal
	}

	byLevel := map[string]int{
		string(recommend.LevelBeginner):     0,
		string(recommend.LevelIntermediate): 0,
		string(recommend.LevelAdvanced):     0,
	}
	for _, h := range holders {
		byLevel[h.Level]++
	}
	return UsersBySkill{Users: holders, Total: len(holders), ByLevel: byLevel}, nil
}

func (u *userSkillUsecase) UpdateLevel(ctx context.Context, id uuid.UUID, userID uuid.UUID, level string) (repository.UserSkill, error) {
	lvl, ok := recommend.ParseLevel(level)
	if !ok {
		return repository.UserSkill{}, ErrUnknownProficiencyLevel
	}

	updated, err := u.userSkills.UpdateLevel(ctx, id, userID, string(lvl))
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) || errors.Is(err, repository.ErrUserSkillForbidden) {
			return repository.UserSkill{}, err
		}
		return repository.UserSkill{}, ErrInternal
	}
	return updated, nil
}

func (u *userSkillUsecase) Remove(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := u.userSkills.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) || errors.Is(err, repository.ErrUserSkillForbidden) {
			return err
		}
		return ErrInternal
	}
	return nil
}
