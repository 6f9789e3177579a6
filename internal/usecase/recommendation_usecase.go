package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"career-compass/internal/domain/recommend"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNoSkillsRegistered     = errors.New("no skills registered")
	ErrNoRecommendationsFound = errors.New("no recommendations found")
)

const (
	defaultRecommendationLimit = 5
	maxRecommendationLimit     = 20

	suggestedCoursesPerCareer = 3
)

type RecommendationDetail struct {
	ID               uuid.UUID
	Score            float64
	MatchPercentage  int
	Reason           string
	CreatedAt        time.Time
	Career           repository.CareerWithSkills
	SuggestedCourses []repository.CourseWithSkills
}

type RecommendationUsecase interface {
	Generate(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendationDetail, error)
	GetRecommendations(ctx context.Context, userID uuid.UUID) ([]RecommendationDetail, error)
	DeleteRecommendation(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type recommendationUsecase struct {
	recommendations repository.RecommendationRepository
	careers         repository.CareerRepository
	userSkills      repository.UserSkillRepository
	courses         repository.CourseRepository

	cache    RecommendationCache
	cacheTTL time.Duration
	notifier RecommendationNotifier
}

func NewRecommendationUsecase(
	recommendations repository.RecommendationRepository,
	careers repository.CareerRepository,
	userSkills repository.UserSkillRepository,
	courses repository.CourseRepository,
	cache RecommendationCache,
	cacheTTL time.Duration,
	notifier RecommendationNotifier,
) RecommendationUsecase {
	return &recommendationUsecase{
		recommendations: recommendations,
		careers:         careers,
		userSkills:      userSkills,
		courses:         courses,
		cache:           cache,
		cacheTTL:        cacheTTL,
		notifier:        notifier,
	}
}

func recommendationCacheKey(userID uuid.UUID) string {
	return "recommendations:" + userID.String()
}

func (u *recommendationUsecase) Generate(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendationDetail, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	skills, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(skills) == 0 {
		return nil, ErrNoSkillsRegistered
	}

	careers, err := u.careers.FindAllWithSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	scores := recommend.Rank(toEngineSkills(skills), toEngineCareers(careers), limit)
	if len(scores) == 0 {
		// No career overlaps the user's skills; the previously stored
		// set is left untouched.
		return []RecommendationDetail{}, nil
	}

	recs := make([]repository.Recommendation, 0, len(scores))
	for _, s := range scores {
		recs = append(recs, repository.Recommendation{
			ID:              uuid.New(),
			UserID:          userID,
			CareerID:        s.CareerID,
			Score:           s.Score,
			MatchPercentage: s.MatchPercentage,
			Reason:          fmt.Sprintf("Matched %d out of %d required skills", s.MatchedSkills, s.RequiredSkills),
		})
	}

	if err := u.recommendations.ReplaceForUser(ctx, userID, recs); err != nil {
		return nil, ErrInternal
	}

	details, err := u.loadDetails(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	u.invalidateCache(ctx, userID)
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, recommendationCacheKey(userID), details, u.cacheTTL); err != nil {
			log.Printf("[RECOMMENDATION] cache write failed: %v", err)
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyRecommendationsUpdated(userID.String(), len(details))
	}

	return details, nil
}

func (u *recommendationUsecase) GetRecommendations(ctx context.Context, userID uuid.UUID) ([]RecommendationDetail, error) {
	key := recommendationCacheKey(userID)
	if u.cache != nil {
		var cached []RecommendationDetail
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("[RECOMMENDATION] cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	out, err := u.loadDetails(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(out) == 0 {
		return nil, ErrNoRecommendationsFound
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.cacheTTL); err != nil {
			log.Printf("[RECOMMENDATION] cache write failed: %v", err)
		}
	}

	return out, nil
}

// loadDetails reads the persisted set joined with career detail and
// attaches course suggestions covering each career's required skills.
func (u *recommendationUsecase) loadDetails(ctx context.Context, userID uuid.UUID) ([]RecommendationDetail, error) {
	rows, err := u.recommendations.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]RecommendationDetail, 0, len(rows))
	for _, row := range rows {
		detail := RecommendationDetail{
			ID:              row.ID,
			Score:           row.Score,
			MatchPercentage: row.MatchPercentage,
			Reason:          row.Reason,
			CreatedAt:       row.CreatedAt,
			Career:          row.Career,
		}

		skillIDs := make([]uuid.UUID, 0, len(row.Career.RequiredSkills))
		for _, s := range row.Career.RequiredSkills {
			skillIDs = append(skillIDs, s.SkillID)
		}
		if len(skillIDs) > 0 {
			courses, err := u.courses.FindTeachingAny(ctx, skillIDs, suggestedCoursesPerCareer)
			if err != nil {
				return nil, err
			}
			detail.SuggestedCourses = courses
		}

		out = append(out, detail)
	}
	return out, nil
}

func (u *recommendationUsecase) DeleteRecommendation(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := u.recommendations.DeleteByID(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrRecommendationNotFound) {
			return err
		}
		return ErrInternal
	}
	u.invalidateCache(ctx, userID)
	return nil
}

func (u *recommendationUsecase) invalidateCache(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, recommendationCacheKey(userID)); err != nil {
		log.Printf("[RECOMMENDATION] cache invalidation failed: %v", err)
	}
}

func toEngineSkills(skills []repository.UserSkill) []recommend.UserSkill {
	out := make([]recommend.UserSkill, 0, len(skills))
	for _, s := range skills {
		level, ok := recommend.ParseLevel(s.Level)
		if !ok {
			level = recommend.LevelBeginner
		}
		out = append(out, recommend.UserSkill{SkillID: s.SkillID, Level: level})
	}
	return out
}

func toEngineCareers(careers []repository.CareerWithSkills) []recommend.Career {
	out := make([]recommend.Career, 0, len(careers))
	for _, c := range careers {
		required := make([]uuid.UUID, 0, len(c.RequiredSkills))
		for _, s := range c.RequiredSkills {
			required = append(required, s.SkillID)
		}
		out = append(out, recommend.Career{ID: c.ID, Title: c.Title, RequiredSkills: required})
	}
	return out
}
