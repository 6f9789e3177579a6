package usecase

import (
	"context"
	"encoding/json"
	"time"

	"career-compass/internal/repository"

	"github.com/google/uuid"
)

type mockUserSkillRepo struct {
	items            []repository.UserSkill
	findErr          error
	created          *repository.UserSkill
	allCreated       []repository.UserSkill
	createErr        error
	createErrBySkill map[uuid.UUID]error
	updated          *repository.UserSkill
	updateErr        error
	deleteErr        error
	singleItem       repository.UserSkill
	singleErr        error
	holders          []repository.SkillHolder
	holdersErr       error
}

func (m *mockUserSkillRepo) FindByUserID(context.Context, uuid.UUID) ([]repository.UserSkill, error) {
	return m.items, m.findErr
}
func (m *mockUserSkillRepo) FindByUserAndSkill(context.Context, uuid.UUID, uuid.UUID) (repository.UserSkill, error) {
	return m.singleItem, m.singleErr
}
func (m *mockUserSkillRepo) FindBySkill(_ context.Context, _ uuid.UUID, level string) ([]repository.SkillHolder, error) {
	if m.holdersErr != nil {
		return nil, m.holdersErr
	}
	if level == "" {
		return m.holders, nil
	}
	out := make([]repository.SkillHolder, 0, len(m.holders))
	for _, h := range m.holders {
		if h.Level == level {
			out = append(out, h)
		}
	}
	return out, nil
}
func (m *mockUserSkillRepo) Create(_ context.Context, us repository.UserSkill) (repository.UserSkill, error) {
	if m.createErr != nil {
		return repository.UserSkill{}, m.createErr
	}
	if m.createErrBySkill != nil {
		if err, ok := m.createErrBySkill[us.SkillID]; ok {
			return repository.UserSkill{}, err
		}
	}
	m.created = &us
	m.allCreated = append(m.allCreated, us)
	return us, nil
}
func (m *mockUserSkillRepo) UpdateLevel(_ context.Context, id uuid.UUID, userID uuid.UUID, level string) (repository.UserSkill, error) {
	if m.updateErr != nil {
		return repository.UserSkill{}, m.updateErr
	}
	us := repository.UserSkill{ID: id, UserID: userID, Level: level}
	m.updated = &us
	return us, nil
}
func (m *mockUserSkillRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return m.deleteErr
}

type mockCareerRepo struct {
	all     []repository.CareerWithSkills
	allErr  error
	byID    repository.CareerWithSkills
	byIDErr error
}

func (m *mockCareerRepo) FindAllWithSkills(context.Context) ([]repository.CareerWithSkills, error) {
	return m.all, m.allErr
}
func (m *mockCareerRepo) FindByID(context.Context, uuid.UUID) (repository.CareerWithSkills, error) {
	return m.byID, m.byIDErr
}
func (m *mockCareerRepo) ListCareers(context.Context, repository.CareerFilter) ([]repository.CareerWithSkills, int64, error) {
	return m.all, int64(len(m.all)), m.allErr
}
func (m *mockCareerRepo) ExistsByTitle(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}
func (m *mockCareerRepo) CreateCareer(_ context.Context, c repository.Career, _ []uuid.UUID) (repository.CareerWithSkills, error) {
	return repository.CareerWithSkills{Career: c}, nil
}
func (m *mockCareerRepo) UpdateCareer(_ context.Context, c repository.Career, _ []uuid.UUID) (repository.CareerWithSkills, error) {
	return repository.CareerWithSkills{Career: c}, nil
}
func (m *mockCareerRepo) DeleteCareer(context.Context, uuid.UUID) error { return nil }
func (m *mockCareerRepo) CountCareers(context.Context) (int64, error)  { return 0, nil }

type mockCourseRepo struct {
	teaching    []repository.CourseWithSkills
	teachingErr error

	lastSkillIDs []uuid.UUID
	lastLimit    int
}

func (m *mockCourseRepo) ListCourses(context.Context, repository.CourseFilter) ([]repository.CourseWithSkills, int64, error) {
	return nil, 0, nil
}
func (m *mockCourseRepo) GetCourseByID(context.Context, uuid.UUID) (repository.CourseWithSkills, error) {
	return repository.CourseWithSkills{}, repository.ErrCourseNotFound
}
func (m *mockCourseRepo) FindTeachingAny(_ context.Context, skillIDs []uuid.UUID, limit int) ([]repository.CourseWithSkills, error) {
	m.lastSkillIDs = skillIDs
	m.lastLimit = limit
	return m.teaching, m.teachingErr
}
func (m *mockCourseRepo) CreateCourse(_ context.Context, c repository.Course, _ []uuid.UUID) (repository.CourseWithSkills, error) {
	return repository.CourseWithSkills{Course: c}, nil
}
func (m *mockCourseRepo) UpdateCourse(_ context.Context, c repository.Course, _ []uuid.UUID) (repository.CourseWithSkills, error) {
	return repository.CourseWithSkills{Course: c}, nil
}
func (m *mockCourseRepo) DeleteCourse(context.Context, uuid.UUID) error { return nil }
func (m *mockCourseRepo) CountCourses(context.Context) (int64, error)  { return 0, nil }

type mockRecommendationRepo struct {
	replaced    []repository.Recommendation
	replacedFor uuid.UUID
	replaceErr  error

	careersByID map[uuid.UUID]repository.CareerWithSkills

	byUser    []repository.RecommendationWithCareer
	byUserErr error

	deleteErr error
}

func (m *mockRecommendationRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, recs []repository.Recommendation) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replacedFor = userID
	m.replaced = recs

	m.byUser = m.byUser[:0]
	for _, rec := range recs {
		m.byUser = append(m.byUser, repository.RecommendationWithCareer{
			Recommendation: rec,
			Career:         m.careersByID[rec.CareerID],
		})
	}
	return nil
}
func careersByID(careers []repository.CareerWithSkills) map[uuid.UUID]repository.CareerWithSkills {
	out := make(map[uuid.UUID]repository.CareerWithSkills, len(careers))
	for _, c := range careers {
		out[c.ID] = c
	}
	return out
}

func (m *mockRecommendationRepo) FindByUser(context.Context, uuid.UUID) ([]repository.RecommendationWithCareer, error) {
	return m.byUser, m.byUserErr
}
func (m *mockRecommendationRepo) DeleteByID(context.Context, uuid.UUID, uuid.UUID) error {
	return m.deleteErr
}
func (m *mockRecommendationRepo) CountRecommendations(context.Context) (int64, error) {
	return int64(len(m.byUser)), nil
}
func (m *mockRecommendationRepo) TopRecommendedCareers(context.Context, int) ([]repository.CareerRecommendationCount, error) {
	return nil, nil
}

type mockSkillRepo struct {
	exists        bool
	existsBySkill map[uuid.UUID]bool
	existsErr     error
}

func (m *mockSkillRepo) GetAllSkills(context.Context, repository.SkillFilter) ([]repository.Skill, error) {
	return nil, nil
}
func (m *mockSkillRepo) GetSkillByID(context.Context, uuid.UUID) (repository.Skill, error) {
	return repository.Skill{}, repository.ErrSkillNotFound
}
func (m *mockSkillRepo) SkillExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if m.existsBySkill != nil {
		return m.existsBySkill[id], m.existsErr
	}
	return m.exists, m.existsErr
}
func (m *mockSkillRepo) SkillExistsByName(context.Context, string) (bool, error) {
	return false, nil
}
func (m *mockSkillRepo) CreateSkill(_ context.Context, s repository.Skill) (repository.Skill, error) {
	return s, nil
}
func (m *mockSkillRepo) UpdateSkill(_ context.Context, s repository.Skill) (repository.Skill, error) {
	return s, nil
}
func (m *mockSkillRepo) DeleteSkill(context.Context, uuid.UUID) error { return nil }
func (m *mockSkillRepo) CountSkills(context.Context) (int64, error)   { return 0, nil }

type mockAnalyticsRepo struct {
	inserted    []repository.AnalyticsEvent
	insertErr   error
	counts      []repository.EventTypeCount
	countErr    error
	userEvents  []repository.AnalyticsEvent
	userSummary []repository.UserEventSummary
	userErr     error

	lastUserID uuid.UUID
	lastLimit  int
}

func (m *mockAnalyticsRepo) InsertEvent(_ context.Context, ev repository.AnalyticsEvent) (repository.AnalyticsEvent, error) {
	if m.insertErr != nil {
		return repository.AnalyticsEvent{}, m.insertErr
	}
	m.inserted = append(m.inserted, ev)
	return ev, nil
}
func (m *mockAnalyticsRepo) CountEventsByType(context.Context, *time.Time) ([]repository.EventTypeCount, error) {
	return m.counts, m.countErr
}
func (m *mockAnalyticsRepo) FindEventsByUser(_ context.Context, userID uuid.UUID, limit int) ([]repository.AnalyticsEvent, error) {
	m.lastUserID = userID
	m.lastLimit = limit
	return m.userEvents, m.userErr
}
func (m *mockAnalyticsRepo) SummarizeEventsByUser(context.Context, uuid.UUID) ([]repository.UserEventSummary, error) {
	return m.userSummary, m.userErr
}

type mockCache struct {
	store   map[string][]byte
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}
func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}
func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	m.deleted = append(m.deleted, key)
	return nil
}

type mockNotifier struct {
	userID string
	count  int
	calls  int
}

func (m *mockNotifier) NotifyRecommendationsUpdated(userID string, count int) {
	m.userID = userID
	m.count = count
	m.calls++
}
