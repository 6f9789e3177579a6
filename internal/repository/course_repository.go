package repository

import (
	"context"
	"database/sql"
	"errors"

	"career-compass/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCourseNotFound = errors.New("course not found")

type Course struct {
	ID         uuid.UUID
	Title      string
	Provider   string
	URL        string
	Difficulty string
}

type CourseSkill struct {
	SkillID uuid.UUID
	Name    string
}

type CourseWithSkills struct {
	Course
	SkillsTaught []CourseSkill
}

type CourseFilter struct {
	Provider   string
	Difficulty string
	Limit      int
	Offset     int
}

type CourseRepository interface {
	ListCourses(ctx context.Context, f CourseFilter) ([]CourseWithSkills, int64, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (CourseWithSkills, error)
	FindTeachingAny(ctx context.Context, skillIDs []uuid.UUID, limit int) ([]CourseWithSkills, error)
	CreateCourse(ctx context.Context, c Course, skillIDs []uuid.UUID) (CourseWithSkills, error)
	UpdateCourse(ctx context.Context, c Course, skillIDs []uuid.UUID) (CourseWithSkills, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	CountCourses(ctx context.Context) (int64, error)
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) ListCourses(ctx context.Context, f CourseFilter) ([]CourseWithSkills, int64, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, provider, url, difficulty
		 FROM courses
		 WHERE ($1 = '' OR provider = $1)
		   AND ($2 = '' OR difficulty = $2)
		 ORDER BY title ASC, id ASC
		 LIMIT $3 OFFSET $4`,
		f.Provider, f.Difficulty, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, ids, err := scanCourses(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachSkills(ctx, out, ids); err != nil {
		return nil, 0, err
	}

	var total int64
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM courses
		 WHERE ($1 = '' OR provider = $1) AND ($2 = '' OR difficulty = $2)`,
		f.Provider, f.Difficulty,
	)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *PostgresCourseRepository) GetCourseByID(ctx context.Context, id uuid.UUID) (CourseWithSkills, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, provider, url, difficulty FROM courses WHERE id = $1`, id)

	var c CourseWithSkills
	if err := row.Scan(&c.ID, &c.Title, &c.Provider, &c.URL, &c.Difficulty); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return CourseWithSkills{}, ErrCourseNotFound
		}
		return CourseWithSkills{}, err
	}

	c.SkillsTaught = make([]CourseSkill, 0)
	out := []CourseWithSkills{c}
	if err := r.attachSkills(ctx, out, []uuid.UUID{c.ID}); err != nil {
		return CourseWithSkills{}, err
	}
	return out[0], nil
}

// FindTeachingAny returns courses whose taught-skill set intersects the
// given skill ids, ordered by title then id so remediation suggestions are
// deterministic.
func (r *PostgresCourseRepository) FindTeachingAny(ctx context.Context, skillIDs []uuid.UUID, limit int) ([]CourseWithSkills, error) {
	if len(skillIDs) == 0 {
		return []CourseWithSkills{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT c.id, c.title, c.provider, c.url, c.difficulty
		 FROM courses c
		 JOIN course_skills cs ON cs.course_id = c.id
		 WHERE cs.skill_id = ANY($1)
		 ORDER BY c.title ASC, c.id ASC
		 LIMIT $2`,
		skillIDs, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, ids, err := scanCourses(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachSkills(ctx, out, ids); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) CreateCourse(ctx context.Context, c Course, skillIDs []uuid.UUID) (CourseWithSkills, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return CourseWithSkills{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO courses (id, title, provider, url, difficulty) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Title, c.Provider, c.URL, c.Difficulty,
	)
	if err != nil {
		return CourseWithSkills{}, err
	}

	for _, sid := range skillIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO course_skills (id, course_id, skill_id) VALUES ($1, $2, $3)
			 ON CONFLICT (course_id, skill_id) DO NOTHING`,
			uuid.New(), c.ID, sid,
		)
		if err != nil {
			return CourseWithSkills{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CourseWithSkills{}, err
	}

	return r.GetCourseByID(ctx, c.ID)
}

func (r *PostgresCourseRepository) UpdateCourse(ctx context.Context, c Course, skillIDs []uuid.UUID) (CourseWithSkills, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return CourseWithSkills{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE courses SET title = $1, provider = $2, url = $3, difficulty = $4, updated_at = now() WHERE id = $5`,
		c.Title, c.Provider, c.URL, c.Difficulty, c.ID,
	)
	if err != nil {
		return CourseWithSkills{}, err
	}
	if affected == 0 {
		return CourseWithSkills{}, ErrCourseNotFound
	}

	if skillIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM course_skills WHERE course_id = $1`, c.ID); err != nil {
			return CourseWithSkills{}, err
		}
		for _, sid := range skillIDs {
			_, err = tx.Exec(ctx,
				`INSERT INTO course_skills (id, course_id, skill_id) VALUES ($1, $2, $3)
				 ON CONFLICT (course_id, skill_id) DO NOTHING`,
				uuid.New(), c.ID, sid,
			)
			if err != nil {
				return CourseWithSkills{}, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CourseWithSkills{}, err
	}

	return r.GetCourseByID(ctx, c.ID)
}

func (r *PostgresCourseRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *PostgresCourseRepository) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanCourses(rows database.Rows) ([]CourseWithSkills, []uuid.UUID, error) {
	out := make([]CourseWithSkills, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var c CourseWithSkills
		if err := rows.Scan(&c.ID, &c.Title, &c.Provider, &c.URL, &c.Difficulty); err != nil {
			return nil, nil, err
		}
		c.SkillsTaught = make([]CourseSkill, 0)
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return out, ids, nil
}

func (r *PostgresCourseRepository) attachSkills(ctx context.Context, courses []CourseWithSkills, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT cs.course_id, cs.skill_id, s.name
		 FROM course_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.course_id = ANY($1)
		 ORDER BY s.name ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	byCourse := make(map[uuid.UUID][]CourseSkill, len(ids))
	for rows.Next() {
		var courseID uuid.UUID
		var cs CourseSkill
		if err := rows.Scan(&courseID, &cs.SkillID, &cs.Name); err != nil {
			return err
		}
		byCourse[courseID] = append(byCourse[courseID], cs)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range courses {
		if skills, ok := byCourse[courses[i].ID]; ok {
			courses[i].SkillsTaught = skills
		}
	}
	return nil
}
