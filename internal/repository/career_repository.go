package repository

import (
	"context"
	"database/sql"
	"errors"

	"career-compass/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCareerNotFound = errors.New("career not found")

type Career struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Industry      string
	AverageSalary int64
	GrowthRate    float64
}

type CareerSkill struct {
	SkillID  uuid.UUID
	Name     string
	Category string
}

type CareerWithSkills struct {
	Career
	RequiredSkills []CareerSkill
}

type CareerFilter struct {
	Industry string
	Search   string
	Limit    int
	Offset   int
}

type CareerRepository interface {
	FindAllWithSkills(ctx context.Context) ([]CareerWithSkills, error)
	FindByID(ctx context.Context, id uuid.UUID) (CareerWithSkills, error)
	ListCareers(ctx context.Context, f CareerFilter) ([]CareerWithSkills, int64, error)
	ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)
	CreateCareer(ctx context.Context, c Career, skillIDs []uuid.UUID) (CareerWithSkills, error)
	UpdateCareer(ctx context.Context, c Career, skillIDs []uuid.UUID) (CareerWithSkills, error)
	DeleteCareer(ctx context.Context, id uuid.UUID) error
	CountCareers(ctx context.Context) (int64, error)
}

type PostgresCareerRepository struct {
	db database.DB
}

func NewPostgresCareerRepository(db database.DB) *PostgresCareerRepository {
	return &PostgresCareerRepository{db: db}
}

func (r *PostgresCareerRepository) FindAllWithSkills(ctx context.Context) ([]CareerWithSkills, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, industry, average_salary, growth_rate
		 FROM careers
		 ORDER BY title ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CareerWithSkills, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var c CareerWithSkills
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Industry, &c.AverageSalary, &c.GrowthRate); err != nil {
			return nil, err
		}
		c.RequiredSkills = make([]CareerSkill, 0)
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachSkills(ctx, out, ids); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCareerRepository) FindByID(ctx context.Context, id uuid.UUID) (CareerWithSkills, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, description, industry, average_salary, growth_rate
		 FROM careers WHERE id = $1`,
		id,
	)

	var c CareerWithSkills
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Industry, &c.AverageSalary, &c.GrowthRate); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return CareerWithSkills{}, ErrCareerNotFound
		}
		return CareerWithSkills{}, err
	}

	skills, err := r.findSkills(ctx, c.ID)
	if err != nil {
		return CareerWithSkills{}, err
	}
	c.RequiredSkills = skills
	return c, nil
}

func (r *PostgresCareerRepository) ListCareers(ctx context.Context, f CareerFilter) ([]CareerWithSkills, int64, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, industry, average_salary, growth_rate
		 FROM careers
		 WHERE ($1 = '' OR industry = $1)
		   AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		 ORDER BY title ASC
		 LIMIT $3 OFFSET $4`,
		f.Industry, f.Search, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]CareerWithSkills, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var c CareerWithSkills
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Industry, &c.AverageSalary, &c.GrowthRate); err != nil {
			return nil, 0, err
		}
		c.RequiredSkills = make([]CareerSkill, 0)
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachSkills(ctx, out, ids); err != nil {
		return nil, 0, err
	}

	var total int64
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM careers
		 WHERE ($1 = '' OR industry = $1)
		   AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`,
		f.Industry, f.Search,
	)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *PostgresCareerRepository) ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM careers WHERE lower(title) = lower($1) AND id <> $2)`,
		title, excludeID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCareerRepository) CreateCareer(ctx context.Context, c Career, skillIDs []uuid.UUID) (CareerWithSkills, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return CareerWithSkills{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO careers (id, title, description, industry, average_salary, growth_rate)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Title, c.Description, c.Industry, c.AverageSalary, c.GrowthRate,
	)
	if err != nil {
		return CareerWithSkills{}, err
	}

	for _, sid := range skillIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO career_skills (id, career_id, skill_id) VALUES ($1, $2, $3)
			 ON CONFLICT (career_id, skill_id) DO NOTHING`,
			uuid.New(), c.ID, sid,
		)
		if err != nil {
			return CareerWithSkills{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CareerWithSkills{}, err
	}

	return r.FindByID(ctx, c.ID)
}

func (r *PostgresCareerRepository) UpdateCareer(ctx context.Context, c Career, skillIDs []uuid.UUID) (CareerWithSkills, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return CareerWithSkills{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE careers
		 SET title = $1, description = $2, industry = $3, average_salary = $4, growth_rate = $5, updated_at = now()
		 WHERE id = $6`,
		c.Title, c.Description, c.Industry, c.AverageSalary, c.GrowthRate, c.ID,
	)
	if err != nil {
		return CareerWithSkills{}, err
	}
	if affected == 0 {
		return CareerWithSkills{}, ErrCareerNotFound
	}

	if skillIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM career_skills WHERE career_id = $1`, c.ID); err != nil {
			return CareerWithSkills{}, err
		}
		for _, sid := range skillIDs {
			_, err = tx.Exec(ctx,
				`INSERT INTO career_skills (id, career_id, skill_id) VALUES ($1, $2, $3)
				 ON CONFLICT (career_id, skill_id) DO NOTHING`,
				uuid.New(), c.ID, sid,
			)
			if err != nil {
				return CareerWithSkills{}, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CareerWithSkills{}, err
	}

	return r.FindByID(ctx, c.ID)
}

func (r *PostgresCareerRepository) DeleteCareer(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCareerNotFound
	}
	return nil
}

func (r *PostgresCareerRepository) CountCareers(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM careers`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresCareerRepository) findSkills(ctx context.Context, careerID uuid.UUID) ([]CareerSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT cs.skill_id, s.name, s.category
		 FROM career_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.career_id = $1
		 ORDER BY s.name ASC`,
		careerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CareerSkill, 0)
	for rows.Next() {
		var cs CareerSkill
		if err := rows.Scan(&cs.SkillID, &cs.Name, &cs.Category); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCareerRepository) attachSkills(ctx context.Context, careers []CareerWithSkills, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT cs.career_id, cs.skill_id, s.name, s.category
		 FROM career_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.career_id = ANY($1)
		 ORDER BY s.name ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	byCareer := make(map[uuid.UUID][]CareerSkill, len(ids))
	for rows.Next() {
		var careerID uuid.UUID
		var cs CareerSkill
		if err := rows.Scan(&careerID, &cs.SkillID, &cs.Name, &cs.Category); err != nil {
			return err
		}
		byCareer[careerID] = append(byCareer[careerID], cs)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range careers {
		if skills, ok := byCareer[careers[i].ID]; ok {
			careers[i].RequiredSkills = skills
		}
	}
	return nil
}
