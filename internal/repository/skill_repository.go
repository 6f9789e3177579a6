package repository

import (
	"context"
	"database/sql"
	"errors"

	"career-compass/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
}

type SkillFilter struct {
	Category string
	Search   string
}

type SkillRepository interface {
	GetAllSkills(ctx context.Context, f SkillFilter) ([]Skill, error)
	GetSkillByID(ctx context.Context, id uuid.UUID) (Skill, error)
	SkillExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	SkillExistsByName(ctx context.Context, name string) (bool, error)
	CreateSkill(ctx context.Context, s Skill) (Skill, error)
	UpdateSkill(ctx context.Context, s Skill) (Skill, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
	CountSkills(ctx context.Context) (int64, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context, f SkillFilter) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, description
		 FROM skills
		 WHERE ($1 = '' OR category = $1)
		   AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		 ORDER BY name ASC`,
		f.Category, f.Search,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetSkillByID(ctx context.Context, id uuid.UUID) (Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, description FROM skills WHERE id = $1`, id)

	var s Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) SkillExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) SkillExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE lower(name) = lower($1))`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, s Skill) (Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, description) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Category, s.Description,
	)
	if err != nil {
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) UpdateSkill(ctx context.Context, s Skill) (Skill, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE skills SET name = $1, category = $2, description = $3, updated_at = now() WHERE id = $4`,
		s.Name, s.Category, s.Description, s.ID,
	)
	if err != nil {
		return Skill{}, err
	}
	if affected == 0 {
		return Skill{}, ErrSkillNotFound
	}
	return s, nil
}

func (r *PostgresSkillRepository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) CountSkills(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skills`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
