package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"career-compass/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserSkillNotFound  = errors.New("user skill not found")
	ErrUserSkillForbidden = errors.New("forbidden")
)

type UserSkill struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	SkillID       uuid.UUID
	SkillName     string
	SkillCategory string
	Level         string
}

// SkillHolder is a user holding a given skill, as seen from the
// admin users-by-skill lookup.
type SkillHolder struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Level     string
	CreatedAt time.Time
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	FindByUserAndSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (UserSkill, error)
	// FindBySkill lists holders of a skill, highest proficiency first.
	// An empty level returns all holders.
	FindBySkill(ctx context.Context, skillID uuid.UUID, level string) ([]SkillHolder, error)
	Create(ctx context.Context, us UserSkill) (UserSkill, error)
	UpdateLevel(ctx context.Context, id uuid.UUID, userID uuid.UUID, level string) (UserSkill, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, s.name, s.category, us.level
	 FROM user_skills us
	 JOIN skills s ON s.id = us.skill_id`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		userSkillSelect+` WHERE us.user_id = $1 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.SkillCategory, &us.Level); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserAndSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (UserSkill, error) {
	row := r.db.QueryRow(ctx,
		userSkillSelect+` WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	)
	return scanUserSkill(row)
}

func (r *PostgresUserSkillRepository) FindBySkill(ctx context.Context, skillID uuid.UUID, level string) ([]SkillHolder, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.user_id, u.name, u.email, us.level, us.created_at
		 FROM user_skills us
		 JOIN users u ON u.id = us.user_id
		 WHERE us.skill_id = $1 AND ($2 = '' OR us.level = $2)
		 ORDER BY CASE us.level
			WHEN 'ADVANCED' THEN 3
			WHEN 'INTERMEDIATE' THEN 2
			ELSE 1
		 END DESC, us.created_at DESC`,
		skillID, level,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillHolder, 0)
	for rows.Next() {
		var h SkillHolder
		if err := rows.Scan(&h.UserID, &h.Name, &h.Email, &h.Level, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us UserSkill) (UserSkill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, level) VALUES ($1, $2, $3, $4)`,
		us.ID, us.UserID, us.SkillID, us.Level,
	)
	if err != nil {
		return UserSkill{}, err
	}

	row := r.db.QueryRow(ctx,
		userSkillSelect+` WHERE us.id = $1 AND us.user_id = $2`,
		us.ID, us.UserID,
	)
	return scanUserSkill(row)
}

func (r *PostgresUserSkillRepository) UpdateLevel(ctx context.Context, id uuid.UUID, userID uuid.UUID, level string) (UserSkill, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE user_skills SET level = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
		level, id, userID,
	)
	if err != nil {
		return UserSkill{}, err
	}
	if affected == 0 {
		return UserSkill{}, ErrUserSkillNotFound
	}

	row := r.db.QueryRow(ctx,
		userSkillSelect+` WHERE us.id = $1 AND us.user_id = $2`,
		id, userID,
	)
	return scanUserSkill(row)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrUserSkillNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserSkillForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1`, id)
	return err
}

func scanUserSkill(row database.Row) (UserSkill, error) {
	var us UserSkill
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.SkillCategory, &us.Level); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserSkill{}, ErrUserSkillNotFound
		}
		return UserSkill{}, err
	}
	return us, nil
}
