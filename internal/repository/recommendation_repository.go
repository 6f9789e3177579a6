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

var ErrRecommendationNotFound = errors.New("recommendation not found")

type Recommendation struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CareerID        uuid.UUID
	Score           float64
	MatchPercentage int
	Reason          string
	CreatedAt       time.Time
}

type RecommendationWithCareer struct {
	Recommendation
	Career CareerWithSkills
}

type RecommendationRepository interface {
	// ReplaceForUser swaps the user's full recommendation set in one
	// transaction; a concurrent replace can never interleave with a
	// half-written set.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []Recommendation) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]RecommendationWithCareer, error)
	DeleteByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	CountRecommendations(ctx context.Context) (int64, error)
	TopRecommendedCareers(ctx context.Context, limit int) ([]CareerRecommendationCount, error)
}

type CareerRecommendationCount struct {
	CareerID uuid.UUID
	Title    string
	Count    int64
}

type PostgresRecommendationRepository struct {
	db database.DB
}

func NewPostgresRecommendationRepository(db database.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

func (r *PostgresRecommendationRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []Recommendation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM recommendations WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for _, rec := range recs {
		id := rec.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO recommendations (id, user_id, career_id, score, match_percentage, reason)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, userID, rec.CareerID, rec.Score, rec.MatchPercentage, rec.Reason,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRecommendationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]RecommendationWithCareer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.user_id, r.career_id, r.score, r.match_percentage, r.reason, r.created_at,
		        c.title, c.description, c.industry, c.average_salary, c.growth_rate
		 FROM recommendations r
		 JOIN careers c ON c.id = r.career_id
		 WHERE r.user_id = $1
		 ORDER BY r.score DESC, r.career_id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecommendationWithCareer, 0)
	careerIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var rec RecommendationWithCareer
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.CareerID, &rec.Score, &rec.MatchPercentage, &rec.Reason, &rec.CreatedAt,
			&rec.Career.Title, &rec.Career.Description, &rec.Career.Industry,
			&rec.Career.AverageSalary, &rec.Career.GrowthRate,
		); err != nil {
			return nil, err
		}
		rec.Career.ID = rec.CareerID
		rec.Career.RequiredSkills = make([]CareerSkill, 0)
		out = append(out, rec)
		careerIDs = append(careerIDs, rec.CareerID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(careerIDs) == 0 {
		return out, nil
	}

	skillRows, err := r.db.Query(ctx,
		`SELECT cs.career_id, cs.skill_id, s.name, s.category
		 FROM career_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.career_id = ANY($1)
		 ORDER BY s.name ASC`,
		careerIDs,
	)
	if err != nil {
		return nil, err
	}
	defer skillRows.Close()

	byCareer := make(map[uuid.UUID][]CareerSkill)
	for skillRows.Next() {
		var careerID uuid.UUID
		var cs CareerSkill
		if err := skillRows.Scan(&careerID, &cs.SkillID, &cs.Name, &cs.Category); err != nil {
			return nil, err
		}
		byCareer[careerID] = append(byCareer[careerID], cs)
	}
	if err := skillRows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if skills, ok := byCareer[out[i].CareerID]; ok {
			out[i].Career.RequiredSkills = skills
		}
	}
	return out, nil
}

func (r *PostgresRecommendationRepository) DeleteByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM recommendations WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrRecommendationNotFound
		}
		return err
	}
	if owner != userID {
		return ErrRecommendationNotFound
	}

	_, err := r.db.Exec(ctx, `DELETE FROM recommendations WHERE id = $1`, id)
	return err
}

func (r *PostgresRecommendationRepository) CountRecommendations(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recommendations`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRecommendationRepository) TopRecommendedCareers(ctx context.Context, limit int) ([]CareerRecommendationCount, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT r.career_id, c.title, COUNT(*) AS total
		 FROM recommendations r
		 JOIN careers c ON c.id = r.career_id
		 GROUP BY r.career_id, c.title
		 ORDER BY total DESC, c.title ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CareerRecommendationCount, 0)
	for rows.Next() {
		var c CareerRecommendationCount
		if err := rows.Scan(&c.CareerID, &c.Title, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
