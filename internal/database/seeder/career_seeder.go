package seeder

import (
	"context"

	"career-compass/internal/database"

	"github.com/google/uuid"
)

type CareerSeeder struct{}

func (CareerSeeder) Name() string { return "careers" }

type careerSeed struct {
	Title         string
	Description   string
	Industry      string
	AverageSalary int64
	GrowthRate    float64
	Skills        []string
}

func defaultCareers() []careerSeed {
	return []careerSeed{
		{
			Title:         "Backend Engineer",
			Description:   "Designs and operates server-side systems and APIs.",
			Industry:      "Software",
			AverageSalary: 110000,
			GrowthRate:    12.5,
			Skills:        []string{"Go", "SQL", "PostgreSQL", "REST API Design", "Docker"},
		},
		{
			Title:         "Frontend Engineer",
			Description:   "Builds interactive web interfaces.",
			Industry:      "Software",
			AverageSalary: 100000,
			GrowthRate:    10.0,
			Skills:        []string{"JavaScript", "TypeScript", "React", "HTML/CSS"},
		},
		{
			Title:         "Data Scientist",
			Description:   "Builds models and extracts insight from data.",
			Industry:      "Data",
			AverageSalary: 120000,
			GrowthRate:    15.0,
			Skills:        []string{"Python", "Machine Learning", "Statistics", "SQL", "Data Analysis"},
		},
		{
			Title:         "DevOps Engineer",
			Description:   "Automates delivery and keeps production healthy.",
			Industry:      "Infrastructure",
			AverageSalary: 115000,
			GrowthRate:    14.0,
			Skills:        []string{"Docker", "Kubernetes", "CI/CD", "Linux", "Networking"},
		},
		{
			Title:         "Data Analyst",
			Description:   "Turns raw data into reports and dashboards.",
			Industry:      "Data",
			AverageSalary: 85000,
			GrowthRate:    9.0,
			Skills:        []string{"SQL", "Data Analysis", "Statistics", "Communication"},
		},
		{
			Title:         "Cloud Architect",
			Description:   "Designs resilient systems on cloud platforms.",
			Industry:      "Infrastructure",
			AverageSalary: 140000,
			GrowthRate:    13.0,
			Skills:        []string{"Cloud Architecture", "Kubernetes", "Networking", "Linux", "CI/CD"},
		},
	}
}

func (CareerSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "careers", "id", "title", "description", "industry", "average_salary", "growth_rate"); err != nil {
		return err
	}
	if err := ensureTableColumns(ctx, db, "career_skills", "career_id", "skill_id"); err != nil {
		return err
	}

	skillsByName, err := loadSkillIDsByName(ctx, db)
	if err != nil {
		return err
	}

	for _, c := range defaultCareers() {
		careerID, err := upsertCareer(ctx, db, c)
		if err != nil {
			return err
		}

		for _, skillName := range c.Skills {
			skillID, ok := skillsByName[skillName]
			if !ok {
				continue
			}
			_, err := db.Exec(ctx,
				`INSERT INTO career_skills (id, career_id, skill_id)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (career_id, skill_id) DO NOTHING`,
				uuid.New(), careerID, skillID,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func upsertCareer(ctx context.Context, db database.DB, c careerSeed) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, `SELECT id FROM careers WHERE lower(title) = lower($1)`, c.Title).Scan(&id)
	if err == nil {
		return id, nil
	}

	id = uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO careers (id, title, description, industry, average_salary, growth_rate)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, c.Title, c.Description, c.Industry, c.AverageSalary, c.GrowthRate,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func loadSkillIDsByName(ctx context.Context, db database.DB) (map[string]uuid.UUID, error) {
	rows, err := db.Query(ctx, `SELECT id, name FROM skills`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, rows.Err()
}
