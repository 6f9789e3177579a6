package seeder

import (
	"context"

	"career-compass/internal/database"

	"github.com/google/uuid"
)

type CourseSeeder struct{}

func (CourseSeeder) Name() string { return "courses" }

type courseSeed struct {
	Title      string
	Provider   string
	URL        string
	Difficulty string
	Skills     []string
}

func defaultCourses() []courseSeed {
	return []courseSeed{
		{"Go Fundamentals", "Udemy", "https://example.com/go-fundamentals", "BEGINNER", []string{"Go"}},
		{"Advanced Go Services", "Coursera", "https://example.com/advanced-go", "ADVANCED", []string{"Go", "REST API Design"}},
		{"SQL for Developers", "Udemy", "https://example.com/sql-dev", "BEGINNER", []string{"SQL", "PostgreSQL"}},
		{"PostgreSQL Administration", "Pluralsight", "https://example.com/pg-admin", "INTERMEDIATE", []string{"PostgreSQL", "Linux"}},
		{"Docker Essentials", "Udemy", "https://example.com/docker", "BEGINNER", []string{"Docker"}},
		{"Kubernetes in Production", "Coursera", "https://example.com/k8s-prod", "ADVANCED", []string{"Kubernetes", "CI/CD"}},
		{"React from Scratch", "Udemy", "https://example.com/react", "BEGINNER", []string{"React", "JavaScript", "HTML/CSS"}},
		{"TypeScript Deep Dive", "Pluralsight", "https://example.com/ts-deep", "INTERMEDIATE", []string{"TypeScript", "JavaScript"}},
		{"Machine Learning Basics", "Coursera", "https://example.com/ml-basics", "INTERMEDIATE", []string{"Machine Learning", "Python", "Statistics"}},
		{"Data Analysis with Python", "Udemy", "https://example.com/data-python", "BEGINNER", []string{"Python", "Data Analysis"}},
		{"Cloud Architecture Patterns", "Pluralsight", "https://example.com/cloud-arch", "ADVANCED", []string{"Cloud Architecture", "Networking"}},
		{"Redis Caching Strategies", "Udemy", "https://example.com/redis", "INTERMEDIATE", []string{"Redis"}},
		{"Technical Communication", "Coursera", "https://example.com/comms", "BEGINNER", []string{"Communication"}},
	}
}

func (CourseSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "courses", "id", "title", "provider", "url", "difficulty"); err != nil {
		return err
	}
	if err := ensureTableColumns(ctx, db, "course_skills", "course_id", "skill_id"); err != nil {
		return err
	}

	skillsByName, err := loadSkillIDsByName(ctx, db)
	if err != nil {
		return err
	}

	for _, c := range defaultCourses() {
		courseID, err := upsertCourse(ctx, db, c)
		if err != nil {
			return err
		}

		for _, skillName := range c.Skills {
			skillID, ok := skillsByName[skillName]
			if !ok {
				continue
			}
			_, err := db.Exec(ctx,
				`INSERT INTO course_skills (id, course_id, skill_id)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (course_id, skill_id) DO NOTHING`,
				uuid.New(), courseID, skillID,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func upsertCourse(ctx context.Context, db database.DB, c courseSeed) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, `SELECT id FROM courses WHERE lower(title) = lower($1) AND provider = $2`, c.Title, c.Provider).Scan(&id)
	if err == nil {
		return id, nil
	}

	id = uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO courses (id, title, provider, url, difficulty)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, c.Title, c.Provider, c.URL, c.Difficulty,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
