package seeder

import (
	"context"

	"career-compass/internal/database"

	"github.com/google/uuid"
)

type SkillSeeder struct{}

func (SkillSeeder) Name() string { return "skills" }

type skillSeed struct {
	Name        string
	Category    string
	Description string
}

func defaultSkills() []skillSeed {
	return []skillSeed{
		{"Go", "Programming Language", "Backend services and tooling in Go."},
		{"Python", "Programming Language", "Scripting, data work and backend development."},
		{"JavaScript", "Programming Language", "Frontend and Node.js development."},
		{"TypeScript", "Programming Language", "Typed JavaScript for larger codebases."},
		{"SQL", "Database", "Relational querying and schema design."},
		{"PostgreSQL", "Database", "Operating and tuning PostgreSQL."},
		{"Redis", "Database", "Caching and ephemeral data structures."},
		{"Docker", "DevOps", "Containerizing and shipping applications."},
		{"Kubernetes", "DevOps", "Orchestrating containerized workloads."},
		{"CI/CD", "DevOps", "Automated build, test and deploy pipelines."},
		{"React", "Frontend", "Component-based web UIs."},
		{"HTML/CSS", "Frontend", "Semantic markup and styling."},
		{"REST API Design", "Backend", "Designing and versioning HTTP APIs."},
		{"Data Analysis", "Data", "Exploring and summarizing datasets."},
		{"Machine Learning", "Data", "Training and evaluating predictive models."},
		{"Statistics", "Data", "Statistical inference and experiment design."},
		{"Cloud Architecture", "Cloud", "Designing systems on public cloud platforms."},
		{"Linux", "Systems", "Shell, processes and system administration."},
		{"Networking", "Systems", "TCP/IP, DNS and load balancing fundamentals."},
		{"Communication", "Soft Skill", "Writing and presenting for technical audiences."},
	}
}

func (SkillSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "skills", "id", "name", "category", "description"); err != nil {
		return err
	}

	for _, s := range defaultSkills() {
		_, err := db.Exec(ctx,
			`INSERT INTO skills (id, name, category, description)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			uuid.New(), s.Name, s.Category, s.Description,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
