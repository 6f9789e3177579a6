package seeder

import (
	"context"
	"fmt"
	"log"

	"career-compass/internal/database"
)

// Seeder populates one slice of the catalog. Runs must be idempotent so
// the same seeder can execute on every boot.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

func Default() []Seeder {
	return []Seeder{
		SkillSeeder{},
		CareerSeeder{},
		CourseSeeder{},
	}
}

func RunAll(ctx context.Context, db database.DB, seeders []Seeder) error {
	for _, s := range seeders {
		log.Printf("[Seeder] running %s", s.Name())
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name(), err)
		}
	}
	return nil
}
