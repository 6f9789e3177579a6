package app

import (
	"context"
	"log"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/database"
	"career-compass/internal/database/migration"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/database/seeder"
	"career-compass/internal/infrastructure/cache"
	"career-compass/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.RunMigrations {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if cfg.Database.RunSeeders {
		if err := seeder.RunAll(ctx, db, seeder.Default()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	hub := ws.NewHub(log.Default())
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(log.Default()),
		Hub:    hub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
