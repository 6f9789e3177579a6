package routes

import (
	"career-compass/internal/config"
	"career-compass/internal/database"
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/infrastructure/cache"
	"career-compass/internal/pkg/jwt"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg   config.Config
	db    database.DB
	cache *cache.Redis
	hub   *ws.Hub
}

func NewRegistry(cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub) *Registry {
	return &Registry{cfg: cfg, db: db, cache: redisCache, hub: hub}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		r.cfg.JWT.AccessSecret,
		r.cfg.JWT.RefreshSecret,
		r.cfg.JWT.AccessExpiresIn,
		r.cfg.JWT.RefreshExpiresIn,
	)

	r.registerHealth(app)
	r.registerWS(app, jwtSvc)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), V1Deps{
		DB:       r.db,
		Cache:    r.cache,
		CacheTTL: cache.DefaultTTLFromEnv(),
		Notifier: ws.NewNotifier(r.hub),
		JWT:      jwtSvc,
	})
}

func (r *Registry) registerHealth(app *fiber.App) {
	handler.NewHealthHandler(r.db, r.cache).RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App, jwtSvc jwt.Service) {
	if r.hub == nil {
		return
	}
	wsHandler := ws.NewHandler(r.hub, jwtSvc, nil)
	app.Get("/ws/recommendations", wsHandler.HandleRecommendationsWS)
}
