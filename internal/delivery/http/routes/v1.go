package routes

import (
	"time"

	"career-compass/internal/database"
	v1 "career-compass/internal/delivery/http/routes/v1"
	"career-compass/internal/pkg/jwt"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type V1Deps struct {
	DB       database.DB
	Cache    usecase.RecommendationCache
	CacheTTL time.Duration
	Notifier usecase.RecommendationNotifier
	JWT      jwt.Service
}

func RegisterV1(r fiber.Router, deps V1Deps) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps(deps))
}
