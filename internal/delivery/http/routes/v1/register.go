package v1

import (
	"time"

	"career-compass/internal/database"
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/jwt"
	"career-compass/internal/repository"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	DB       database.DB
	Cache    usecase.RecommendationCache
	CacheTTL time.Duration
	Notifier usecase.RecommendationNotifier
	JWT      jwt.Service
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(deps.JWT)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	careerRepo := repository.NewPostgresCareerRepository(deps.DB)
	courseRepo := repository.NewPostgresCourseRepository(deps.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(deps.DB)
	recRepo := repository.NewPostgresRecommendationRepository(deps.DB)
	analyticsRepo := repository.NewPostgresAnalyticsRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, deps.JWT)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	careerUC := usecase.NewCareerUsecase(careerRepo, skillRepo)
	courseUC := usecase.NewCourseUsecase(courseRepo, skillRepo)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, skillRepo)
	recUC := usecase.NewRecommendationUsecase(recRepo, careerRepo, userSkillRepo, courseRepo, deps.Cache, deps.CacheTTL, deps.Notifier)
	gapUC := usecase.NewGapUsecase(careerRepo, userSkillRepo, courseRepo)
	analyticsUC := usecase.NewAnalyticsUsecase(analyticsRepo, userRepo, skillRepo, careerRepo, courseRepo, recRepo)

	authHandler := handler.NewAuthHandler(authUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	careerHandler := handler.NewCareerHandler(careerUC)
	courseHandler := handler.NewCourseHandler(courseUC)
	userSkillHandler := handler.NewUserSkillHandler(userSkillUC)
	recHandler := handler.NewRecommendationHandler(recUC)
	gapHandler := handler.NewGapHandler(gapUC)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUC)

	// Public surface: auth plus read-only catalogs.
	authHandler.RegisterRoutes(r)
	skillHandler.RegisterRoutes(r)
	careerHandler.RegisterRoutes(r)
	courseHandler.RegisterRoutes(r)

	protected := r.Group("", authMw.Middleware())
	userSkillHandler.RegisterRoutes(protected)
	recHandler.RegisterRoutes(protected)
	gapHandler.RegisterRoutes(protected)
	analyticsHandler.RegisterRoutes(protected)

	admin := protected.Group("", authMw.RequireRole("admin"))
	skillHandler.RegisterAdminRoutes(admin)
	userSkillHandler.RegisterAdminRoutes(admin)
	careerHandler.RegisterAdminRoutes(admin)
	courseHandler.RegisterAdminRoutes(admin)
	analyticsHandler.RegisterAdminRoutes(admin)
}
