package v1

import (
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/extraction"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config   config.Config
	DB       database.DB
	Engine   *extraction.Engine
	Cache    usecase.RecommendationCache
	CacheTTL time.Duration
	Logger   *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(deps.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)
	candidateSkillRepo := repository.NewPostgresCandidateSkillRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	jobUC := usecase.NewJobUsecase(jobRepo, jobSkillRepo, deps.Engine, deps.Cache, deps.Logger)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateSkillRepo, deps.Engine, deps.Cache, deps.Logger)
	recommendationUC := usecase.NewRecommendationUsecase(jobRepo, jobSkillRepo, applicationRepo, candidateSkillRepo, deps.Cache, deps.CacheTTL, deps.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	jobHandler := handler.NewJobHandler(jobUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	jobHandler.RegisterPublicRoutes(r.Group("/jobs"))

	protected := r.Group("", authMw.Middleware())
	jobHandler.RegisterProtectedRoutes(protected.Group("/jobs"))
	applicationHandler.RegisterRoutes(protected)
	recommendationHandler.RegisterRoutes(protected)
}
