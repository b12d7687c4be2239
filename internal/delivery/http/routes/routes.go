package routes

import (
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/extraction"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure the route tree wires handlers to.
type Deps struct {
	Config   config.Config
	DB       database.DB
	Engine   *extraction.Engine
	Cache    usecase.RecommendationCache
	CacheTTL time.Duration
	WSHub    *ws.Hub
	Logger   *log.Logger
}

type Registry struct {
	deps   Deps
	health *handler.HealthHandler
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, health: handler.NewHealthHandler(deps.DB)}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.deps.WSHub == nil {
		return
	}
	wsHandler := ws.NewHandler(r.deps.WSHub, r.deps.Logger)
	app.Get("/ws/extractions", wsHandler.HandleExtractionWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
