package app

import (
	"fmt"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// Bootstrap builds the container, the websocket hub and the fiber app with
// its full middleware and route tree. The returned cleanup stops the hub and
// closes the database pool.
func Bootstrap(cfg config.Config, c *Container) (*App, func() error, error) {
	if c == nil {
		var err error
		c, err = NewContainer(cfg, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	hub := ws.NewHub(c.Logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	registry := routes.NewRegistry(routes.Deps{
		Config:   cfg,
		DB:       c.DB,
		Engine:   c.Engine,
		Cache:    c.Cache,
		CacheTTL: cache.DefaultTTLFromEnv(),
		WSHub:    hub,
		Logger:   c.Logger,
	})
	registry.Register(f)

	app := &App{Fiber: f, Container: c, Hub: hub}

	cleanup := func() error {
		ws.SetDefaultHub(nil)
		hub.Stop()
		return c.Close()
	}
	return app, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
