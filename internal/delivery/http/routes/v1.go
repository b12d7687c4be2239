package routes

import (
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps{
		Config:   deps.Config,
		DB:       deps.DB,
		Engine:   deps.Engine,
		Cache:    deps.Cache,
		CacheTTL: deps.CacheTTL,
		Logger:   deps.Logger,
	})
}
