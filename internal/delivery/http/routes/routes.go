package routes

import (
	"job-matcher/internal/delivery/http/handler"
	v1 "job-matcher/internal/delivery/http/routes/v1"
	"job-matcher/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health *handler.HealthHandler
	Events *ws.Handler
	V1     v1.Deps
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Events != nil {
		app.Get("/ws/events", r.Events.HandleEventsWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.V1)
}
