package v1

import (
	"job-matcher/internal/delivery/http/handler"
	"job-matcher/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the constructed handlers into route registration. Handlers
// are built once in the app container, not here, so the CLIs can share the
// same usecases without a fiber app.
type Deps struct {
	Auth   *handler.AuthHandler
	Jobs   *handler.JobsHandler
	Match  *handler.MatchHandler
	Resume *handler.ResumeHandler
	Alerts *handler.AlertHandler
	AuthMw *middleware.AuthMiddleware
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	d.Auth.RegisterRoutes(authGroup)

	protected := r.Group("", d.AuthMw.Middleware())

	d.Jobs.RegisterRoutes(r, protected)
	d.Match.RegisterRoutes(protected)
	d.Resume.RegisterRoutes(protected)
	d.Alerts.RegisterRoutes(protected)
}
