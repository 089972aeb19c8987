package app

import (
	"context"
	"fmt"
	"strings"

	"job-matcher/internal/config"
	"job-matcher/internal/delivery/http/handler"
	"job-matcher/internal/delivery/http/middleware"
	"job-matcher/internal/delivery/http/routes"
	"job-matcher/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container

	stopHub context.CancelFunc
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)
	ws.SetDefaultHub(c.Hub)

	reg := routes.Registry{
		Health: handler.NewHealthHandler(c.DB),
		Events: ws.NewHandler(c.Hub, c.Logger),
		V1:     c.V1Deps(),
	}
	reg.Register(f)

	return &App{Fiber: f, Container: c, stopHub: stopHub}
}

// Bootstrap loads everything the server needs and returns a cleanup that
// tears it down in reverse order.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	cleanup := func() error {
		app.stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
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
