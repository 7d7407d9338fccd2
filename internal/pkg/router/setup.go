package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moodvault/moodvault/app/controllers"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Session-scoped state (coordinators, lifecycle controllers, guidance
	// service) must be wired before any route can run.
	controllers.InitializeSessionController()

	setup(app, NewApiRouter())
}
func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
