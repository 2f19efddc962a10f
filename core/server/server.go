package server

import (
	"project-admin/core/loader"
	"project-admin/core/middleware/bodyparser"
	"project-admin/core/middleware/cors"
	"project-admin/core/middleware/errorhandler"
	"project-admin/core/middleware/rayid"
	"project-admin/core/middleware/requestlog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Deps are the collaborators the composer wires together.
type Deps struct {
	Config   Config
	Policy   *cors.Policy
	Logger   *zap.Logger
	Features *loader.Manager
}

// New composes the HTTP pipeline. Registration order is significant:
//
//  1. ray ID and request logging (tracing only, never short-circuit)
//  2. CORS policy
//  3. request body parsing
//  4. health and root endpoints, API docs
//  5. route groups, in feature registration order
//  6. not-found fallback
//
// The terminal error handler is installed as Fiber's ErrorHandler and so sees
// every error returned by any of the stages above.
func New(deps Deps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               "project-admin",
		DisableStartupMessage: true, // We log our own startup message
		BodyLimit:             deps.Config.BodyLimit,
		ErrorHandler:          errorhandler.New(deps.Logger),
	})

	app.Use(rayid.New())
	app.Use(requestlog.New(deps.Logger))

	app.Use(cors.New(deps.Policy))
	app.Use(bodyparser.New())

	app.Get("/health", Health)
	app.Get("/", Root)
	if deps.Config.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	if deps.Features != nil {
		loaded, err := deps.Features.LoadAll(app)
		if err != nil {
			return nil, err
		}
		deps.Logger.Debug("Route groups loaded", zap.Strings("features", loaded))
	}

	app.Use(errorhandler.NotFound)

	return app, nil
}
