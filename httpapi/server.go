// Package httpapi serves the move generator over HTTP.
package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewApp builds the fiber application with every route mounted.
func NewApp(cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "mailbox-chess",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(RequestID())
	app.Use(Logger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + requestIDHeader,
		AllowMethods: "GET, POST, OPTIONS",
	}))

	h := &Handler{}
	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Get("/square/:name", h.Square)
	api.Post("/fen", h.FEN)
	api.Post("/moves", h.Moves)
	api.Post("/refcheck", h.RefCheck)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
