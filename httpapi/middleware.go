package httpapi

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID keeps a caller-supplied X-Request-ID or assigns a fresh one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals("requestID", id)
		c.Set(requestIDHeader, id)
		return c.Next()
	}
}

// Logger writes one line per request to the standard logger.
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		id, _ := c.Locals("requestID").(string)
		log.Printf("%s %s %s %d %s", id, c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
