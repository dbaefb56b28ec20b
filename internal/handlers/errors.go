package handlers

import (
	"errors"
	"log"

	"beautyshop/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber error boundary. Not-found errors become 404, fiber
// errors keep their code, and everything else is logged and reported as a
// generic 500 without detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
		})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.OriginalURL(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server Error",
	})
}
