package middleware

import (
	"log"

	"beautyshop/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const payloadKey = "payload"

// ValidateBody parses the request body into a T and validates it. Invalid
// requests are answered with 400 and never reach the next handler; valid ones
// carry the payload, retrievable with Payload.
func ValidateBody[T any](v *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload T
		if err := c.BodyParser(&payload); err != nil {
			log.Printf("Error parsing request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}

		if err := v.Struct(payload); err != nil {
			fieldErrors := validation.FieldErrors(err)
			if fieldErrors == nil {
				return err
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  fieldErrors,
			})
		}

		c.Locals(payloadKey, payload)
		return c.Next()
	}
}

// Payload returns the body stored by ValidateBody.
func Payload[T any](c *fiber.Ctx) (T, bool) {
	payload, ok := c.Locals(payloadKey).(T)
	return payload, ok
}
