package middleware

import (
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/config"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies the bearer token issued by the auth service and
// rejects the request before it reaches a handler. The parsed token lands
// in c.Locals("user") for UserID to read.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}
