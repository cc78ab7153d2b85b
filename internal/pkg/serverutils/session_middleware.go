package serverutils

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GuestVerifier confirms that a guest id from a token still maps to a live
// guest session. User tokens need no equivalent: users do not expire.
type GuestVerifier interface {
	VerifyGuest(ctx context.Context, guestId uuid.UUID) bool
}

// NewSessionMiddleware builds the auth middleware for both principal kinds.
// Guest tokens carry a "guest_id" claim and are checked against the guest
// verifier; user tokens carry a "user_id" claim. Exactly one id ends up in
// the request locals.
func NewSessionMiddleware(guests GuestVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		if guestId, ok := claims["guest_id"].(string); ok && guestId != "" {
			id, err := uuid.Parse(guestId)
			if err != nil {
				return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
			}
			if guests != nil && !guests.VerifyGuest(ctx.Context(), id) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Session expired"))
			}
			ctx.Locals("guest_id", guestId)
			return ctx.Next()
		}
		if userId, ok := claims["user_id"].(string); ok && userId != "" {
			ctx.Locals("user_id", userId)
			return ctx.Next()
		}

		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
	}
}
