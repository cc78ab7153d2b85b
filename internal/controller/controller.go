// Package controller holds the HTTP layer: request parsing, validation, and
// delegation to services. Controllers never carry business rules.
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docuchat-be/internal/service"
)

// currentPrincipal reads the identity the session middleware stored in the
// request locals.
func currentPrincipal(ctx *fiber.Ctx) service.Principal {
	var principal service.Principal
	if raw, ok := ctx.Locals("guest_id").(string); ok && raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			principal.GuestId = &id
		}
	}
	if raw, ok := ctx.Locals("user_id").(string); ok && raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			principal.UserId = &id
		}
	}
	return principal
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
