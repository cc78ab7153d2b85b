package controller

import (
	"github.com/gofiber/fiber/v2"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/service"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	GoogleLogin(ctx *fiber.Ctx) error
	GoogleCallback(ctx *fiber.Ctx) error
}

type oauthController struct {
	oauthService service.IOAuthService
}

func NewOAuthController(oauthService service.IOAuthService) IOAuthController {
	return &oauthController{
		oauthService: oauthService,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/oauth/v1")
	h.Get("/google/login", c.GoogleLogin)
	h.Post("/google/callback", c.GoogleCallback)
}

func (c *oauthController) GoogleLogin(ctx *fiber.Ctx) error {
	state := ctx.Query("state", "state")
	url := c.oauthService.GetGoogleLoginURL(state)
	return ctx.JSON(serverutils.SuccessResponse("Success get login url", fiber.Map{"url": url}))
}

func (c *oauthController) GoogleCallback(ctx *fiber.Ctx) error {
	var req dto.OAuthCallbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.oauthService.HandleGoogleCallback(ctx.Context(), req.Code)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success login with google", res))
}
