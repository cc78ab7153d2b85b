package controller

import (
	"github.com/gofiber/fiber/v2"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/service"
)

type IAnswerController interface {
	RegisterRoutes(r fiber.Router)
	Answer(ctx *fiber.Ctx) error
	Retrieve(ctx *fiber.Ctx) error
}

type answerController struct {
	answerService service.IAnswerService
	session       fiber.Handler
}

func NewAnswerController(answerService service.IAnswerService, session fiber.Handler) IAnswerController {
	return &answerController{
		answerService: answerService,
		session:       session,
	}
}

func (c *answerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/qa/v1")
	h.Use(c.session)
	h.Post("/answer", c.Answer)
	h.Post("/retrieve", c.Retrieve)
}

func (c *answerController) Answer(ctx *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.answerService.Answer(ctx.Context(), currentPrincipal(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success answer", res))
}

func (c *answerController) Retrieve(ctx *fiber.Ctx) error {
	var req dto.RetrieveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.answerService.Retrieve(ctx.Context(), currentPrincipal(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success retrieve", res))
}
