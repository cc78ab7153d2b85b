package controller

import (
	"github.com/gofiber/fiber/v2"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/service"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type workspaceController struct {
	workspaceService service.IWorkspaceService
	session          fiber.Handler
}

func NewWorkspaceController(workspaceService service.IWorkspaceService, session fiber.Handler) IWorkspaceController {
	return &workspaceController{
		workspaceService: workspaceService,
		session:          session,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1")
	h.Use(c.session)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Delete("/:id", c.Delete)
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateWorkspaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.workspaceService.Create(ctx.Context(), currentPrincipal(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create workspace", res))
}

func (c *workspaceController) List(ctx *fiber.Ctx) error {
	res, err := c.workspaceService.List(ctx.Context(), currentPrincipal(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list workspaces", res))
}

func (c *workspaceController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.workspaceService.Delete(ctx.Context(), currentPrincipal(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete workspace", nil))
}
