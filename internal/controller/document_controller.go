package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	FileURL(ctx *fiber.Ctx) error
	Chunks(ctx *fiber.Ctx) error
	Embed(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetSummary(ctx *fiber.Ctx) error
	GenerateSummary(ctx *fiber.Ctx) error
	ChatHistory(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService    service.IDocumentService
	summaryService     service.ISummaryService
	chatHistoryService service.IChatHistoryService
	session            fiber.Handler
}

func NewDocumentController(
	documentService service.IDocumentService,
	summaryService service.ISummaryService,
	chatHistoryService service.IChatHistoryService,
	session fiber.Handler,
) IDocumentController {
	return &documentController{
		documentService:    documentService,
		summaryService:     summaryService,
		chatHistoryService: chatHistoryService,
		session:            session,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(c.session)
	h.Post("/upload", c.Upload)
	h.Get("", c.List)
	h.Get("/:id/file-url", c.FileURL)
	h.Get("/:id/chunks", c.Chunks)
	h.Post("/:id/embed", c.Embed)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/summary", c.GetSummary)
	h.Post("/:id/summary", c.GenerateSummary)
	h.Get("/:id/chat-history", c.ChatHistory)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	workspaceId, err := uuid.Parse(ctx.FormValue("workspace_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid workspace_id")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.documentService.Upload(
		ctx.Context(),
		currentPrincipal(ctx),
		workspaceId,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileBytes,
	)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	workspaceId, err := uuid.Parse(ctx.Query("workspace_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid workspace_id")
	}

	res, err := c.documentService.List(ctx.Context(), currentPrincipal(ctx), workspaceId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) FileURL(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.GetFileURL(ctx.Context(), currentPrincipal(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get file url", res))
}

func (c *documentController) Chunks(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.ListChunks(ctx.Context(), currentPrincipal(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list chunks", res))
}

func (c *documentController) Embed(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.RequestEmbedding(ctx.Context(), currentPrincipal(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Embedding queued", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.documentService.Delete(ctx.Context(), currentPrincipal(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) GetSummary(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.summaryService.Get(ctx.Context(), currentPrincipal(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get summary", res))
}

func (c *documentController) GenerateSummary(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.summaryService.Generate(ctx.Context(), currentPrincipal(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate summary", res))
}

func (c *documentController) ChatHistory(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.chatHistoryService.List(ctx.Context(), currentPrincipal(ctx), id, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
