package controller

import (
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/pkg/storage"
)

// fileController serves stored documents through signed URLs. No session is
// required: the HMAC signature in the query string is the whole credential,
// which is what lets browsers open the link directly.
type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Serve(ctx *fiber.Ctx) error
}

type fileController struct {
	store  *storage.LocalStore
	signer *storage.URLSigner
}

func NewFileController(store *storage.LocalStore, signer *storage.URLSigner) IFileController {
	return &fileController{
		store:  store,
		signer: signer,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/files")
	h.Get("/documents/:name", c.Serve)
}

func (c *fileController) Serve(ctx *fiber.Ctx) error {
	storagePath := "documents/" + ctx.Params("name")

	if err := c.signer.Verify(storagePath, ctx.Query("expires"), ctx.Query("signature")); err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(fiber.StatusForbidden, err.Error()))
	}

	data, err := c.store.Read(storagePath)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "File not found"))
	}

	if contentType := mime.TypeByExtension(filepath.Ext(storagePath)); contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	return ctx.Send(data)
}
