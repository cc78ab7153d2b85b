package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware maps domain errors to HTTP status codes in one
// place so services stay transport-free. A fabricated citation is a hard 500
// on purpose: it indicates a broken generation contract, not bad input.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := err.Error()

		var (
			fiberErr      *fiber.Error
			notFound      *apperrors.NotFoundError
			forbidden     *apperrors.ForbiddenError
			quota         *apperrors.QuotaExceededError
			extraction    *apperrors.ExtractionError
			embedding     *apperrors.EmbeddingServiceError
			protocol      *apperrors.ProtocolViolationError
			summarySchema *apperrors.SummarySchemaViolation
			storage       *apperrors.StorageError
		)

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.As(err, &notFound):
			code = fiber.StatusNotFound
		case errors.As(err, &forbidden):
			code = fiber.StatusForbidden
		case errors.As(err, &quota):
			code = fiber.StatusForbidden
		case errors.As(err, &extraction), errors.Is(err, apperrors.ErrChunkConfig):
			code = fiber.StatusBadRequest
		case errors.As(err, &embedding):
			code = fiber.StatusInternalServerError
			message = "Embedding failed: " + err.Error()
		case errors.As(err, &protocol):
			code = fiber.StatusInternalServerError
			message = "Invalid citation detected"
		case errors.As(err, &summarySchema):
			code = fiber.StatusInternalServerError
		case errors.As(err, &storage):
			code = fiber.StatusInternalServerError
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"code":   code,
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
