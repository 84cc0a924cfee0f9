package serverutils

import (
	"errors"

	"ai-storevision-be/internal/pkg/apperrors"
	"ai-storevision-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the uniform error payload: a client-safe message plus a
// stable machine-readable kind.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ErrorHandlerMiddleware turns errors escaping the handlers into
// structured responses. AppErrors keep their status and canned message;
// anything else is logged and collapsed to a generic 500 so upstream
// detail never leaks.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperrors.As(err); ok {
			if appErr.Status >= 500 {
				log.Error("http", "request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"code":  appErr.Code,
					"error": appErr.Error(),
				})
			} else {
				log.Warn("http", "request rejected", map[string]interface{}{
					"path": ctx.Path(),
					"code": appErr.Code,
				})
			}
			return ctx.Status(appErr.Status).JSON(ErrorBody{
				Error: appErr.Message,
				Code:  appErr.Code,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Error: fiberErr.Message,
				Code:  apperrors.CodeBadRequest,
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Error: "Erro interno do servidor.",
			Code:  apperrors.CodeInternal,
		})
	}
}
