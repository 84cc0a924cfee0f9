package controller

import (
	"path/filepath"
	"strings"

	"ai-storevision-be/internal/dto"
	"ai-storevision-be/internal/pkg/apperrors"
	"ai-storevision-be/internal/pkg/serverutils"
	"ai-storevision-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStoreController interface {
	RegisterRoutes(r fiber.Router)
	Load(ctx *fiber.Ctx) error
	SaveGeneratedImage(ctx *fiber.Ctx) error
	SaveVisionAnalysis(ctx *fiber.Ctx) error
	UpsertChatSession(ctx *fiber.Ctx) error
	SaveSustainabilityReport(ctx *fiber.Ctx) error
	SaveDashboardSnapshot(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ServeImage(ctx *fiber.Ctx) error
}

type storeController struct {
	service service.IStoreService
}

func NewStoreController(service service.IStoreService) IStoreController {
	return &storeController{service: service}
}

func (c *storeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/data")
	h.Get("", c.Load)
	h.Post("/generated-image", c.SaveGeneratedImage)
	h.Post("/vision", c.SaveVisionAnalysis)
	h.Post("/chat", c.UpsertChatSession)
	h.Post("/sustainability", c.SaveSustainabilityReport)
	h.Post("/dashboard", c.SaveDashboardSnapshot)
	h.Get("/images/:filename", c.ServeImage)
	h.Delete("/:collection/:id", c.Delete)
}

func (c *storeController) Load(ctx *fiber.Ctx) error {
	doc, err := c.service.Load(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(doc)
}

func (c *storeController) SaveGeneratedImage(ctx *fiber.Ctx) error {
	var req dto.SaveGeneratedImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveGeneratedImage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *storeController) SaveVisionAnalysis(ctx *fiber.Ctx) error {
	var req dto.SaveVisionAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveVisionAnalysis(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *storeController) UpsertChatSession(ctx *fiber.Ctx) error {
	var req dto.UpsertChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpsertChatSession(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *storeController) SaveSustainabilityReport(ctx *fiber.Ctx) error {
	var req dto.SaveSustainabilityReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveSustainabilityReport(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *storeController) SaveDashboardSnapshot(ctx *fiber.Ctx) error {
	var req dto.SaveDashboardSnapshotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}

	res, err := c.service.SaveDashboardSnapshot(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *storeController) Delete(ctx *fiber.Ctx) error {
	collection := ctx.Params("collection")
	id := ctx.Params("id")

	if err := c.service.Delete(ctx.Context(), collection, id); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"deleted": id})
}

func (c *storeController) ServeImage(ctx *fiber.Ctx) error {
	filename := ctx.Params("filename")

	data, err := c.service.ReadImage(ctx.Context(), filename)
	if err != nil {
		return err
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "png"
	}
	ctx.Type(ext)
	return ctx.Send(data)
}
