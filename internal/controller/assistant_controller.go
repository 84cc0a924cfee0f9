package controller

import (
	"ai-storevision-be/internal/dto"
	"ai-storevision-be/internal/pkg/apperrors"
	"ai-storevision-be/internal/pkg/serverutils"
	"ai-storevision-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	GenerateImage(ctx *fiber.Ctx) error
	AnalyzeImage(ctx *fiber.Ctx) error
	StoreInsights(ctx *fiber.Ctx) error
	SustainabilityReport(ctx *fiber.Ctx) error
	DashboardInsights(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate-image", c.GenerateImage)
	r.Post("/analyze-image", c.AnalyzeImage)
	r.Post("/store-insights", c.StoreInsights)
	r.Post("/sustainability-report", c.SustainabilityReport)
	r.Post("/dashboard-insights", c.DashboardInsights)
}

func (c *assistantController) GenerateImage(ctx *fiber.Ctx) error {
	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateImage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) AnalyzeImage(ctx *fiber.Ctx) error {
	var req dto.AnalyzeImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AnalyzeImage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) StoreInsights(ctx *fiber.Ctx) error {
	var req dto.StoreInsightsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StoreInsights(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) SustainabilityReport(ctx *fiber.Ctx) error {
	var req dto.SustainabilityReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SustainabilityReport(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *assistantController) DashboardInsights(ctx *fiber.Ctx) error {
	var req dto.DashboardInsightsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("corpo da requisição inválido")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.DashboardInsights(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
