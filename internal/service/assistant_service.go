package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-storevision-be/internal/constant"
	"ai-storevision-be/internal/dto"
	"ai-storevision-be/internal/entity"
	"ai-storevision-be/internal/pkg/apperrors"
	"ai-storevision-be/internal/pkg/logger"
	"ai-storevision-be/pkg/datauri"
	"ai-storevision-be/pkg/llm"
)

type IAssistantService interface {
	GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error)
	AnalyzeImage(ctx context.Context, req *dto.AnalyzeImageRequest) (*entity.VisionResult, error)
	StoreInsights(ctx context.Context, req *dto.StoreInsightsRequest) (*dto.StoreInsightsResponse, error)
	SustainabilityReport(ctx context.Context, req *dto.SustainabilityReportRequest) (*dto.SustainabilityReportResponse, error)
	DashboardInsights(ctx context.Context, req *dto.DashboardInsightsRequest) (*dto.DashboardInsightsResponse, error)
}

type assistantService struct {
	provider      llm.LLMProvider
	fallbackModel string
	logger        logger.ILogger
}

func NewAssistantService(
	provider llm.LLMProvider,
	fallbackModel string,
	logger logger.ILogger,
) IAssistantService {
	return &assistantService{
		provider:      provider,
		fallbackModel: fallbackModel,
		logger:        logger,
	}
}

func (a *assistantService) GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error) {
	start := time.Now()
	img, err := a.provider.GenerateImage(ctx, req.Prompt)
	if err == llm.ErrNotSupported {
		return nil, apperrors.New(apperrors.CodeBadRequest, 400, msgImageNotSupported, err)
	}
	if err != nil {
		appErr := classifyModelError(err)
		a.logModelFailure("generate-image", appErr)
		return nil, appErr
	}
	if len(img.Data) == 0 {
		return nil, apperrors.New(apperrors.CodeInternal, 500, msgEmptyImageResponse, nil)
	}

	a.logger.Info("assistant", "image generated", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
		"bytes":      len(img.Data),
	})
	return &dto.GenerateImageResponse{
		ImageData: datauri.Encode(img.MediaType, img.Data),
	}, nil
}

func (a *assistantService) AnalyzeImage(ctx context.Context, req *dto.AnalyzeImageRequest) (*entity.VisionResult, error) {
	img, err := datauri.Parse(req.ImageData)
	if err != nil {
		return nil, apperrors.Validation("imageData deve ser um data URI de imagem em base64")
	}

	start := time.Now()
	prompt := fmt.Sprintf(constant.AnalyzeImagePromptV1, req.Task)
	raw, err := a.provider.GenerateVision(ctx, prompt, &llm.ImagePayload{
		MediaType: img.MediaType,
		Data:      img.Data,
	})
	if err != nil {
		appErr := classifyModelError(err)
		a.logModelFailure("analyze-image", appErr)
		return nil, appErr
	}

	var result entity.VisionResult
	if err := unmarshalModelJSON(raw, &result); err != nil {
		// Malformed model output never bubbles up: degrade to a readable
		// summary with empty structure.
		a.logger.Warn("assistant", "vision result not parsable, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		result = entity.VisionResult{Summary: fallbackText(raw, msgAnalysisFallback)}
	}
	if result.Objects == nil {
		result.Objects = []string{}
	}
	if result.Charts == nil {
		result.Charts = []entity.Chart{}
	}

	a.logger.Info("assistant", "image analyzed", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
		"objects":    len(result.Objects),
	})
	return &result, nil
}

func (a *assistantService) StoreInsights(ctx context.Context, req *dto.StoreInsightsRequest) (*dto.StoreInsightsResponse, error) {
	contextJson, _ := json.Marshal(req.Context)
	prompt := fmt.Sprintf(constant.StoreInsightsPromptV1, string(contextJson), req.Query)

	raw, err := a.generateText(ctx, "store-insights", prompt)
	if err != nil {
		return nil, err
	}

	var res dto.StoreInsightsResponse
	if err := unmarshalModelJSON(raw, &res); err != nil {
		a.logger.Warn("assistant", "insights result not parsable, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		res = dto.StoreInsightsResponse{Text: fallbackText(raw, msgAnalysisFallback)}
	}
	if res.Charts == nil {
		res.Charts = []entity.Chart{}
	}
	return &res, nil
}

func (a *assistantService) SustainabilityReport(ctx context.Context, req *dto.SustainabilityReportRequest) (*dto.SustainabilityReportResponse, error) {
	inputJson, _ := json.Marshal(req.InputData)
	prompt := fmt.Sprintf(constant.SustainabilityReportPromptV1, string(inputJson))

	raw, err := a.generateText(ctx, "sustainability-report", prompt)
	if err != nil {
		return nil, err
	}

	var res dto.SustainabilityReportResponse
	if err := unmarshalModelJSON(raw, &res); err != nil {
		a.logger.Warn("assistant", "report result not parsable, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		res = dto.SustainabilityReportResponse{Report: fallbackText(raw, msgAnalysisFallback)}
	}
	if res.Charts == nil {
		res.Charts = []entity.Chart{}
	}
	return &res, nil
}

func (a *assistantService) DashboardInsights(ctx context.Context, req *dto.DashboardInsightsRequest) (*dto.DashboardInsightsResponse, error) {
	statsJson, _ := json.Marshal(req.Stats)
	prompt := fmt.Sprintf(constant.DashboardInsightsPromptV1, string(statsJson))

	raw, err := a.generateText(ctx, "dashboard-insights", prompt)
	if err != nil {
		return nil, err
	}

	var res dto.DashboardInsightsResponse
	if err := unmarshalModelJSON(raw, &res); err != nil {
		a.logger.Warn("assistant", "dashboard result not parsable, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		res = dto.DashboardInsightsResponse{Text: fallbackText(raw, msgAnalysisFallback)}
	}
	if res.Insights == nil {
		res.Insights = []entity.DashboardInsight{}
	}
	if res.Charts == nil {
		res.Charts = []entity.Chart{}
	}
	return &res, nil
}

// generateText runs a text capability on the primary model and retries
// once on the secondary model when the failure class makes a retry
// worthwhile.
func (a *assistantService) generateText(ctx context.Context, capability, prompt string) (string, error) {
	start := time.Now()
	raw, err := a.provider.Generate(ctx, prompt)
	if err == nil {
		a.logger.Info("assistant", "text generated", map[string]interface{}{
			"capability": capability,
			"durationMs": time.Since(start).Milliseconds(),
		})
		return raw, nil
	}

	appErr := classifyModelError(err)
	if !retriable(appErr) || a.fallbackModel == "" {
		a.logModelFailure(capability, appErr)
		return "", appErr
	}

	a.logger.Warn("assistant", "primary model failed, trying fallback", map[string]interface{}{
		"capability":    capability,
		"code":          appErr.Code,
		"fallbackModel": a.fallbackModel,
	})

	raw, err = a.provider.Generate(ctx, prompt, llm.WithModel(a.fallbackModel))
	if err != nil {
		appErr = classifyModelError(err)
		a.logModelFailure(capability, appErr)
		return "", appErr
	}

	a.logger.Info("assistant", "text generated on fallback model", map[string]interface{}{
		"capability": capability,
		"durationMs": time.Since(start).Milliseconds(),
	})
	return raw, nil
}

func (a *assistantService) logModelFailure(capability string, appErr *apperrors.AppError) {
	a.logger.Error("assistant", "model call failed", map[string]interface{}{
		"capability": capability,
		"code":       appErr.Code,
		"error":      appErr.Error(), // raw detail stays in server logs
	})
}

// unmarshalModelJSON strips markdown fences the model sometimes adds
// around JSON replies, then parses.
func unmarshalModelJSON(raw string, v any) error {
	b := []byte(raw)
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	b = bytes.TrimSpace(b)
	return json.Unmarshal(b, v)
}

func fallbackText(raw, fallback string) string {
	if trimmed := bytes.TrimSpace([]byte(raw)); len(trimmed) > 0 {
		return string(trimmed)
	}
	return fallback
}
