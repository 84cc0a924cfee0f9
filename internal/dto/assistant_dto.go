package dto

import (
	"ai-storevision-be/internal/entity"
)

type GenerateImageRequest struct {
	Prompt     string `json:"prompt" validate:"required"`
	CameraName string `json:"cameraName"`
}

type GenerateImageResponse struct {
	ImageData string `json:"imageData"` // data URI
}

type AnalyzeImageRequest struct {
	ImageData string `json:"imageData" validate:"required"` // data URI
	Task      string `json:"task" validate:"required"`
}

type StoreInsightsRequest struct {
	Query string `json:"query" validate:"required"`
	// Context is the caller's view of the current store state, forwarded
	// to the model as free-form grounding, not a contract.
	Context map[string]any `json:"context"`
}

type StoreInsightsResponse struct {
	Text   string         `json:"text"`
	Charts []entity.Chart `json:"charts"`
}

type SustainabilityReportRequest struct {
	InputData map[string]any `json:"inputData" validate:"required"`
}

type SustainabilityReportResponse struct {
	Report string         `json:"report"` // markdown
	Charts []entity.Chart `json:"charts"`
}

type DashboardInsightsRequest struct {
	Stats map[string]any `json:"stats" validate:"required"`
}

type DashboardInsightsResponse struct {
	Insights []entity.DashboardInsight `json:"insights"`
	Charts   []entity.Chart            `json:"charts"`
	Text     string                    `json:"text"`
}
