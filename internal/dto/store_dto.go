package dto

import (
	"ai-storevision-be/internal/entity"
)

type SaveGeneratedImageRequest struct {
	CameraName string `json:"cameraName" validate:"required"`
	ImageData  string `json:"imageData" validate:"required"` // data URI, strict
}

type SaveVisionAnalysisRequest struct {
	CameraName string              `json:"cameraName" validate:"required"`
	ImageData  string              `json:"imageData"` // data URI, optional and tolerant
	Task       string              `json:"task" validate:"required"`
	Result     entity.VisionResult `json:"result"`
}

type UpsertChatSessionRequest struct {
	Id       string               `json:"id"`
	Messages []entity.ChatMessage `json:"messages" validate:"required,min=1"`
}

type SaveSustainabilityReportRequest struct {
	InputData map[string]any `json:"inputData"`
	Report    string         `json:"report" validate:"required"`
	Charts    []entity.Chart `json:"charts"`
}

type SaveDashboardSnapshotRequest struct {
	Insights []entity.DashboardInsight `json:"insights"`
	Charts   []entity.Chart            `json:"charts"`
	Stats    map[string]any            `json:"stats"`
	Text     string                    `json:"text"`
}
