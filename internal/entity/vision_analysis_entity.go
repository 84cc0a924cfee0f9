package entity

import "time"

// VisionResult is the normalized output of an image analysis run.
type VisionResult struct {
	Objects []string `json:"objects"`
	Summary string   `json:"summary"`
	Charts  []Chart  `json:"charts"`
}

type VisionAnalysis struct {
	Id         string       `json:"id"`
	CameraName string       `json:"cameraName"`
	ImageFile  *string      `json:"imageFile"` // nil when no image payload was stored
	Task       string       `json:"task"`
	Result     VisionResult `json:"result"`
	Timestamp  time.Time    `json:"timestamp"`
}
