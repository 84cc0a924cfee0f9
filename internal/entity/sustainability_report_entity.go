package entity

import "time"

type SustainabilityReport struct {
	Id        string         `json:"id"`
	InputData map[string]any `json:"inputData"`
	Report    string         `json:"report"` // markdown
	Charts    []Chart        `json:"charts"`
	Timestamp time.Time      `json:"timestamp"`
}
