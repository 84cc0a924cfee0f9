package entity

import "time"

type DashboardInsight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type DashboardSnapshot struct {
	Id        string             `json:"id"`
	Insights  []DashboardInsight `json:"insights"`
	Charts    []Chart            `json:"charts"`
	Stats     map[string]any     `json:"stats"`
	Text      string             `json:"text"`
	Timestamp time.Time          `json:"timestamp"`
}
