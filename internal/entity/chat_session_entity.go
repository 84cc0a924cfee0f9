package entity

import "time"

type ChatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Charts    []Chart    `json:"charts,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type ChatSession struct {
	Id            string        `json:"id"`
	Messages      []ChatMessage `json:"messages"`
	StartedAt     time.Time     `json:"startedAt"`
	LastMessageAt time.Time     `json:"lastMessageAt"`
}
