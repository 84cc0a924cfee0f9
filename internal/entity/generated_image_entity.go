package entity

import "time"

type GeneratedImage struct {
	Id         string    `json:"id"`
	CameraName string    `json:"cameraName"`
	ImageFile  string    `json:"imageFile"`
	Timestamp  time.Time `json:"timestamp"`
}
