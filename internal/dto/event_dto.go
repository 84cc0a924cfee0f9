package dto

import "time"

// StoreActivityMessage is published on the store-activity topic after
// every successful store mutation.
type StoreActivityMessage struct {
	Action     string    `json:"action"` // "save", "upsert", "delete"
	Collection string    `json:"collection"`
	Id         string    `json:"id"`
	At         time.Time `json:"at"`
}
