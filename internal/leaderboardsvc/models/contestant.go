package models

import "time"

// Contestant represents the contestants table in the database.
type Contestant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
