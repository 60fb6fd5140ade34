package models

import "time"

// Chart represents a trading chart uploaded by an admin. Charts are
// immutable once created; there is no update or delete path.
type Chart struct {
	ID         int       `json:"id"`
	Symbol     string    `json:"symbol"`
	ImageURL   string    `json:"image_url"`
	Notes      string    `json:"notes,omitempty"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
