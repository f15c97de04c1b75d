package api

import "time"

// swagger:model api.ItemResponse
type ItemResponse struct {
	ID           int       `json:"id" example:"1"`
	Name         string    `json:"name" example:"Buy skydiving gear and take lessons"`
	Done         bool      `json:"done" example:"false"`
	DateCreated  time.Time `json:"date_created" example:"2025-05-01T15:04:05Z07:00"`
	DateModified time.Time `json:"date_modified" example:"2025-05-01T15:04:05Z07:00"`
	BucketlistID int       `json:"bucketlist_id" example:"1"`
}

// swagger:model api.BucketlistResponse
type BucketlistResponse struct {
	ID           int            `json:"id" example:"1"`
	Name         string         `json:"name" example:"Go skydiving in Diani"`
	Items        []ItemResponse `json:"items"`
	DateCreated  time.Time      `json:"date_created" example:"2025-05-01T15:04:05Z07:00"`
	DateModified time.Time      `json:"date_modified" example:"2025-05-01T15:04:05Z07:00"`
	CreatedBy    int            `json:"created_by" example:"1"`
}
