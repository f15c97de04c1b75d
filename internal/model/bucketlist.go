// File: internal/model/bucketlist.go
package model

import "time"

type Bucketlist struct {
	ID           int              `db:"id" json:"id"`
	Name         string           `db:"name" json:"name"`
	CreatedBy    int              `db:"created_by" json:"created_by"`
	DateCreated  time.Time        `db:"date_created" json:"date_created"`
	DateModified time.Time        `db:"date_modified" json:"date_modified"`
	Items        []BucketlistItem `db:"-" json:"items"`
}

type BucketlistItem struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Done         bool      `db:"done" json:"done"`
	BucketlistID int       `db:"bucketlist_id" json:"bucketlist_id"`
	DateCreated  time.Time `db:"date_created" json:"date_created"`
	DateModified time.Time `db:"date_modified" json:"date_modified"`
}
