package models

import "time"

type PostingHistory struct {
	ID             int64       `db:"id" json:"id"`
	PostID         string      `db:"post_id" json:"post_id"`
	Platform       string      `db:"platform" json:"platform"`
	Success        bool        `db:"success" json:"success"`
	ExternalPostID string      `db:"external_post_id" json:"external_post_id"`
	FailureKind    FailureKind `db:"failure_kind" json:"failure_kind"`
	ErrorMessage   string      `db:"error_message" json:"error_message"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
}
