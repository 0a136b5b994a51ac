package transfer

import "github.com/maheshrc27/contentflow/internal/models"

type RejectRequest struct {
	Reason string `json:"reason"`
}

type EngagementRequest struct {
	Platform string                   `json:"platform" validate:"required"`
	PostID   string                   `json:"post_id" validate:"required"`
	Metrics  models.EngagementMetrics `json:"metrics"`
}

type GenerateResponse struct {
	Posts        []*models.Post `json:"posts"`
	AutoApproved int            `json:"auto_approved"`
	Error        string         `json:"error,omitempty"`
}

type PublishResponse struct {
	Post     *models.Post            `json:"post"`
	Status   models.PostStatus       `json:"status"`
	Results  []models.PlatformResult `json:"results"`
	Failures map[string]string       `json:"failures,omitempty"`
}

type PostResponse struct {
	Post    *models.Post             `json:"post"`
	History []*models.PostingHistory `json:"history"`
}
