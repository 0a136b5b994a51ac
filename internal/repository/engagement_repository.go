package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type EngagementRepository interface {
	Upsert(ctx context.Context, e *models.Engagement) error
}

type engagementRepository struct {
	db *sql.DB
}

func NewEngagementRepository(db *sql.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Upsert(ctx context.Context, e *models.Engagement) error {
	query := `
		INSERT INTO engagement (platform, post_id, likes, comments, shares, impressions, clicks, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (platform, post_id) DO UPDATE SET
			likes = EXCLUDED.likes,
			comments = EXCLUDED.comments,
			shares = EXCLUDED.shares,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			synced_at = EXCLUDED.synced_at
	`
	m := e.Metrics
	_, err := r.db.ExecContext(ctx, query, e.Platform, e.PostID, m.Likes, m.Comments, m.Shares, m.Impressions, m.Clicks, e.SyncedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
