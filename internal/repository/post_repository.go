package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/contentflow/internal/models"
)

type PostRepository interface {
	Save(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListByStatus(ctx context.Context, status models.PostStatus) ([]*models.Post, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, content, media_refs, platforms, theme, hashtags, scheduled_time, status,
	reviewed_by, rejection_reason, publish_results, published_at, created_at, updated_at`

// Save upserts the post snapshot. Posts are never deleted.
func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	results, err := json.Marshal(post.PublishResults)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			media_refs = EXCLUDED.media_refs,
			status = EXCLUDED.status,
			reviewed_by = EXCLUDED.reviewed_by,
			rejection_reason = EXCLUDED.rejection_reason,
			publish_results = EXCLUDED.publish_results,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		post.ID,
		post.Content,
		pq.Array(textArray(post.MediaRefs)),
		pq.Array(textArray(post.Platforms)),
		string(post.Theme),
		pq.Array(textArray(post.Hashtags)),
		post.ScheduledTime,
		string(post.Status),
		post.ReviewedBy,
		post.RejectionReason,
		results,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) ListByStatus(ctx context.Context, status models.PostStatus) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY scheduled_time`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// textArray keeps nil slices from binding as NULL against NOT NULL array columns.
func textArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	var (
		post        models.Post
		theme       string
		status      string
		results     []byte
		publishedAt sql.NullTime
	)
	err := s.Scan(
		&post.ID,
		&post.Content,
		pq.Array(&post.MediaRefs),
		pq.Array(&post.Platforms),
		&theme,
		pq.Array(&post.Hashtags),
		&post.ScheduledTime,
		&status,
		&post.ReviewedBy,
		&post.RejectionReason,
		&results,
		&publishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Theme = models.ThemeTag(theme)
	post.Status = models.PostStatus(status)
	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &post.PublishResults); err != nil {
			return nil, err
		}
	}
	return &post, nil
}
