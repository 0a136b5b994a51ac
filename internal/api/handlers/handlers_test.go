package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	service.PipelineService

	generated   []*models.Post
	generateErr error
	reviewer    string
	reason      string
	engagement  []string
	stored      []*models.Post
	history     []*models.PostingHistory
	err         error
}

func (f *fakePipeline) GenerateDailyContent(ctx context.Context) ([]*models.Post, error) {
	return f.generated, f.generateErr
}

func (f *fakePipeline) Approve(ctx context.Context, postID, reviewer string) (*models.Post, error) {
	f.reviewer = reviewer
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: postID, Status: models.PostStatusApproved, ReviewedBy: reviewer}, nil
}

func (f *fakePipeline) Reject(ctx context.Context, postID, reason, reviewer string) (*models.Post, error) {
	f.reason = reason
	if strings.TrimSpace(reason) == "" {
		return nil, &service.InvalidArgumentError{Field: "reason", Reason: "rejection reason must not be empty"}
	}
	return &models.Post{ID: postID, Status: models.PostStatusRejected, RejectionReason: reason}, nil
}

func (f *fakePipeline) Post(ctx context.Context, postID string) (*models.Post, error) {
	for _, p := range f.stored {
		if p.ID == postID {
			return p, nil
		}
	}
	return nil, &service.NotFoundError{PostID: postID}
}

func (f *fakePipeline) PostHistory(ctx context.Context, postID string) ([]*models.PostingHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	var rows []*models.PostingHistory
	for _, ph := range f.history {
		if ph.PostID == postID {
			rows = append(rows, ph)
		}
	}
	return rows, nil
}

func (f *fakePipeline) Publish(ctx context.Context, postID string) (*service.PublishResult, error) {
	post := &models.Post{ID: postID, Status: models.PostStatusPosted}
	return &service.PublishResult{
		Post:   post,
		Status: models.PostStatusPosted,
		Results: []models.PlatformResult{
			{Platform: "instagram", Success: true},
			{Platform: "twitter", FailureKind: models.FailureKindTransport},
		},
		Failures: map[string]error{"twitter": &service.TransportError{Platform: "twitter", Err: errors.New("timeout")}},
	}, nil
}

func (f *fakePipeline) RecordEngagement(ctx context.Context, platformID, postID string, metrics models.EngagementMetrics) (models.Engagement, error) {
	f.engagement = append(f.engagement, platformID+"/"+postID)
	return models.Engagement{Platform: platformID, PostID: postID, Metrics: metrics}, nil
}

func (f *fakePipeline) Themes() []models.ContentTheme {
	return []models.ContentTheme{{Tag: models.ThemeSundayReflection, Weekday: time.Sunday, Platforms: []string{"newsletter"}}}
}

func newTestApp(p service.PipelineService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("operator_id", "op-1")
		return c.Next()
	})

	post := NewPostHandler(p)
	app.Post("/content/generate", post.GenerateDailyContent)
	app.Get("/posts/:id", post.GetPost)
	app.Post("/posts/:id/approve", post.ApprovePost)
	app.Post("/posts/:id/reject", post.RejectPost)
	app.Post("/posts/:id/publish", post.PublishPost)

	analytics := NewAnalyticsHandler(p)
	app.Post("/analytics/engagement", analytics.RecordEngagement)

	platform := NewPlatformHandler(p)
	app.Get("/themes", platform.ListThemes)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestGenerateDailyContent(t *testing.T) {
	posts := []*models.Post{
		{ID: "p1", Status: models.PostStatusPending},
		{ID: "p2", Status: models.PostStatusApproved},
	}

	t.Run("created", func(t *testing.T) {
		status, body := do(t, newTestApp(&fakePipeline{generated: posts}), "POST", "/content/generate", "")
		assert.Equal(t, fiber.StatusCreated, status)

		var resp transfer.GenerateResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Len(t, resp.Posts, 2)
		assert.Equal(t, 1, resp.AutoApproved)
	})

	t.Run("partial generation", func(t *testing.T) {
		p := &fakePipeline{generated: posts[:1], generateErr: &service.ContentGenerationError{Theme: "tips_tuesday"}}
		status, body := do(t, newTestApp(p), "POST", "/content/generate", "")
		assert.Equal(t, fiber.StatusMultiStatus, status)
		assert.Contains(t, string(body), "tips_tuesday")
	})

	t.Run("generation failed outright", func(t *testing.T) {
		p := &fakePipeline{generateErr: &service.ContentGenerationError{Theme: "tips_tuesday"}}
		status, _ := do(t, newTestApp(p), "POST", "/content/generate", "")
		assert.Equal(t, fiber.StatusBadGateway, status)
	})
}

func TestApprovePost(t *testing.T) {
	p := &fakePipeline{}
	status, body := do(t, newTestApp(p), "POST", "/posts/p1/approve", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "op-1", p.reviewer)
	assert.Contains(t, string(body), `"status":"approved"`)

	p = &fakePipeline{err: &service.NotFoundError{PostID: "p1", Bucket: service.BucketPending}}
	status, _ = do(t, newTestApp(p), "POST", "/posts/p1/approve", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRejectPost(t *testing.T) {
	p := &fakePipeline{}
	status, _ := do(t, newTestApp(p), "POST", "/posts/p1/reject", `{"reason":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := do(t, newTestApp(p), "POST", "/posts/p1/reject", `{"reason":"off-brand"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "off-brand", p.reason)
	assert.Contains(t, string(body), `"status":"rejected"`)

	status, _ = do(t, newTestApp(p), "POST", "/posts/p1/reject", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetPostNotFound(t *testing.T) {
	status, _ := do(t, newTestApp(&fakePipeline{}), "GET", "/posts/nope", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGetPostIncludesHistory(t *testing.T) {
	p := &fakePipeline{
		stored: []*models.Post{
			{ID: "p1", Status: models.PostStatusPosted},
			{ID: "p2", Status: models.PostStatusPending},
		},
		history: []*models.PostingHistory{
			{ID: 1, PostID: "p1", Platform: "twitter", Success: true, ExternalPostID: "tw-1"},
			{ID: 2, PostID: "p1", Platform: "instagram", FailureKind: models.FailureKindTransport},
		},
	}

	status, body := do(t, newTestApp(p), "GET", "/posts/p1", "")
	assert.Equal(t, fiber.StatusOK, status)
	var resp transfer.PostResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, models.PostStatusPosted, resp.Post.Status)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "tw-1", resp.History[0].ExternalPostID)

	status, body = do(t, newTestApp(p), "GET", "/posts/p2", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"history":[]`)

	p.err = errors.New("db down")
	status, _ = do(t, newTestApp(p), "GET", "/posts/p1", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestPublishPost(t *testing.T) {
	status, body := do(t, newTestApp(&fakePipeline{}), "POST", "/posts/p1/publish", "")
	assert.Equal(t, fiber.StatusOK, status)

	var resp transfer.PublishResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, models.PostStatusPosted, resp.Status)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, "transport to twitter failed: timeout", resp.Failures["twitter"])
}

func TestRecordEngagement(t *testing.T) {
	p := &fakePipeline{}
	status, _ := do(t, newTestApp(p), "POST", "/analytics/engagement", `{"platform":"twitter","post_id":"p1","metrics":{"likes":4}}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"twitter/p1"}, p.engagement)

	status, _ = do(t, newTestApp(p), "POST", "/analytics/engagement", `{"platform":"twitter"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Len(t, p.engagement, 1)
}

func TestListThemes(t *testing.T) {
	status, body := do(t, newTestApp(&fakePipeline{}), "GET", "/themes", "")
	assert.Equal(t, fiber.StatusOK, status)

	var themes []models.ContentTheme
	require.NoError(t, json.Unmarshal(body, &themes))
	require.Len(t, themes, 1)
	assert.Equal(t, models.ThemeSundayReflection, themes[0].Tag)
}
