package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
)

// PublishEnqueuer arranges for a post to be published at a given time.
type PublishEnqueuer interface {
	EnqueuePublish(ctx context.Context, postID string, at time.Time) error
}

type Archiver interface {
	Archive(ctx context.Context, post *models.Post) error
}

type PipelineService interface {
	GenerateDailyContent(ctx context.Context) ([]*models.Post, error)
	Approve(ctx context.Context, postID, reviewer string) (*models.Post, error)
	Reject(ctx context.Context, postID, reason, reviewer string) (*models.Post, error)
	Queue() QueueSnapshot
	Post(ctx context.Context, postID string) (*models.Post, error)
	PostHistory(ctx context.Context, postID string) ([]*models.PostingHistory, error)
	Restore(ctx context.Context) (int, error)
	Publish(ctx context.Context, postID string) (*PublishResult, error)
	RecordEngagement(ctx context.Context, platformID, postID string, metrics models.EngagementMetrics) (models.Engagement, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	Platforms() []models.Platform
	Themes() []models.ContentTheme
}

// PipelineDeps wires the optional side effects. Nil members are skipped.
type PipelineDeps struct {
	Posts      repository.PostRepository
	History    repository.PostingHistoryRepository
	Engagement repository.EngagementRepository
	Archive    Archiver
	Enqueuer   PublishEnqueuer
}

type pipelineService struct {
	registry  *PlatformRegistry
	scheduler *Scheduler
	queue     *ApprovalQueue
	publisher *PlatformPublisher
	tracker   *AnalyticsTracker
	deps      PipelineDeps
}

func NewPipelineService(
	registry *PlatformRegistry,
	scheduler *Scheduler,
	queue *ApprovalQueue,
	publisher *PlatformPublisher,
	tracker *AnalyticsTracker,
	deps PipelineDeps) PipelineService {
	return &pipelineService{
		registry:  registry,
		scheduler: scheduler,
		queue:     queue,
		publisher: publisher,
		tracker:   tracker,
		deps:      deps,
	}
}

func (s *pipelineService) GenerateDailyContent(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.scheduler.GenerateDailyContent(ctx)
	for _, p := range posts {
		s.persist(ctx, p)
		if p.Status == models.PostStatusApproved {
			s.enqueue(ctx, p)
		}
	}
	return posts, err
}

func (s *pipelineService) Approve(ctx context.Context, postID, reviewer string) (*models.Post, error) {
	post, err := s.queue.Approve(postID, reviewer)
	if err != nil {
		return nil, err
	}
	slog.Info("post approved", "post_id", postID, "reviewer", reviewer)

	s.persist(ctx, post)
	s.enqueue(ctx, post)
	return post, nil
}

func (s *pipelineService) Reject(ctx context.Context, postID, reason, reviewer string) (*models.Post, error) {
	post, err := s.queue.Reject(postID, reason, reviewer)
	if err != nil {
		return nil, err
	}
	slog.Info("post rejected", "post_id", postID, "reviewer", reviewer, "reason", post.RejectionReason)

	s.persist(ctx, post)
	s.archive(ctx, post)
	return post, nil
}

func (s *pipelineService) Queue() QueueSnapshot {
	return s.queue.Snapshot()
}

// Post looks in the live queue first, then in the post store.
func (s *pipelineService) Post(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.queue.Get(postID)
	var nf *NotFoundError
	if err == nil || !errors.As(err, &nf) || s.deps.Posts == nil {
		return post, err
	}

	stored, serr := s.deps.Posts.GetByID(ctx, postID)
	if serr != nil {
		return nil, serr
	}
	if stored == nil {
		return nil, err
	}
	return stored, nil
}

// PostHistory lists the per-platform delivery attempts recorded for a post.
func (s *pipelineService) PostHistory(ctx context.Context, postID string) ([]*models.PostingHistory, error) {
	if s.deps.History == nil {
		return nil, nil
	}
	return s.deps.History.ListByPostID(ctx, postID)
}

// Restore reloads pending and approved posts from the post store and
// reschedules the approved ones. Publish tasks are keyed by post id, so a
// task that survived the restart is not duplicated.
func (s *pipelineService) Restore(ctx context.Context) (int, error) {
	if s.deps.Posts == nil {
		return 0, nil
	}

	var stored []*models.Post
	for _, status := range []models.PostStatus{models.PostStatusPending, models.PostStatusApproved} {
		posts, err := s.deps.Posts.ListByStatus(ctx, status)
		if err != nil {
			return 0, err
		}
		stored = append(stored, posts...)
	}

	restored := s.queue.Restore(stored)
	for _, p := range restored {
		if p.Status == models.PostStatusApproved {
			s.enqueue(ctx, p)
		}
	}
	if skipped := len(stored) - len(restored); skipped > 0 {
		slog.Warn("posts skipped on restore", "skipped", skipped)
	}
	slog.Info("approval queue restored", "posts", len(restored))
	return len(restored), nil
}

func (s *pipelineService) Publish(ctx context.Context, postID string) (*PublishResult, error) {
	result, err := s.publisher.Publish(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.tracker.ObservePublished(result.Post)
	s.persist(ctx, result.Post)
	if s.deps.History != nil {
		for _, r := range result.Results {
			ph := &models.PostingHistory{
				PostID:         result.Post.ID,
				Platform:       r.Platform,
				Success:        r.Success,
				ExternalPostID: r.ExternalPostID,
				FailureKind:    r.FailureKind,
				ErrorMessage:   r.ErrorMessage,
			}
			if _, err := s.deps.History.Create(ctx, ph); err != nil {
				slog.Error("saving posting history failed", "post_id", postID, "platform", r.Platform, "error", err)
			}
		}
	}
	s.archive(ctx, result.Post)
	return result, nil
}

func (s *pipelineService) RecordEngagement(ctx context.Context, platformID, postID string, metrics models.EngagementMetrics) (models.Engagement, error) {
	e, err := s.tracker.RecordEngagement(platformID, postID, metrics)
	if err != nil {
		return models.Engagement{}, err
	}

	if s.deps.Engagement != nil {
		if err := s.deps.Engagement.Upsert(ctx, &e); err != nil {
			slog.Error("saving engagement failed", "post_id", postID, "platform", platformID, "error", err)
		}
	}

	if total, ok := s.tracker.PostEngagement(postID); ok {
		snapshot := models.Engagement{Platform: "all", PostID: postID, Metrics: total, SyncedAt: e.SyncedAt}
		// only posted posts carry engagement; metrics for others are still tracked
		_ = s.queue.AnnotateEngagement(postID, snapshot)
	}
	return e, nil
}

func (s *pipelineService) Dashboard(ctx context.Context) (*Dashboard, error) {
	d, err := s.tracker.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	d.Queue = s.queue.StatusCounts()
	return d, nil
}

func (s *pipelineService) Platforms() []models.Platform {
	return s.registry.List()
}

func (s *pipelineService) Themes() []models.ContentTheme {
	return s.scheduler.strategy.Themes()
}

func (s *pipelineService) persist(ctx context.Context, post *models.Post) {
	if s.deps.Posts == nil {
		return
	}
	if err := s.deps.Posts.Save(ctx, post); err != nil {
		slog.Error("saving post failed", "post_id", post.ID, "status", post.Status, "error", err)
	}
}

func (s *pipelineService) enqueue(ctx context.Context, post *models.Post) {
	if s.deps.Enqueuer == nil {
		return
	}
	if err := s.deps.Enqueuer.EnqueuePublish(ctx, post.ID, post.ScheduledTime); err != nil {
		slog.Error("scheduling publish failed", "post_id", post.ID, "scheduled_time", post.ScheduledTime, "error", err)
	}
}

func (s *pipelineService) archive(ctx context.Context, post *models.Post) {
	if s.deps.Archive == nil {
		return
	}
	if err := s.deps.Archive.Archive(ctx, post); err != nil {
		slog.Error("archiving post failed", "post_id", post.ID, "error", err)
	}
}
