package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/maheshrc27/contentflow/internal/models"
)

type SendResult struct {
	Success        bool
	ExternalPostID string
	ErrorDetail    string
}

// Transport delivers a post to one platform. Retries and timeouts are the
// transport's business; a timeout should surface as an error.
type Transport interface {
	Send(ctx context.Context, platformID string, post *models.Post) (SendResult, error)
}

type PublishResult struct {
	Post     *models.Post
	Status   models.PostStatus
	Results  []models.PlatformResult
	Failures map[string]error // platform -> validation error or *TransportError
}

type PlatformPublisher struct {
	registry    *PlatformRegistry
	queue       *ApprovalQueue
	transport   Transport
	concurrency int
}

func NewPlatformPublisher(registry *PlatformRegistry, queue *ApprovalQueue, transport Transport) *PlatformPublisher {
	return &PlatformPublisher{
		registry:    registry,
		queue:       queue,
		transport:   transport,
		concurrency: 10,
	}
}

// Publish validates and dispatches an approved post to each of its platforms
// independently. The post ends up posted when at least one platform accepted
// it, failed otherwise. Only a missing post or a cancelled context before any
// dispatch is returned as an error.
func (p *PlatformPublisher) Publish(ctx context.Context, postID string) (*PublishResult, error) {
	post, err := p.queue.Claim(postID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		p.queue.Release(postID)
		return nil, err
	}

	results := make([]models.PlatformResult, len(post.Platforms))
	failures := make([]error, len(post.Platforms))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)

	for i, platformID := range post.Platforms {
		if err := p.registry.ValidateFor(platformID, post); err != nil {
			results[i] = models.PlatformResult{
				Platform:     platformID,
				FailureKind:  models.FailureKindValidation,
				ErrorMessage: err.Error(),
			}
			failures[i] = err
			slog.Info("post failed platform validation", "post_id", post.ID, "platform", platformID, "error", err)
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, platformID string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[i], failures[i] = p.send(ctx, platformID, post)
		}(i, platformID)
	}
	wg.Wait()

	status := models.PostStatusFailed
	failed := make(map[string]error)
	for i, r := range results {
		if r.Success {
			status = models.PostStatusPosted
			continue
		}
		failed[r.Platform] = failures[i]
	}

	final, err := p.queue.Complete(post.ID, status, results)
	if err != nil {
		return nil, err
	}

	slog.Info("post published", "post_id", post.ID, "status", status, "failed_platforms", final.FailedPlatforms())
	return &PublishResult{
		Post:     final,
		Status:   status,
		Results:  final.PublishResults,
		Failures: failed,
	}, nil
}

func (p *PlatformPublisher) send(ctx context.Context, platformID string, post *models.Post) (models.PlatformResult, error) {
	result := models.PlatformResult{Platform: platformID}

	res, err := p.transport.Send(ctx, platformID, post)
	if err == nil && !res.Success {
		detail := res.ErrorDetail
		if detail == "" {
			detail = "rejected by platform"
		}
		err = errors.New(detail)
	}
	if err != nil {
		terr := &TransportError{Platform: platformID, Err: err}
		result.FailureKind = models.FailureKindTransport
		result.ErrorMessage = terr.Error()
		slog.Info("post delivery failed", "post_id", post.ID, "platform", platformID, "error", err)
		return result, terr
	}

	result.Success = true
	result.ExternalPostID = res.ExternalPostID
	return result, nil
}
