package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentflow/internal/service"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := q.pipeline.Publish(ctx, payload.PostID)
	if err != nil {
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			// already published by hand, or no longer approved
			slog.Info("publish task skipped", "post_id", payload.PostID, "error", err)
			return nil
		}
		return err
	}

	slog.Info("publish task finished", "post_id", payload.PostID, "status", result.Status)
	return nil
}
