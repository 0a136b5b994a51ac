package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher schedules publish tasks on asynq. It satisfies
// service.PublishEnqueuer.
type Publisher struct {
	client Enqueuer
}

func NewPublisher(client Enqueuer) *Publisher {
	return &Publisher{client: client}
}

func NewPublishTask(postID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PublishPostPayload{PostID: postID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePublishPost, payload), nil
}

// EnqueuePublish uses the post id as task id, so a post is queued at most once.
func (p *Publisher) EnqueuePublish(ctx context.Context, postID string, at time.Time) error {
	task, err := NewPublishTask(postID)
	if err != nil {
		return err
	}

	_, err = p.client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.TaskID(postID), asynq.MaxRetry(0))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			slog.Info("publish task already scheduled", "post_id", postID)
			return nil
		}
		return err
	}

	slog.Info("publish task scheduled", "post_id", postID, "process_at", at)
	return nil
}
