package queue

import (
	"github.com/maheshrc27/contentflow/internal/service"
)

type Queue struct {
	pipeline service.PipelineService
}

func NewQueue(pipeline service.PipelineService) *Queue {
	return &Queue{pipeline: pipeline}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
