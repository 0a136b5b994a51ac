package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/robfig/cron"
)

type ContentGenerator interface {
	GenerateDailyContent(ctx context.Context) ([]*models.Post, error)
}

type DailyContentJob struct {
	pipeline ContentGenerator
	timeout  time.Duration
}

func NewDailyContentJob(pipeline ContentGenerator) *DailyContentJob {
	return &DailyContentJob{
		pipeline: pipeline,
		timeout:  5 * time.Minute,
	}
}

func (j *DailyContentJob) GenerateDailyContent() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	posts, err := j.pipeline.GenerateDailyContent(ctx)
	if err != nil {
		slog.Error("daily content generation incomplete", "generated", len(posts), "error", err)
		return
	}

	pending := 0
	for _, p := range posts {
		if p.Status == models.PostStatusPending {
			pending++
		}
	}
	slog.Info("daily content generated", "posts", len(posts), "awaiting_approval", pending)
}

// Start registers the job on a cron running in loc and starts it.
func Start(spec string, loc *time.Location, job *DailyContentJob) (*cron.Cron, error) {
	c := cron.NewWithLocation(loc)
	if err := c.AddFunc(spec, job.GenerateDailyContent); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
