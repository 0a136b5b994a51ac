package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var DefaultOptimalHours = []int{8, 12, 15, 18, 20}

type GenerationRequest struct {
	Theme    models.ContentTheme
	Index    int
	Hashtags []string
}

type GeneratedContent struct {
	Content   string
	MediaRefs []string
}

// ContentGenerator supplies post bodies and media. Implementations live
// outside this package.
type ContentGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (GeneratedContent, error)
}

type Scheduler struct {
	strategy     *ContentStrategy
	queue        *ApprovalQueue
	generator    ContentGenerator
	optimalHours []int
	loc          *time.Location
	now          func() time.Time
	newID        func() (string, error)
}

func NewScheduler(strategy *ContentStrategy, queue *ApprovalQueue, generator ContentGenerator, optimalHours []int, loc *time.Location) *Scheduler {
	if len(optimalHours) == 0 {
		optimalHours = DefaultOptimalHours
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		strategy:     strategy,
		queue:        queue,
		generator:    generator,
		optimalHours: append([]int(nil), optimalHours...),
		loc:          loc,
		now:          time.Now,
		newID:        func() (string, error) { return gonanoid.New() },
	}
}

func (s *Scheduler) GenerateDailyContent(ctx context.Context) ([]*models.Post, error) {
	return s.GenerateForDate(ctx, s.now())
}

// GenerateForDate expands the day's theme into drafts and submits each one.
// On a generation failure the posts already submitted are returned together
// with the error.
func (s *Scheduler) GenerateForDate(ctx context.Context, date time.Time) ([]*models.Post, error) {
	date = date.In(s.loc)
	theme := s.strategy.ThemeForDay(date)
	hashtags := s.strategy.HashtagsFor(theme.Tag)
	times := s.ScheduleTimes(date, theme.TargetPosts)

	posts := make([]*models.Post, 0, theme.TargetPosts)
	for i, at := range times {
		if err := ctx.Err(); err != nil {
			return posts, err
		}

		generated, err := s.generator.Generate(ctx, GenerationRequest{Theme: theme, Index: i, Hashtags: hashtags})
		if err != nil {
			var cge *ContentGenerationError
			if !errors.As(err, &cge) {
				err = &ContentGenerationError{Theme: string(theme.Tag), Err: err}
			}
			slog.Error("content generation failed", "theme", theme.Tag, "index", i, "error", err)
			return posts, err
		}
		if strings.TrimSpace(generated.Content) == "" {
			err := &ContentGenerationError{Theme: string(theme.Tag)}
			slog.Error("content generation failed", "theme", theme.Tag, "index", i, "error", err)
			return posts, err
		}

		id, err := s.newID()
		if err != nil {
			return posts, err
		}

		post := &models.Post{
			ID:            id,
			Content:       generated.Content,
			MediaRefs:     generated.MediaRefs,
			Platforms:     theme.Platforms,
			Theme:         theme.Tag,
			Hashtags:      hashtags,
			ScheduledTime: at,
		}
		autoApproved, err := s.queue.Submit(post)
		if err != nil {
			return posts, err
		}
		slog.Info("draft submitted", "post_id", id, "theme", theme.Tag, "scheduled_time", at, "auto_approved", autoApproved)

		stored, err := s.queue.Get(id)
		if err != nil {
			return posts, err
		}
		posts = append(posts, stored)
	}
	return posts, nil
}

// ScheduleTimes assigns the i-th post of the day to optimalHours[i mod len].
// Hours repeat once n exceeds the list length.
func (s *Scheduler) ScheduleTimes(date time.Time, n int) []time.Time {
	date = date.In(s.loc)
	y, m, d := date.Date()
	times := make([]time.Time, 0, max(n, 0))
	for i := 0; i < n; i++ {
		hour := s.optimalHours[i%len(s.optimalHours)]
		times = append(times, time.Date(y, m, d, hour, 0, 0, 0, s.loc))
	}
	return times
}
