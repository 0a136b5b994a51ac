package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, quota int, gen ContentGenerator, trusted ...models.ThemeTag) (*Scheduler, *ApprovalQueue) {
	t.Helper()
	registry := newTestRegistry(t)
	strategy, err := NewContentStrategy(weekThemes([]string{"twitter", "instagram"}, quota), []string{"#wellness"}, registry)
	require.NoError(t, err)
	q := NewApprovalQueue(registry, trusted)
	s := NewScheduler(strategy, q, gen, nil, nil)
	s.now = func() time.Time { return testMonday }
	return s, q
}

func hours(posts []*models.Post) []int {
	out := make([]int, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ScheduledTime.Hour())
	}
	return out
}

func TestScheduler_QuotaMatchesOptimalTimes(t *testing.T) {
	s, q := newTestScheduler(t, 5, &fakeGenerator{})

	posts, err := s.GenerateDailyContent(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 5)
	assert.Equal(t, []int{8, 12, 15, 18, 20}, hours(posts))

	for _, p := range posts {
		assert.Equal(t, models.PostStatusPending, p.Status)
		assert.Equal(t, models.ThemeMotivationMonday, p.Theme)
		assert.Equal(t, []string{"twitter", "instagram"}, p.Platforms)
		assert.Equal(t, 2026, p.ScheduledTime.Year())
		assert.Equal(t, 19, p.ScheduledTime.Day())
		assert.Contains(t, p.Hashtags, "#wellness")
	}
	assert.Len(t, q.Snapshot().Pending, 5)
}

func TestScheduler_QuotaWrapsAround(t *testing.T) {
	s, _ := newTestScheduler(t, 7, &fakeGenerator{})

	posts, err := s.GenerateDailyContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{8, 12, 15, 18, 20, 8, 12}, hours(posts))
}

func TestScheduler_UniqueIDs(t *testing.T) {
	s, _ := newTestScheduler(t, 7, &fakeGenerator{})

	posts, err := s.GenerateDailyContent(context.Background())
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, p := range posts {
		assert.NotEmpty(t, p.ID)
		ids[p.ID] = true
	}
	assert.Len(t, ids, 7)
}

func TestScheduler_AutoTrustedTheme(t *testing.T) {
	s, q := newTestScheduler(t, 3, &fakeGenerator{}, models.ThemeMotivationMonday)

	posts, err := s.GenerateDailyContent(context.Background())
	require.NoError(t, err)
	for _, p := range posts {
		assert.Equal(t, models.PostStatusApproved, p.Status)
	}
	snap := q.Snapshot()
	assert.Empty(t, snap.Pending)
	assert.Len(t, snap.Approved, 3)
}

func TestScheduler_GeneratorFailureStopsEnqueue(t *testing.T) {
	gen := &fakeGenerator{fn: func(req GenerationRequest) (GeneratedContent, error) {
		if req.Index == 2 {
			return GeneratedContent{}, errors.New("model offline")
		}
		return GeneratedContent{Content: "ok"}, nil
	}}
	s, q := newTestScheduler(t, 5, gen)

	posts, err := s.GenerateDailyContent(context.Background())
	var cge *ContentGenerationError
	require.ErrorAs(t, err, &cge)
	assert.Equal(t, string(models.ThemeMotivationMonday), cge.Theme)
	assert.Len(t, posts, 2)
	assert.Len(t, q.Snapshot().Pending, 2)
}

func TestScheduler_EmptyContentIsGenerationError(t *testing.T) {
	gen := &fakeGenerator{fn: func(req GenerationRequest) (GeneratedContent, error) {
		return GeneratedContent{Content: "   "}, nil
	}}
	s, q := newTestScheduler(t, 3, gen)

	posts, err := s.GenerateDailyContent(context.Background())
	var cge *ContentGenerationError
	require.ErrorAs(t, err, &cge)
	assert.Empty(t, posts)
	assert.Empty(t, q.Snapshot().Pending)
}

func TestScheduler_ZeroQuota(t *testing.T) {
	gen := &fakeGenerator{}
	s, _ := newTestScheduler(t, 0, gen)

	posts, err := s.GenerateDailyContent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, gen.calls)
}

func TestScheduler_CustomHoursAndLocation(t *testing.T) {
	registry := newTestRegistry(t)
	strategy, err := NewContentStrategy(weekThemes([]string{"twitter"}, 3), nil, registry)
	require.NoError(t, err)

	loc := time.FixedZone("EST", -5*60*60)
	s := NewScheduler(strategy, NewApprovalQueue(registry, nil), &fakeGenerator{}, []int{9, 17}, loc)

	times := s.ScheduleTimes(testMonday, 3)
	require.Len(t, times, 3)
	// 06:00 UTC on the 19th is still the 19th at UTC-5
	for i, want := range []int{9, 17, 9} {
		assert.Equal(t, want, times[i].Hour())
		assert.Equal(t, loc, times[i].Location())
		assert.Equal(t, 19, times[i].Day())
	}
}
