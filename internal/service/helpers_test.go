package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/stretchr/testify/require"
)

// 2026-10-19 is a Monday.
var testMonday = time.Date(2026, time.October, 19, 6, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) *PlatformRegistry {
	t.Helper()
	r, err := NewPlatformRegistry(config.DefaultPlatforms())
	require.NoError(t, err)
	return r
}

// weekThemes builds one theme per weekday, all with the same platforms and quota.
func weekThemes(platforms []string, quota int) []models.ContentTheme {
	tags := []models.ThemeTag{
		models.ThemeSundayReflection,
		models.ThemeMotivationMonday,
		models.ThemeTipsTuesday,
		models.ThemeWellnessWednesday,
		models.ThemeThrowbackThursday,
		models.ThemeFeatureFriday,
		models.ThemeSelfCareSaturday,
	}
	themes := make([]models.ContentTheme, 0, 7)
	for day, tag := range tags {
		themes = append(themes, models.ContentTheme{
			Tag:         tag,
			Weekday:     time.Weekday(day),
			Platforms:   platforms,
			TargetPosts: quota,
			Hashtags:    []string{"#" + string(tag)},
			Prompt:      "prompt for " + string(tag),
		})
	}
	return themes
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	fn    func(req GenerationRequest) (GeneratedContent, error)
}

func (g *fakeGenerator) Generate(ctx context.Context, req GenerationRequest) (GeneratedContent, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.fn != nil {
		return g.fn(req)
	}
	return GeneratedContent{Content: fmt.Sprintf("%s #%d", req.Theme.Tag, req.Index)}, nil
}

type fakeTransport struct {
	mu      sync.Mutex
	results map[string]SendResult
	errs    map[string]error
	sent    []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{results: map[string]SendResult{}, errs: map[string]error{}}
}

func (f *fakeTransport) Send(ctx context.Context, platformID string, post *models.Post) (SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, platformID)
	if err, ok := f.errs[platformID]; ok {
		return SendResult{}, err
	}
	if r, ok := f.results[platformID]; ok {
		return r, nil
	}
	return SendResult{Success: true, ExternalPostID: "ext-" + platformID}, nil
}

func (f *fakeTransport) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

var errNetwork = errors.New("connection reset by peer")

// submitPending puts a post straight into the pending bucket.
func submitPending(t *testing.T, q *ApprovalQueue, id string, platforms ...string) *models.Post {
	t.Helper()
	p := &models.Post{
		ID:            id,
		Content:       "hello",
		Platforms:     platforms,
		Theme:         models.ThemeMotivationMonday,
		ScheduledTime: testMonday,
	}
	auto, err := q.Submit(p)
	require.NoError(t, err)
	require.False(t, auto)
	return p
}
