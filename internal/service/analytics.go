package service

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

const dayLayout = "2006-01-02"

// ValueSignalSource supplies the external daily series activity is correlated
// against.
type ValueSignalSource interface {
	Series(ctx context.Context, from, to time.Time) ([]models.ValuePoint, error)
}

type PlatformStats struct {
	Platform       string                   `json:"platform"`
	PostsTracked   int                      `json:"posts_tracked"`
	Metrics        models.EngagementMetrics `json:"metrics"`
	EngagementRate float64                  `json:"engagement_rate"`
}

type DailyActivity struct {
	Day   string `json:"day"`
	Posts int    `json:"posts"`
}

type Dashboard struct {
	GeneratedAt    time.Time                 `json:"generated_at"`
	Platforms      []PlatformStats           `json:"platforms"`
	Totals         models.EngagementMetrics  `json:"totals"`
	EngagementRate float64                   `json:"engagement_rate"`
	Activity       []DailyActivity           `json:"activity"`
	Queue          map[models.PostStatus]int `json:"queue,omitempty"`
	Correlation    *float64                  `json:"correlation,omitempty"`
	SignalError    string                    `json:"signal_error,omitempty"`
}

type engagementKey struct {
	platform string
	postID   string
}

// AnalyticsTracker observes outcomes; it never gates publishing.
type AnalyticsTracker struct {
	mu         sync.RWMutex
	engagement map[engagementKey]models.Engagement
	activity   map[string]int
	signal     ValueSignalSource
	loc        *time.Location
	now        func() time.Time
}

func NewAnalyticsTracker(signal ValueSignalSource, loc *time.Location) *AnalyticsTracker {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsTracker{
		engagement: make(map[engagementKey]models.Engagement),
		activity:   make(map[string]int),
		signal:     signal,
		loc:        loc,
		now:        time.Now,
	}
}

// RecordEngagement upserts the snapshot for platform+post. Last write wins.
func (t *AnalyticsTracker) RecordEngagement(platformID, postID string, metrics models.EngagementMetrics) (models.Engagement, error) {
	if metrics.Likes < 0 || metrics.Comments < 0 || metrics.Shares < 0 || metrics.Impressions < 0 || metrics.Clicks < 0 {
		return models.Engagement{}, &InvalidArgumentError{Field: "metrics", Reason: "counts must be non-negative"}
	}

	e := models.Engagement{
		Platform: platformID,
		PostID:   postID,
		Metrics:  metrics,
		SyncedAt: t.now(),
	}

	t.mu.Lock()
	t.engagement[engagementKey{platformID, postID}] = e
	t.mu.Unlock()
	return e, nil
}

// ObservePublished counts a posted post toward its publication day.
func (t *AnalyticsTracker) ObservePublished(post *models.Post) {
	if post == nil || post.Status != models.PostStatusPosted {
		return
	}
	at := post.UpdatedAt
	if post.PublishedAt != nil {
		at = *post.PublishedAt
	}

	t.mu.Lock()
	t.activity[at.In(t.loc).Format(dayLayout)]++
	t.mu.Unlock()
}

// PostEngagement sums a post's snapshots across platforms.
func (t *AnalyticsTracker) PostEngagement(postID string) (models.EngagementMetrics, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total models.EngagementMetrics
	found := false
	for k, e := range t.engagement {
		if k.postID == postID {
			total = total.Add(e.Metrics)
			found = true
		}
	}
	return total, found
}

func (t *AnalyticsTracker) Dashboard(ctx context.Context) (*Dashboard, error) {
	t.mu.RLock()
	byPlatform := make(map[string]*PlatformStats)
	var totals models.EngagementMetrics
	for k, e := range t.engagement {
		s, ok := byPlatform[k.platform]
		if !ok {
			s = &PlatformStats{Platform: k.platform}
			byPlatform[k.platform] = s
		}
		s.PostsTracked++
		s.Metrics = s.Metrics.Add(e.Metrics)
		totals = totals.Add(e.Metrics)
	}
	activity := make([]DailyActivity, 0, len(t.activity))
	for day, n := range t.activity {
		activity = append(activity, DailyActivity{Day: day, Posts: n})
	}
	t.mu.RUnlock()

	d := &Dashboard{
		GeneratedAt:    t.now(),
		Platforms:      make([]PlatformStats, 0, len(byPlatform)),
		Totals:         totals,
		EngagementRate: engagementRate(totals),
		Activity:       activity,
	}
	for _, s := range byPlatform {
		s.EngagementRate = engagementRate(s.Metrics)
		d.Platforms = append(d.Platforms, *s)
	}
	sort.Slice(d.Platforms, func(i, j int) bool { return d.Platforms[i].Platform < d.Platforms[j].Platform })
	sort.Slice(d.Activity, func(i, j int) bool { return d.Activity[i].Day < d.Activity[j].Day })

	if t.signal != nil && len(d.Activity) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// the signal is keyed by calendar date, so the range is too
		from, _ := time.Parse(dayLayout, d.Activity[0].Day)
		to, _ := time.Parse(dayLayout, d.Activity[len(d.Activity)-1].Day)
		points, err := t.signal.Series(ctx, from, to.Add(24*time.Hour))
		if err != nil {
			d.SignalError = err.Error()
		} else {
			d.Correlation = correlate(d.Activity, points)
		}
	}
	return d, nil
}

func engagementRate(m models.EngagementMetrics) float64 {
	if m.Impressions == 0 {
		return 0
	}
	return float64(m.Interactions()) / float64(m.Impressions)
}

// correlate pairs activity with the signal by day and returns the Pearson
// coefficient, or nil when it is undefined.
func correlate(activity []DailyActivity, points []models.ValuePoint) *float64 {
	signal := make(map[string]float64, len(points))
	for _, p := range points {
		// DATE columns come back as midnight UTC, not in the activity zone
		signal[p.Day.Format(dayLayout)] = p.Value
	}

	var xs, ys []float64
	for _, a := range activity {
		if v, ok := signal[a.Day]; ok {
			xs = append(xs, float64(a.Posts))
			ys = append(ys, v)
		}
	}
	r, ok := pearson(xs, ys)
	if !ok {
		return nil
	}
	return &r
}

func pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0, false
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0, false
	}
	return cov / math.Sqrt(vx*vy), true
}
