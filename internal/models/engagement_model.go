package models

import "time"

type EngagementMetrics struct {
	Likes       int64 `db:"likes" json:"likes"`
	Comments    int64 `db:"comments" json:"comments"`
	Shares      int64 `db:"shares" json:"shares"`
	Impressions int64 `db:"impressions" json:"impressions"`
	Clicks      int64 `db:"clicks" json:"clicks"`
}

func (m EngagementMetrics) Add(o EngagementMetrics) EngagementMetrics {
	return EngagementMetrics{
		Likes:       m.Likes + o.Likes,
		Comments:    m.Comments + o.Comments,
		Shares:      m.Shares + o.Shares,
		Impressions: m.Impressions + o.Impressions,
		Clicks:      m.Clicks + o.Clicks,
	}
}

// Interactions counts likes, comments and shares.
func (m EngagementMetrics) Interactions() int64 {
	return m.Likes + m.Comments + m.Shares
}

// Engagement is a metrics snapshot for one post on one platform.
type Engagement struct {
	Platform string            `db:"platform" json:"platform"`
	PostID   string            `db:"post_id" json:"post_id"`
	Metrics  EngagementMetrics `json:"metrics"`
	SyncedAt time.Time         `db:"synced_at" json:"synced_at"`
}

// ValuePoint is one day of the external value signal.
type ValuePoint struct {
	Day   time.Time `db:"day" json:"day"`
	Value float64   `db:"value" json:"value"`
}
