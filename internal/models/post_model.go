package models

import (
	"slices"
	"time"
)

type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
	PostStatusPosted   PostStatus = "posted"
	PostStatusFailed   PostStatus = "failed"
)

// postTransitions is the only place allowed status edges are declared.
var postTransitions = map[PostStatus][]PostStatus{
	PostStatusPending:  {PostStatusApproved, PostStatusRejected},
	PostStatusApproved: {PostStatusPosted, PostStatusFailed},
}

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusPending, PostStatusApproved, PostStatusRejected, PostStatusPosted, PostStatusFailed:
		return true
	}
	return false
}

func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	return slices.Contains(postTransitions[s], next)
}

func (s PostStatus) IsTerminal() bool {
	return s == PostStatusPosted || s == PostStatusFailed || s == PostStatusRejected
}

type FailureKind string

const (
	FailureKindValidation FailureKind = "validation"
	FailureKindTransport  FailureKind = "transport"
)

// PlatformResult is the delivery outcome of a post on a single platform.
type PlatformResult struct {
	Platform       string      `db:"platform" json:"platform"`
	Success        bool        `db:"success" json:"success"`
	ExternalPostID string      `db:"external_post_id" json:"external_post_id,omitempty"`
	FailureKind    FailureKind `db:"failure_kind" json:"failure_kind,omitempty"`
	ErrorMessage   string      `db:"error_message" json:"error_message,omitempty"`
}

type Post struct {
	ID              string           `db:"id" json:"id"`
	Content         string           `db:"content" json:"content"`
	MediaRefs       []string         `db:"media_refs" json:"media_refs"`
	Platforms       []string         `db:"platforms" json:"platforms"`
	Theme           ThemeTag         `db:"theme" json:"theme"`
	Hashtags        []string         `db:"hashtags" json:"hashtags"`
	ScheduledTime   time.Time        `db:"scheduled_time" json:"scheduled_time"`
	Status          PostStatus       `db:"status" json:"status"`
	ReviewedBy      string           `db:"reviewed_by" json:"reviewed_by,omitempty"`
	RejectionReason string           `db:"rejection_reason" json:"rejection_reason,omitempty"`
	PublishResults  []PlatformResult `db:"publish_results" json:"publish_results,omitempty"`
	PublishedAt     *time.Time       `db:"published_at" json:"published_at,omitempty"`
	Engagement      *Engagement      `db:"-" json:"engagement,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy so callers never share slices with the queue.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.MediaRefs = slices.Clone(p.MediaRefs)
	c.Platforms = slices.Clone(p.Platforms)
	c.Hashtags = slices.Clone(p.Hashtags)
	c.PublishResults = slices.Clone(p.PublishResults)
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		c.PublishedAt = &t
	}
	if p.Engagement != nil {
		e := *p.Engagement
		c.Engagement = &e
	}
	return &c
}

// FailedPlatforms lists the platforms whose delivery did not succeed.
func (p *Post) FailedPlatforms() []string {
	var failed []string
	for _, r := range p.PublishResults {
		if !r.Success {
			failed = append(failed, r.Platform)
		}
	}
	return failed
}
