package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

const (
	BucketPending  = "pending"
	BucketApproved = "approved"
	BucketRejected = "rejected"
)

// QueueSnapshot is a copy of the three buckets. Mutating it has no effect on
// the queue.
type QueueSnapshot struct {
	Pending  []*models.Post `json:"pending"`
	Approved []*models.Post `json:"approved"`
	Rejected []*models.Post `json:"rejected"`
}

// ApprovalQueue gates every draft before dispatch. A post lives in exactly one
// of pending, approved, rejected, in-flight (claimed by the publisher) or
// history (posted/failed). All state is guarded by mu.
type ApprovalQueue struct {
	mu          sync.Mutex
	registry    *PlatformRegistry
	autoTrusted map[models.ThemeTag]struct{}
	now         func() time.Time

	pending  map[string]*models.Post
	approved map[string]*models.Post
	rejected map[string]*models.Post
	inFlight map[string]*models.Post
	history  map[string]*models.Post
}

func NewApprovalQueue(registry *PlatformRegistry, autoTrusted []models.ThemeTag) *ApprovalQueue {
	trusted := make(map[models.ThemeTag]struct{}, len(autoTrusted))
	for _, t := range autoTrusted {
		trusted[t] = struct{}{}
	}
	return &ApprovalQueue{
		registry:    registry,
		autoTrusted: trusted,
		now:         time.Now,
		pending:     make(map[string]*models.Post),
		approved:    make(map[string]*models.Post),
		rejected:    make(map[string]*models.Post),
		inFlight:    make(map[string]*models.Post),
		history:     make(map[string]*models.Post),
	}
}

func (q *ApprovalQueue) IsAutoTrusted(theme models.ThemeTag) bool {
	_, ok := q.autoTrusted[theme]
	return ok
}

// Submit takes ownership of a copy of post. Auto-trusted themes skip the
// pending bucket entirely.
func (q *ApprovalQueue) Submit(post *models.Post) (bool, error) {
	if post == nil || post.ID == "" {
		return false, &InvalidArgumentError{Field: "post.id", Reason: "must not be empty"}
	}
	if err := q.registry.ValidatePlatforms(post.Platforms); err != nil {
		return false, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.locate(post.ID) != "" {
		return false, &InvalidArgumentError{Field: "post.id", Reason: fmt.Sprintf("%s was already submitted", post.ID)}
	}

	p := post.Clone()
	now := q.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	autoApproved := q.IsAutoTrusted(p.Theme)
	if autoApproved {
		p.Status = models.PostStatusApproved
		q.approved[p.ID] = p
	} else {
		p.Status = models.PostStatusPending
		q.pending[p.ID] = p
	}
	post.Status = p.Status
	return autoApproved, nil
}

func (q *ApprovalQueue) Approve(postID, reviewer string) (*models.Post, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.pending[postID]
	if !ok {
		return nil, &NotFoundError{PostID: postID, Bucket: BucketPending}
	}
	if err := q.transition(p, models.PostStatusApproved); err != nil {
		return nil, err
	}
	p.ReviewedBy = reviewer
	delete(q.pending, postID)
	q.approved[postID] = p
	return p.Clone(), nil
}

func (q *ApprovalQueue) Reject(postID, reason, reviewer string) (*models.Post, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, &InvalidArgumentError{Field: "reason", Reason: "rejection reason must not be empty"}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.pending[postID]
	if !ok {
		return nil, &NotFoundError{PostID: postID, Bucket: BucketPending}
	}
	if err := q.transition(p, models.PostStatusRejected); err != nil {
		return nil, err
	}
	p.ReviewedBy = reviewer
	p.RejectionReason = reason
	delete(q.pending, postID)
	q.rejected[postID] = p
	return p.Clone(), nil
}

// Claim hands an approved post to the publisher. Until Complete is called the
// post is in none of the buckets, so it cannot be published twice.
func (q *ApprovalQueue) Claim(postID string) (*models.Post, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.approved[postID]
	if !ok {
		return nil, &NotFoundError{PostID: postID, Bucket: BucketApproved}
	}
	delete(q.approved, postID)
	q.inFlight[postID] = p
	return p.Clone(), nil
}

// Complete records the publisher's outcome for a claimed post.
func (q *ApprovalQueue) Complete(postID string, status models.PostStatus, results []models.PlatformResult) (*models.Post, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.inFlight[postID]
	if !ok {
		return nil, &NotFoundError{PostID: postID, Bucket: "in-flight"}
	}
	if err := q.transition(p, status); err != nil {
		return nil, err
	}
	p.PublishResults = append([]models.PlatformResult(nil), results...)
	if status == models.PostStatusPosted {
		at := p.UpdatedAt
		p.PublishedAt = &at
	}
	delete(q.inFlight, postID)
	q.history[postID] = p
	return p.Clone(), nil
}

// Release puts a claimed post back into the approved bucket untouched.
func (q *ApprovalQueue) Release(postID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if p, ok := q.inFlight[postID]; ok {
		delete(q.inFlight, postID)
		q.approved[postID] = p
	}
}

// AnnotateEngagement attaches the latest metrics snapshot to a posted post.
func (q *ApprovalQueue) AnnotateEngagement(postID string, e models.Engagement) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.history[postID]
	if !ok || p.Status != models.PostStatusPosted {
		return &NotFoundError{PostID: postID, Bucket: string(models.PostStatusPosted)}
	}
	p.Engagement = &e
	return nil
}

func (q *ApprovalQueue) Get(postID string) (*models.Post, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, bucket := range []map[string]*models.Post{q.pending, q.approved, q.rejected, q.inFlight, q.history} {
		if p, ok := bucket[postID]; ok {
			return p.Clone(), nil
		}
	}
	return nil, &NotFoundError{PostID: postID}
}

func (q *ApprovalQueue) Snapshot() QueueSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	return QueueSnapshot{
		Pending:  cloneBucket(q.pending),
		Approved: cloneBucket(q.approved),
		Rejected: cloneBucket(q.rejected),
	}
}

// StatusCounts tallies every known post by status. Claimed posts still count
// as approved.
func (q *ApprovalQueue) StatusCounts() map[models.PostStatus]int {
	q.mu.Lock()
	defer q.mu.Unlock()

	counts := map[models.PostStatus]int{
		models.PostStatusPending:  len(q.pending),
		models.PostStatusApproved: len(q.approved) + len(q.inFlight),
		models.PostStatusRejected: len(q.rejected),
		models.PostStatusPosted:   0,
		models.PostStatusFailed:   0,
	}
	for _, p := range q.history {
		counts[p.Status]++
	}
	return counts
}

// Restore reloads persisted posts into the bucket matching their status.
// Posts already known to the queue, or targeting platforms no longer in the
// catalog, are skipped. It returns the posts that were placed.
func (q *ApprovalQueue) Restore(posts []*models.Post) []*models.Post {
	q.mu.Lock()
	defer q.mu.Unlock()

	var restored []*models.Post
	for _, post := range posts {
		if post == nil || post.ID == "" || q.locate(post.ID) != "" {
			continue
		}
		if err := q.registry.ValidatePlatforms(post.Platforms); err != nil {
			continue
		}

		var bucket map[string]*models.Post
		switch post.Status {
		case models.PostStatusPending:
			bucket = q.pending
		case models.PostStatusApproved:
			bucket = q.approved
		case models.PostStatusRejected:
			bucket = q.rejected
		case models.PostStatusPosted, models.PostStatusFailed:
			bucket = q.history
		default:
			continue
		}
		p := post.Clone()
		bucket[p.ID] = p
		restored = append(restored, p.Clone())
	}
	return restored
}

func (q *ApprovalQueue) transition(p *models.Post, next models.PostStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return fmt.Errorf("post %s cannot move from %s to %s", p.ID, p.Status, next)
	}
	p.Status = next
	p.UpdatedAt = q.now()
	return nil
}

// locate must be called with mu held.
func (q *ApprovalQueue) locate(postID string) string {
	switch {
	case q.pending[postID] != nil:
		return BucketPending
	case q.approved[postID] != nil:
		return BucketApproved
	case q.rejected[postID] != nil:
		return BucketRejected
	case q.inFlight[postID] != nil:
		return "in-flight"
	case q.history[postID] != nil:
		return "history"
	}
	return ""
}

func cloneBucket(bucket map[string]*models.Post) []*models.Post {
	posts := make([]*models.Post, 0, len(bucket))
	for _, p := range bucket {
		posts = append(posts, p.Clone())
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].ScheduledTime.Equal(posts[j].ScheduledTime) {
			return posts[i].ScheduledTime.Before(posts[j].ScheduledTime)
		}
		return posts[i].ID < posts[j].ID
	})
	return posts
}
