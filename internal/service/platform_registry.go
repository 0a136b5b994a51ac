package service

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/contentflow/internal/models"
)

var (
	ErrContentTooLong   = errors.New("content exceeds platform character limit")
	ErrVideoUnsupported = errors.New("platform does not support video media")
	ErrImageUnsupported = errors.New("platform does not support image media")
)

// PlatformRegistry is the read-only catalog of delivery targets. It is built
// once at startup and needs no locking.
type PlatformRegistry struct {
	platforms map[string]models.Platform
	order     []string
}

func NewPlatformRegistry(platforms []models.Platform) (*PlatformRegistry, error) {
	r := &PlatformRegistry{platforms: make(map[string]models.Platform, len(platforms))}
	for _, p := range platforms {
		if p.ID == "" {
			return nil, &InvalidArgumentError{Field: "platform.id", Reason: "must not be empty"}
		}
		if _, dup := r.platforms[p.ID]; dup {
			return nil, &InvalidArgumentError{Field: "platform.id", Reason: fmt.Sprintf("duplicate platform %q", p.ID)}
		}
		if p.MaxCharacters != nil && *p.MaxCharacters <= 0 {
			return nil, &InvalidArgumentError{Field: "platform.max_characters", Reason: fmt.Sprintf("%s limit must be positive", p.ID)}
		}
		for _, t := range p.OptimalTimes {
			if _, err := time.Parse("15:04", t); err != nil {
				return nil, &InvalidArgumentError{Field: "platform.optimal_times", Reason: fmt.Sprintf("%s has malformed time %q", p.ID, t)}
			}
		}

		// copy so later mutation of the input cannot leak in
		p.OptimalTimes = slices.Clone(p.OptimalTimes)
		if p.MaxCharacters != nil {
			n := *p.MaxCharacters
			p.MaxCharacters = &n
		}
		r.platforms[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r, nil
}

func (r *PlatformRegistry) Get(id string) (models.Platform, bool) {
	p, ok := r.platforms[id]
	if !ok {
		return models.Platform{}, false
	}
	p.OptimalTimes = slices.Clone(p.OptimalTimes)
	if p.MaxCharacters != nil {
		n := *p.MaxCharacters
		p.MaxCharacters = &n
	}
	return p, true
}

func (r *PlatformRegistry) Known(id string) bool {
	_, ok := r.platforms[id]
	return ok
}

func (r *PlatformRegistry) List() []models.Platform {
	list := make([]models.Platform, 0, len(r.order))
	for _, id := range r.order {
		p, _ := r.Get(id)
		list = append(list, p)
	}
	return list
}

// ValidatePlatforms checks that ids is a non-empty set of known platforms.
func (r *PlatformRegistry) ValidatePlatforms(ids []string) error {
	if len(ids) == 0 {
		return &InvalidArgumentError{Field: "platforms", Reason: "post must target at least one platform"}
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !r.Known(id) {
			return &InvalidPlatformError{Platform: id}
		}
		if _, dup := seen[id]; dup {
			return &InvalidArgumentError{Field: "platforms", Reason: fmt.Sprintf("%s listed more than once", id)}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ValidateFor checks a post against a single platform's constraints.
func (r *PlatformRegistry) ValidateFor(platformID string, post *models.Post) error {
	p, ok := r.platforms[platformID]
	if !ok {
		return &InvalidPlatformError{Platform: platformID}
	}

	if p.MaxCharacters != nil {
		if n := utf8.RuneCountInString(post.Content); n > *p.MaxCharacters {
			return fmt.Errorf("%w: %d > %d", ErrContentTooLong, n, *p.MaxCharacters)
		}
	}

	for _, ref := range post.MediaRefs {
		switch MediaKindOf(ref) {
		case models.MediaKindVideo:
			if !p.SupportsVideo {
				return fmt.Errorf("%w: %s", ErrVideoUnsupported, ref)
			}
		case models.MediaKindImage:
			if !p.SupportsImage {
				return fmt.Errorf("%w: %s", ErrImageUnsupported, ref)
			}
		}
	}
	return nil
}

// MediaKindOf classifies an opaque media reference by its file extension.
func MediaKindOf(ref string) models.MediaKind {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(ref)), ".")
	if ext == "" {
		return models.MediaKindUnknown
	}
	t := filetype.GetType(ext)
	if t == types.Unknown {
		return models.MediaKindUnknown
	}
	switch t.MIME.Type {
	case "video":
		return models.MediaKindVideo
	case "image":
		return models.MediaKindImage
	}
	return models.MediaKindUnknown
}
