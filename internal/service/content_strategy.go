package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

// ContentStrategy maps calendar days to themes. The theme table is immutable
// after construction.
type ContentStrategy struct {
	byDay        [7]models.ContentTheme
	byTag        map[models.ThemeTag]models.ContentTheme
	baseHashtags []string
}

// NewContentStrategy requires exactly one theme per weekday.
func NewContentStrategy(themes []models.ContentTheme, baseHashtags []string, registry *PlatformRegistry) (*ContentStrategy, error) {
	s := &ContentStrategy{
		byTag:        make(map[models.ThemeTag]models.ContentTheme, len(themes)),
		baseHashtags: slices.Clone(baseHashtags),
	}

	var seen [7]bool
	for _, t := range themes {
		if t.Weekday < time.Sunday || t.Weekday > time.Saturday {
			return nil, &InvalidArgumentError{Field: "theme.weekday", Reason: fmt.Sprintf("%s has weekday %d", t.Tag, t.Weekday)}
		}
		if seen[t.Weekday] {
			return nil, &InvalidArgumentError{Field: "theme.weekday", Reason: fmt.Sprintf("%s already has a theme", t.Weekday)}
		}
		if _, dup := s.byTag[t.Tag]; dup {
			return nil, &InvalidArgumentError{Field: "theme.tag", Reason: fmt.Sprintf("duplicate theme %s", t.Tag)}
		}
		if t.TargetPosts < 0 {
			return nil, &InvalidArgumentError{Field: "theme.target_posts", Reason: fmt.Sprintf("%s has negative quota", t.Tag)}
		}
		if registry != nil {
			if err := registry.ValidatePlatforms(t.Platforms); err != nil {
				return nil, fmt.Errorf("theme %s: %w", t.Tag, err)
			}
		}

		t.Platforms = slices.Clone(t.Platforms)
		t.Hashtags = slices.Clone(t.Hashtags)
		seen[t.Weekday] = true
		s.byDay[t.Weekday] = t
		s.byTag[t.Tag] = t
	}

	for day, ok := range seen {
		if !ok {
			return nil, &InvalidArgumentError{Field: "themes", Reason: fmt.Sprintf("no theme for %s", time.Weekday(day))}
		}
	}
	return s, nil
}

func (s *ContentStrategy) ThemeForDay(date time.Time) models.ContentTheme {
	return cloneTheme(s.byDay[date.Weekday()])
}

// Themes lists the week's themes starting from Sunday.
func (s *ContentStrategy) Themes() []models.ContentTheme {
	themes := make([]models.ContentTheme, 0, 7)
	for _, t := range s.byDay {
		themes = append(themes, cloneTheme(t))
	}
	return themes
}

// HashtagsFor returns the base tags followed by the theme tags, first
// occurrence wins. Comparison ignores case.
func (s *ContentStrategy) HashtagsFor(tag models.ThemeTag, extra ...string) []string {
	all := append(append(append([]string(nil), s.baseHashtags...), s.byTag[tag].Hashtags...), extra...)
	return dedupeHashtags(all)
}

func dedupeHashtags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		key := strings.ToLower(strings.TrimSpace(tag))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func cloneTheme(t models.ContentTheme) models.ContentTheme {
	t.Platforms = slices.Clone(t.Platforms)
	t.Hashtags = slices.Clone(t.Hashtags)
	return t
}
