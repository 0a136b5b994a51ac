package models

import "time"

type ThemeTag string

const (
	ThemeMotivationMonday  ThemeTag = "motivation_monday"
	ThemeTipsTuesday       ThemeTag = "tips_tuesday"
	ThemeWellnessWednesday ThemeTag = "wellness_wednesday"
	ThemeThrowbackThursday ThemeTag = "throwback_thursday"
	ThemeFeatureFriday     ThemeTag = "feature_friday"
	ThemeSelfCareSaturday  ThemeTag = "self_care_saturday"
	ThemeSundayReflection  ThemeTag = "sunday_reflection"
)

type ContentTheme struct {
	Tag         ThemeTag     `json:"tag"`
	Weekday     time.Weekday `json:"weekday"`
	Platforms   []string     `json:"platforms"`
	TargetPosts int          `json:"target_posts"`
	Hashtags    []string     `json:"hashtags"`
	Prompt      string       `json:"prompt"`
}
