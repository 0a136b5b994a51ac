package config

import (
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

// DefaultBaseHashtags are attached to every post regardless of theme.
func DefaultBaseHashtags() []string {
	return []string{"#wellness", "#community"}
}

func limit(n int) *int { return &n }

func DefaultPlatforms() []models.Platform {
	return []models.Platform{
		{ID: "twitter", DisplayName: "X (Twitter)", MaxCharacters: limit(280), SupportsVideo: true, SupportsImage: true, OptimalTimes: []string{"08:00", "12:00", "17:00"}},
		{ID: "instagram", DisplayName: "Instagram", MaxCharacters: limit(2200), SupportsVideo: true, SupportsImage: true, OptimalTimes: []string{"11:00", "14:00", "19:00"}},
		{ID: "facebook", DisplayName: "Facebook", MaxCharacters: limit(63206), SupportsVideo: true, SupportsImage: true, OptimalTimes: []string{"09:00", "13:00", "16:00"}},
		{ID: "linkedin", DisplayName: "LinkedIn", MaxCharacters: limit(3000), SupportsVideo: true, SupportsImage: true, OptimalTimes: []string{"07:30", "12:00", "17:30"}},
		{ID: "tiktok", DisplayName: "TikTok", MaxCharacters: limit(2200), SupportsVideo: true, SupportsImage: true, OptimalTimes: []string{"06:00", "10:00", "19:00", "22:00"}},
		{ID: "youtube", DisplayName: "YouTube", MaxCharacters: limit(5000), SupportsVideo: true, SupportsImage: false, OptimalTimes: []string{"14:00", "16:00"}},
		{ID: "newsletter", DisplayName: "Newsletter", MaxCharacters: nil, SupportsVideo: false, SupportsImage: true, OptimalTimes: []string{"07:00"}},
	}
}

func DefaultThemes() []models.ContentTheme {
	return []models.ContentTheme{
		{
			Tag: models.ThemeMotivationMonday, Weekday: time.Monday,
			Platforms: []string{"instagram", "twitter", "linkedin"}, TargetPosts: 3,
			Hashtags: []string{"#MotivationMonday", "#FreshStart"},
			Prompt:   "Start the week with one small, kind intention",
		},
		{
			Tag: models.ThemeTipsTuesday, Weekday: time.Tuesday,
			Platforms: []string{"twitter", "facebook"}, TargetPosts: 5,
			Hashtags: []string{"#TipsTuesday", "#HealthyHabits"},
			Prompt:   "A practical habit you can try today",
		},
		{
			Tag: models.ThemeWellnessWednesday, Weekday: time.Wednesday,
			Platforms: []string{"instagram", "facebook", "tiktok"}, TargetPosts: 3,
			Hashtags: []string{"#WellnessWednesday", "#Breathe"},
			Prompt:   "Pause for a slow breath in the middle of the week",
		},
		{
			Tag: models.ThemeThrowbackThursday, Weekday: time.Thursday,
			Platforms: []string{"instagram", "facebook"}, TargetPosts: 2,
			Hashtags: []string{"#ThrowbackThursday", "#CommunityStories"},
			Prompt:   "A moment from our community worth remembering",
		},
		{
			Tag: models.ThemeFeatureFriday, Weekday: time.Friday,
			Platforms: []string{"twitter", "linkedin", "instagram"}, TargetPosts: 3,
			Hashtags: []string{"#FeatureFriday", "#Spotlight"},
			Prompt:   "Spotlight on a practitioner or a practice",
		},
		{
			Tag: models.ThemeSelfCareSaturday, Weekday: time.Saturday,
			Platforms: []string{"instagram", "tiktok"}, TargetPosts: 2,
			Hashtags: []string{"#SelfCareSaturday", "#RestIsProductive"},
			Prompt:   "Permission to rest this weekend",
		},
		{
			Tag: models.ThemeSundayReflection, Weekday: time.Sunday,
			Platforms: []string{"instagram", "twitter", "newsletter"}, TargetPosts: 1,
			Hashtags: []string{"#SundayReflection", "#Gratitude"},
			Prompt:   "Look back on one thing the week taught you",
		},
	}
}
