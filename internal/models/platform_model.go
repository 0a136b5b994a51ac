package models

// Platform describes a delivery target and its posting constraints.
// MaxCharacters nil means the platform has no length limit.
type Platform struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"display_name"`
	MaxCharacters *int     `json:"max_characters"`
	SupportsVideo bool     `json:"supports_video"`
	SupportsImage bool     `json:"supports_image"`
	OptimalTimes  []string `json:"optimal_times"` // HH:MM, local clock
}

type MediaKind string

const (
	MediaKindImage   MediaKind = "image"
	MediaKindVideo   MediaKind = "video"
	MediaKindUnknown MediaKind = "unknown"
)
