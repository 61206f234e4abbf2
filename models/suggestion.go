package models

import "time"

// Activity categories a generated suggestion can carry. The category keys
// the place-type priority table used for location enrichment.
const (
	CategoryMindful    = "mindful"
	CategorySensory    = "sensory"
	CategoryMovement   = "movement"
	CategoryReflection = "reflection"
	CategoryDiscovery  = "discovery"
	CategoryRest       = "rest"
	CategoryCreative   = "creative"
	CategoryNature     = "nature"
	CategorySocial     = "social"
	CategoryConnection = "connection"
	CategoryLearning   = "learning"
	CategoryPlay       = "play"
	CategoryService    = "service"
	CategoryGratitude  = "gratitude"
)

// AllCategories lists every valid suggestion category.
var AllCategories = []string{
	CategoryMindful, CategorySensory, CategoryMovement, CategoryReflection,
	CategoryDiscovery, CategoryRest, CategoryCreative, CategoryNature,
	CategorySocial, CategoryConnection, CategoryLearning, CategoryPlay,
	CategoryService, CategoryGratitude,
}

// IsValidCategory reports whether c is one of the known categories.
func IsValidCategory(c string) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Suggestion is one generated micro-break activity, optionally enriched
// with nearby locations.
type Suggestion struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	Category        string    `json:"category"`
	GeneratedAt     time.Time `json:"generatedAt"`

	// LocationSuggestion mirrors the first entry of LocationSuggestions
	// for older clients that render a single location.
	LocationSuggestion  *LocationSuggestion  `json:"locationSuggestion,omitempty"`
	LocationSuggestions []LocationSuggestion `json:"locationSuggestions,omitempty"`
}
