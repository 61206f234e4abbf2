package suggestion

import (
	"context"

	"stillpoint/models"
)

// TextGenerator produces raw model output for a prompt and reports the
// token count consumed. Satisfied by intelligence.GeminiClient.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, int, error)
}

// Service produces micro-break suggestions, optionally enriched with
// nearby locations when a coordinate is supplied.
type Service interface {
	// Daily returns the device's suggestion for today. Repeated calls
	// within the cache window return the same suggestion.
	Daily(ctx context.Context, deviceID string, loc *models.LatLng) (*models.Suggestion, error)

	// Skip discards the current suggestion and generates a fresh one,
	// bypassing the suggestion cache.
	Skip(ctx context.Context, deviceID string, loc *models.LatLng) (*models.Suggestion, error)
}
