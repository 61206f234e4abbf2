package places

import (
	"context"

	"stillpoint/models"
)

// SearchRequest describes one nearby-places lookup.
type SearchRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	Types        []string
	MaxResults   int

	// BypassCache forces a fresh fetch. The existing cache entry is left
	// untouched so later callers wanting cached data are unaffected.
	BypassCache bool
}

// Gateway returns normalized, deduplicated places for a coordinate, radius
// and type list, hiding which underlying provider satisfied the request.
// Result order is the provider's; ranking is the selection engine's job.
type Gateway interface {
	SearchNearby(ctx context.Context, req SearchRequest) ([]models.Place, error)
}
