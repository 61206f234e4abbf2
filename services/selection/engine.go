package selection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stillpoint/models"
	"stillpoint/services/history"
	"stillpoint/services/places"
)

// Progressive search radii in meters, attempted strictly in order; the
// first non-empty result set wins. broadRadius backs the last-resort
// untyped query when every radius comes up empty.
var searchRadii = []int{1000, 1500, 2500}

const (
	broadRadius      = 5000
	searchMaxResults = 20
)

// broadFallbackTypes is the generic filter for the last-resort query.
var broadFallbackTypes = []string{"cafe", "park", "restaurant"}

// Engine turns a raw candidate pool into a small, diverse, task-relevant,
// ranked set of location suggestions.
type Engine struct {
	Gateway places.Gateway
	History *history.RecentHistory
	Logger  *zap.Logger
}

func NewEngine(gateway places.Gateway, hist *history.RecentHistory, logger *zap.Logger) *Engine {
	return &Engine{Gateway: gateway, History: hist, Logger: logger}
}

// EnrichSuggestion attaches nearby location suggestions to s. Enrichment is
// strictly best-effort: on any failure the suggestion is returned exactly
// as it came in.
func (e *Engine) EnrichSuggestion(ctx context.Context, s *models.Suggestion, lat, lng float64) *models.Suggestion {
	suggestions, err := e.SelectLocations(ctx, s.Category, lat, lng)
	if err != nil {
		e.Logger.Warn("location enrichment skipped",
			zap.String("category", s.Category), zap.Error(err))
		return s
	}
	if len(suggestions) == 0 {
		return s
	}

	enriched := *s
	enriched.LocationSuggestions = suggestions
	first := suggestions[0]
	enriched.LocationSuggestion = &first
	return &enriched
}

// SelectLocations runs the full pipeline: progressive search, scoring,
// diversified selection and materialization. An empty slice means no
// relevant locations nearby, which is not an error.
func (e *Engine) SelectLocations(ctx context.Context, category string, lat, lng float64) ([]models.LocationSuggestion, error) {
	tiers := tiersFor(category)

	candidates, err := e.progressiveSearch(ctx, tiers, lat, lng)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ranked := rankCandidates(candidates, tiers, e.History.Contains)
	selected := selectDiverse(ranked)

	// Record what we are about to show so future novelty scoring sees the
	// current selection, not just past sessions.
	for i := range selected {
		e.History.Record(ctx, selected[i].ID)
	}

	user := models.LatLng{Latitude: lat, Longitude: lng}
	out := make([]models.LocationSuggestion, 0, len(selected))
	for i := range selected {
		out = append(out, materialize(&selected[i], user))
	}
	return out, nil
}

// progressiveSearch queries the gateway at increasing radii, strictly
// sequentially, stopping at the first non-empty result. All radii empty
// triggers one broad fallback query.
func (e *Engine) progressiveSearch(ctx context.Context, tiers TypeTiers, lat, lng float64) ([]models.Place, error) {
	types := searchTypes(tiers)

	for _, radius := range searchRadii {
		results, err := e.Gateway.SearchNearby(ctx, places.SearchRequest{
			Latitude:     lat,
			Longitude:    lng,
			RadiusMeters: radius,
			Types:        types,
			MaxResults:   searchMaxResults,
		})
		if err != nil {
			return nil, fmt.Errorf("nearby search at %dm failed: %w", radius, err)
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	results, err := e.Gateway.SearchNearby(ctx, places.SearchRequest{
		Latitude:     lat,
		Longitude:    lng,
		RadiusMeters: broadRadius,
		Types:        broadFallbackTypes,
		MaxResults:   searchMaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("broad fallback search failed: %w", err)
	}
	return results, nil
}

// materialize builds the display wrapper for one accepted place.
func materialize(p *models.Place, user models.LatLng) models.LocationSuggestion {
	ls := models.LocationSuggestion{
		Place:     *p,
		Relevance: relevanceLabel(p),
	}
	if p.Location != nil {
		km := metersBetween(user, *p.Location) / 1000.0
		ls.Distance = fmt.Sprintf("%.1fkm", km)
	}
	return ls
}

// relevanceLabel derives a short human-readable label purely from the
// place's types, independent of the category that triggered the search.
func relevanceLabel(p *models.Place) string {
	switch {
	case p.HasAnyType([]string{"tourist_attraction", "landmark", "historical_landmark"}):
		return "Tourist attraction"
	case p.HasAnyType([]string{"museum", "art_gallery", "gallery"}):
		return "Cultural venue"
	case p.HasAnyType([]string{"park", "garden", "botanical_garden"}):
		return "Peaceful location"
	case p.HasAnyType([]string{"cafe", "restaurant", "bakery", "bar"}):
		return "Food & drinks"
	default:
		return "Nearby place"
	}
}
