package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"stillpoint/models"
	"stillpoint/services/quota"
	"stillpoint/services/usage"
)

const (
	searchNearbyURL = "https://places.googleapis.com/v1/places:searchNearby"
	legacySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

	searchFieldMask = "places.id,places.displayName,places.formattedAddress," +
		"places.internationalPhoneNumber,places.websiteUri,places.rating," +
		"places.location,places.types,places.photos,places.regularOpeningHours"

	// LimiterAPI is the limiter bucket shared by both provider endpoints.
	LimiterAPI = "places"

	// Beyond this radius a broadened retry asks for distance ordering so
	// the nearest establishments come back first.
	distanceRankRadius = 2000
)

// GoogleGateway implements Gateway against the Places API (New), falling
// back to the legacy nearby-search endpoint on failure.
type GoogleGateway struct {
	APIKey     string
	HTTPClient *http.Client
	Cache      *quota.RequestCache
	Limiter    *quota.Limiter
	Usage      usage.Tracker
	Logger     *zap.Logger

	group singleflight.Group

	// endpoint overrides for tests
	modernURL string
	legacyURL string
}

// NewGoogleGateway wires up the production gateway.
func NewGoogleGateway(apiKey string, cache *quota.RequestCache, limiter *quota.Limiter, tracker usage.Tracker, logger *zap.Logger) *GoogleGateway {
	return &GoogleGateway{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Cache:      cache,
		Limiter:    limiter,
		Usage:      tracker,
		Logger:     logger,
		modernURL:  searchNearbyURL,
		legacyURL:  legacySearchURL,
	}
}

// cacheKey derives the cache key from every input except BypassCache.
func (g *GoogleGateway) cacheKey(req SearchRequest) string {
	return g.Cache.Key(
		strconv.FormatFloat(req.Latitude, 'f', 5, 64),
		strconv.FormatFloat(req.Longitude, 'f', 5, 64),
		strconv.Itoa(req.RadiusMeters),
		strings.Join(req.Types, ","),
		strconv.Itoa(req.MaxResults),
	)
}

// SearchNearby resolves a search through, in order: the result cache, any
// identical in-flight request, the modern endpoint, the legacy endpoint,
// and finally a broadened retry when the typed search comes back empty.
func (g *GoogleGateway) SearchNearby(ctx context.Context, req SearchRequest) ([]models.Place, error) {
	key := g.cacheKey(req)

	if !req.BypassCache {
		if data, ok := g.Cache.Get(ctx, key); ok {
			var cached []models.Place
			if err := json.Unmarshal(data, &cached); err == nil {
				g.Usage.TrackPlaces(true)
				return cached, nil
			}
			// Corrupt entry: fall through to a fresh fetch.
		}
	}

	// At most one outstanding network request per distinct cache key;
	// concurrent callers share the eventual result.
	v, err, _ := g.group.Do(key, func() (interface{}, error) {
		results, err := g.fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		if !req.BypassCache {
			if data, err := json.Marshal(results); err == nil {
				g.Cache.Set(ctx, key, data)
			}
		}
		g.Usage.TrackPlaces(false)
		return results, nil
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]models.Place)
	out := make([]models.Place, len(shared))
	copy(out, shared)
	return out, nil
}

// fetch runs the provider cascade for one search.
func (g *GoogleGateway) fetch(ctx context.Context, req SearchRequest) ([]models.Place, error) {
	if err := g.Limiter.Wait(ctx, LimiterAPI); err != nil {
		return nil, err
	}

	mapped := mapTypes(req.Types)
	results, err := g.searchModern(ctx, req, mapped, "")
	if err != nil {
		g.Logger.Warn("primary places endpoint failed, falling back to legacy",
			zap.Error(err))
		// The failover is a second billed call and needs its own permit.
		if werr := g.Limiter.Wait(ctx, LimiterAPI); werr != nil {
			return nil, werr
		}
		legacy, lerr := g.searchLegacy(ctx, req)
		if lerr != nil {
			return nil, fmt.Errorf("both place providers failed: %v; %w", err, lerr)
		}
		return legacy, nil
	}

	if len(results) == 0 && len(req.Types) > 0 {
		broadened := broadenRequest(req)
		if err := g.Limiter.Wait(ctx, LimiterAPI); err != nil {
			return nil, err
		}
		rank := ""
		if req.RadiusMeters >= distanceRankRadius {
			rank = "DISTANCE"
		}
		retried, rerr := g.searchModern(ctx, broadened, nil, rank)
		if rerr != nil {
			// The broadened retry is best-effort; keep the empty result.
			g.Logger.Debug("broadened retry failed", zap.Error(rerr))
			return results, nil
		}
		return retried, nil
	}

	return results, nil
}

// broadenRequest is the fallback-on-empty strategy: drop the type
// restriction so the retry finds generic establishments. Kept as a named
// function so the heuristic can be swapped without touching the cascade.
func broadenRequest(req SearchRequest) SearchRequest {
	broad := req
	broad.Types = nil
	return broad
}

func (g *GoogleGateway) searchModern(ctx context.Context, req SearchRequest, includedTypes []string, rankPreference string) ([]models.Place, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > 20 {
		maxResults = 20
	}
	body := searchNearbyRequest{
		IncludedTypes:  includedTypes,
		MaxResultCount: maxResults,
		RankPreference: rankPreference,
		LocationRestriction: locationRestriction{
			Circle: circle{
				Center: latLng{Latitude: req.Latitude, Longitude: req.Longitude},
				Radius: float64(req.RadiusMeters),
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.modernURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", g.APIKey)
	httpReq.Header.Set("X-Goog-FieldMask", searchFieldMask)

	resp, err := g.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("places search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("places search returned status %d", resp.StatusCode)
	}

	var parsed searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// Malformed upstream response counts as zero results, not a crash.
		g.Logger.Warn("malformed places response", zap.Error(err))
		return []models.Place{}, nil
	}
	return normalizeModern(&parsed, g.APIKey), nil
}

func (g *GoogleGateway) searchLegacy(ctx context.Context, req SearchRequest) ([]models.Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", req.Latitude, req.Longitude))
	params.Set("radius", strconv.Itoa(req.RadiusMeters))
	if len(req.Types) > 0 {
		// The legacy endpoint takes the original tags pipe-joined.
		params.Set("type", strings.Join(req.Types, "|"))
	}
	params.Set("key", g.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.legacyURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("legacy places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("legacy places search returned status %d", resp.StatusCode)
	}

	var parsed legacySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		g.Logger.Warn("malformed legacy places response", zap.Error(err))
		return []models.Place{}, nil
	}
	if parsed.Status != "OK" && parsed.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("legacy places search status %q", parsed.Status)
	}
	return normalizeLegacy(&parsed, g.APIKey), nil
}
