package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stillpoint/models"
	"stillpoint/services/quota"
)

// fakeTracker counts usage calls without touching Redis.
type fakeTracker struct {
	mu     sync.Mutex
	calls  int
	cached int
	tokens int
}

func (f *fakeTracker) TrackPlaces(cached bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cached {
		f.cached++
	} else {
		f.calls++
	}
}

func (f *fakeTracker) TrackGemini(tokens int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens += tokens
}

func newTestGateway(modernURL, legacyURL string) (*GoogleGateway, *fakeTracker) {
	tracker := &fakeTracker{}
	g := NewGoogleGateway("test-key",
		quota.NewRequestCache("places", time.Hour, time.Hour, nil, "places:", zap.NewNop()),
		quota.NewLimiter(),
		tracker,
		zap.NewNop())
	g.modernURL = modernURL
	g.legacyURL = legacyURL
	return g, tracker
}

func modernResponse(ids ...string) searchNearbyResponse {
	var resp searchNearbyResponse
	for _, id := range ids {
		resp.Places = append(resp.Places, gplace{
			ID:          id,
			DisplayName: &localizedText{Text: "Place " + id},
			Types:       []string{"park"},
			Location:    &latLng{Latitude: 1, Longitude: 2},
		})
	}
	return resp
}

func TestSearchNearbyModernEndpoint(t *testing.T) {
	var gotReq searchNearbyRequest
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(modernResponse("p1", "p2"))
	}))
	defer srv.Close()

	g, tracker := newTestGateway(srv.URL, "")
	got, err := g.SearchNearby(context.Background(), SearchRequest{
		Latitude: 1.5, Longitude: 2.5, RadiusMeters: 1500,
		Types: []string{"park", "garden"}, MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "Place p1", got[0].Name)

	assert.Equal(t, "test-key", gotHeaders.Get("X-Goog-Api-Key"))
	assert.NotEmpty(t, gotHeaders.Get("X-Goog-FieldMask"))
	assert.Equal(t, []string{"park", "botanical_garden"}, gotReq.IncludedTypes)
	assert.Equal(t, 10, gotReq.MaxResultCount)
	assert.Equal(t, 1.5, gotReq.LocationRestriction.Circle.Center.Latitude)
	assert.Equal(t, 1500.0, gotReq.LocationRestriction.Circle.Radius)

	assert.Equal(t, 1, tracker.calls)
	assert.Equal(t, 0, tracker.cached)
}

func TestSearchNearbyDeduplicatesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(modernResponse("p1", "p1", "p2"))
	}))
	defer srv.Close()

	g, _ := newTestGateway(srv.URL, "")
	got, err := g.SearchNearby(context.Background(), SearchRequest{Latitude: 1, Longitude: 2, RadiusMeters: 1000})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchNearbyServesFromCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(modernResponse("p1"))
	}))
	defer srv.Close()

	g, tracker := newTestGateway(srv.URL, "")
	req := SearchRequest{Latitude: 1, Longitude: 2, RadiusMeters: 1000, Types: []string{"park"}}

	first, err := g.SearchNearby(context.Background(), req)
	require.NoError(t, err)
	second, err := g.SearchNearby(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "identical request within the window must not hit the network")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, tracker.calls)
	assert.Equal(t, 1, tracker.cached)
}

func TestSearchNearbyBypassSkipsButNeverOverwritesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			json.NewEncoder(w).Encode(modernResponse("original"))
			return
		}
		json.NewEncoder(w).Encode(modernResponse("fresh"))
	}))
	defer srv.Close()

	g, _ := newTestGateway(srv.URL, "")
	req := SearchRequest{Latitude: 1, Longitude: 2, RadiusMeters: 1000, Types: []string{"park"}}

	first, err := g.SearchNearby(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "original", first[0].ID)

	bypass := req
	bypass.BypassCache = true
	got, err := g.SearchNearby(context.Background(), bypass)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got[0].ID, "bypass must fetch fresh data")
	assert.Equal(t, 2, hits)

	// The cached entry must still hold the original fetch.
	again, err := g.SearchNearby(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].ID)
	assert.Equal(t, 2, hits)
}

func TestSearchNearbyFallsBackToLegacy(t *testing.T) {
	modern := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer modern.Close()

	var legacyQuery map[string][]string
	rating := 4.2
	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		legacyQuery = r.URL.Query()
		json.NewEncoder(w).Encode(legacySearchResponse{
			Status: "OK",
			Results: []legacyResult{{
				PlaceID:  "lp1",
				Name:     "Legacy Park",
				Vicinity: "12 Old Road",
				Rating:   &rating,
				Types:    []string{"park"},
				Geometry: &legacyGeom{Location: legacyLatLng{Lat: 1, Lng: 2}},
			}},
		})
	}))
	defer legacy.Close()

	g, _ := newTestGateway(modern.URL, legacy.URL)
	got, err := g.SearchNearby(context.Background(), SearchRequest{
		Latitude: 1, Longitude: 2, RadiusMeters: 1500, Types: []string{"park", "garden"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lp1", got[0].ID)
	assert.Equal(t, "Legacy Park", got[0].Name)
	assert.Equal(t, "12 Old Road", got[0].Address)

	// The legacy endpoint receives the original tags pipe-joined.
	assert.Equal(t, "park|garden", legacyQuery["type"][0])
	assert.Equal(t, "1500", legacyQuery["radius"][0])
}

func TestSearchNearbyBothProvidersFailing(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	g, tracker := newTestGateway(failing.URL, failing.URL)
	_, err := g.SearchNearby(context.Background(), SearchRequest{Latitude: 1, Longitude: 2, RadiusMeters: 1000})
	require.Error(t, err)
	assert.Equal(t, 0, tracker.calls, "failed fetches are not billed usage")
}

func TestSearchNearbyLegacyFallbackConsumesQuota(t *testing.T) {
	modern := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer modern.Close()

	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(legacySearchResponse{
			Status: "OK",
			Results: []legacyResult{{
				PlaceID:  "lp1",
				Name:     "Legacy Park",
				Types:    []string{"park"},
				Geometry: &legacyGeom{Location: legacyLatLng{Lat: 1, Lng: 2}},
			}},
		})
	}))
	defer legacy.Close()

	g, _ := newTestGateway(modern.URL, legacy.URL)
	window := 200 * time.Millisecond
	g.Limiter.SetLimit(LimiterAPI, 1, window)

	// With a single slot per window, the failover call cannot ride on the
	// permit the failed primary call already spent. It must wait for the
	// window to roll over before hitting the legacy endpoint.
	start := time.Now()
	got, err := g.SearchNearby(context.Background(), SearchRequest{
		Latitude: 1, Longitude: 2, RadiusMeters: 1000, Types: []string{"park"},
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lp1", got[0].ID)
	assert.GreaterOrEqual(t, elapsed, window/2,
		"the legacy call must take its own quota slot")
}

func TestSearchNearbyConcurrentCallsShareOneFetch(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		json.NewEncoder(w).Encode(modernResponse("p1"))
	}))
	defer srv.Close()

	g, _ := newTestGateway(srv.URL, "")
	req := SearchRequest{Latitude: 1, Longitude: 2, RadiusMeters: 1000, Types: []string{"park"}}

	const callers = 5
	var wg sync.WaitGroup
	results := make([][]models.Place, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.SearchNearby(context.Background(), req)
		}(i)
	}

	// Hold the transport open long enough for every caller to join the
	// in-flight request, then let the single fetch complete.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&hits),
		"identical overlapping requests share one upstream call")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Len(t, results[i], 1)
		assert.Equal(t, "p1", results[i][0].ID)
	}
}

func TestSearchNearbyBroadensOnEmptyTypedResult(t *testing.T) {
	var bodies []searchNearbyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req searchNearbyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		bodies = append(bodies, req)
		if len(bodies) == 1 {
			json.NewEncoder(w).Encode(searchNearbyResponse{})
			return
		}
		json.NewEncoder(w).Encode(modernResponse("broad1"))
	}))
	defer srv.Close()

	g, _ := newTestGateway(srv.URL, "")
	got, err := g.SearchNearby(context.Background(), SearchRequest{
		Latitude: 1, Longitude: 2, RadiusMeters: 2500, Types: []string{"park"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "broad1", got[0].ID)

	require.Len(t, bodies, 2)
	assert.Equal(t, []string{"park"}, bodies[0].IncludedTypes)
	assert.Empty(t, bodies[1].IncludedTypes, "the retry drops the type restriction")
	assert.Equal(t, "DISTANCE", bodies[1].RankPreference, "wide radius asks for distance ordering")
}

func TestSearchNearbyBroadenedRetryKeepsRelevanceRankForSmallRadius(t *testing.T) {
	var bodies []searchNearbyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req searchNearbyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		bodies = append(bodies, req)
		json.NewEncoder(w).Encode(searchNearbyResponse{})
	}))
	defer srv.Close()

	g, _ := newTestGateway(srv.URL, "")
	got, err := g.SearchNearby(context.Background(), SearchRequest{
		Latitude: 1, Longitude: 2, RadiusMeters: 1000, Types: []string{"park"},
	})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.Len(t, bodies, 2)
	assert.Empty(t, bodies[1].RankPreference)
}

func TestSearchNearbyUntypedEmptyResultIsNotRetried(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(searchNearbyResponse{})
	}))
	defer srv.Close()

	g, _ := newTestGateway(srv.URL, "")
	got, err := g.SearchNearby(context.Background(), SearchRequest{Latitude: 1, Longitude: 2, RadiusMeters: 1000})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, hits)
}

func TestSearchNearbyMalformedResponseIsEmptyNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	g, _ := newTestGateway(srv.URL, "")
	got, err := g.SearchNearby(context.Background(), SearchRequest{Latitude: 1, Longitude: 2, RadiusMeters: 1000})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMapTypes(t *testing.T) {
	got := mapTypes([]string{"park", "garden", "temple", "church", "park"})
	assert.Equal(t, []string{"park", "botanical_garden", "place_of_worship"}, got)
}

func TestNormalizeModernCapsPhotos(t *testing.T) {
	resp := searchNearbyResponse{Places: []gplace{{
		ID:          "p1",
		DisplayName: &localizedText{Text: "Photogenic"},
		Photos: []gphoto{
			{Name: "places/p1/photos/a", WidthPx: 100, HeightPx: 100},
			{Name: "places/p1/photos/b", WidthPx: 100, HeightPx: 100},
			{Name: "places/p1/photos/c", WidthPx: 100, HeightPx: 100},
			{Name: "places/p1/photos/d", WidthPx: 100, HeightPx: 100},
		},
	}}}
	got := normalizeModern(&resp, "k")
	require.Len(t, got, 1)
	assert.Len(t, got[0].Photos, models.MaxPlacePhotos)
	assert.Contains(t, got[0].Photos[0].URL, "places/p1/photos/a")
}
