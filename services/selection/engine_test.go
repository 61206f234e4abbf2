package selection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stillpoint/models"
	"stillpoint/services/history"
	"stillpoint/services/places"
)

// fakeGateway replays a queued response per call and records every request.
type fakeGateway struct {
	requests  []places.SearchRequest
	responses [][]models.Place
	err       error
}

func (f *fakeGateway) SearchNearby(ctx context.Context, req places.SearchRequest) ([]models.Place, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func newTestEngine(gw places.Gateway) *Engine {
	return NewEngine(gw, history.NewRecentHistory(nil, history.DefaultCapacity, zap.NewNop()), zap.NewNop())
}

func TestProgressiveSearchStopsAtFirstNonEmptyRadius(t *testing.T) {
	gw := &fakeGateway{responses: [][]models.Place{
		nil,
		nil,
		{testPlace("p1", []string{"park"}, 0, 0.005)},
	}}
	e := newTestEngine(gw)

	got, err := e.SelectLocations(context.Background(), models.CategoryNature, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Len(t, gw.requests, 3)
	assert.Equal(t, 1000, gw.requests[0].RadiusMeters)
	assert.Equal(t, 1500, gw.requests[1].RadiusMeters)
	assert.Equal(t, 2500, gw.requests[2].RadiusMeters)
	for _, req := range gw.requests {
		assert.NotEmpty(t, req.Types)
		assert.Equal(t, searchMaxResults, req.MaxResults)
	}
}

func TestProgressiveSearchBroadFallback(t *testing.T) {
	gw := &fakeGateway{responses: [][]models.Place{
		nil, nil, nil,
		{testPlace("p1", []string{"cafe"}, 0, 0.005)},
	}}
	e := newTestEngine(gw)

	got, err := e.SelectLocations(context.Background(), models.CategoryNature, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Len(t, gw.requests, 4)
	last := gw.requests[3]
	assert.Equal(t, broadRadius, last.RadiusMeters)
	assert.Equal(t, broadFallbackTypes, last.Types)
}

func TestSelectLocationsEmptyEverywhereIsNotAnError(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw)

	got, err := e.SelectLocations(context.Background(), models.CategoryNature, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, gw.requests, 4)
}

func TestSelectLocationsPropagatesGatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("quota exhausted")}
	e := newTestEngine(gw)

	_, err := e.SelectLocations(context.Background(), models.CategoryNature, 0, 0)
	assert.Error(t, err)
}

func TestSelectLocationsRecordsShownPlaces(t *testing.T) {
	gw := &fakeGateway{responses: [][]models.Place{
		{
			testPlace("p1", []string{"park"}, 0, 0.005),
			testPlace("p2", []string{"cafe"}, 0, 0.010),
		},
	}}
	e := newTestEngine(gw)

	got, err := e.SelectLocations(context.Background(), models.CategoryNature, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, e.History.Contains("p1"))
	assert.True(t, e.History.Contains("p2"))
}

func TestSelectLocationsRanksByScore(t *testing.T) {
	lowRating := 2.0
	highRating := 5.0
	gw := &fakeGateway{responses: [][]models.Place{
		{
			{ID: "worse", Name: "Worse", Types: []string{"park"}, Rating: &lowRating,
				Location: &models.LatLng{Latitude: 0, Longitude: 0.005}},
			{ID: "better", Name: "Better", Types: []string{"park"}, Rating: &highRating,
				Location: &models.LatLng{Latitude: 0, Longitude: 0.010}},
		},
	}}
	e := newTestEngine(gw)

	got, err := e.SelectLocations(context.Background(), models.CategoryNature, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "better", got[0].Place.ID)
	assert.Equal(t, "worse", got[1].Place.ID)
}

func TestMaterializeDistanceAndRelevance(t *testing.T) {
	gw := &fakeGateway{responses: [][]models.Place{
		{testPlace("p1", []string{"park"}, 0, 0.009)},
	}}
	e := newTestEngine(gw)

	got, err := e.SelectLocations(context.Background(), models.CategoryNature, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1.0km", got[0].Distance)
	assert.Equal(t, "Peaceful location", got[0].Relevance)
}

func TestRelevanceLabels(t *testing.T) {
	tests := []struct {
		types []string
		want  string
	}{
		{[]string{"tourist_attraction"}, "Tourist attraction"},
		{[]string{"museum"}, "Cultural venue"},
		{[]string{"park"}, "Peaceful location"},
		{[]string{"cafe"}, "Food & drinks"},
		{[]string{"gas_station"}, "Nearby place"},
		// A tourist attraction that is also a park labels as attraction.
		{[]string{"park", "tourist_attraction"}, "Tourist attraction"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.types), func(t *testing.T) {
			p := models.Place{Types: tt.types}
			assert.Equal(t, tt.want, relevanceLabel(&p))
		})
	}
}

func TestEnrichSuggestionBestEffort(t *testing.T) {
	sug := &models.Suggestion{ID: "s1", Title: "Breathe", Category: models.CategoryMindful}

	t.Run("gateway failure returns input unchanged", func(t *testing.T) {
		e := newTestEngine(&fakeGateway{err: errors.New("network down")})
		got := e.EnrichSuggestion(context.Background(), sug, 0, 0)
		assert.Same(t, sug, got)
		assert.Nil(t, got.LocationSuggestion)
	})

	t.Run("no nearby places returns input unchanged", func(t *testing.T) {
		e := newTestEngine(&fakeGateway{})
		got := e.EnrichSuggestion(context.Background(), sug, 0, 0)
		assert.Same(t, sug, got)
	})

	t.Run("success attaches locations without mutating input", func(t *testing.T) {
		gw := &fakeGateway{responses: [][]models.Place{
			{testPlace("p1", []string{"park"}, 0, 0.005)},
		}}
		e := newTestEngine(gw)
		got := e.EnrichSuggestion(context.Background(), sug, 0, 0)

		require.NotSame(t, sug, got)
		require.NotNil(t, got.LocationSuggestion)
		assert.Equal(t, "p1", got.LocationSuggestion.Place.ID)
		require.Len(t, got.LocationSuggestions, 1)
		assert.Equal(t, *got.LocationSuggestion, got.LocationSuggestions[0])
		assert.Nil(t, sug.LocationSuggestion, "original suggestion untouched")
	})
}
