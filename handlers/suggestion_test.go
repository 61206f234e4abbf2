package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coordContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParseOptionalCoordinate(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"both present", "/x?lat=51.5&lng=-0.12", true},
		{"missing lng", "/x?lat=51.5", false},
		{"missing both", "/x", false},
		{"non numeric", "/x?lat=abc&lng=1", false},
		{"latitude out of range", "/x?lat=91&lng=0", false},
		{"longitude out of range", "/x?lat=0&lng=181", false},
		{"extreme but valid", "/x?lat=-90&lng=180", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOptionalCoordinate(coordContext(t, tt.url))
			if tt.want {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestParseOptionalCoordinateValues(t *testing.T) {
	got := parseOptionalCoordinate(coordContext(t, "/x?lat=51.5074&lng=-0.1278"))
	require.NotNil(t, got)
	assert.InDelta(t, 51.5074, got.Latitude, 1e-9)
	assert.InDelta(t, -0.1278, got.Longitude, 1e-9)
}

func TestRequestDeviceID(t *testing.T) {
	c := coordContext(t, "/x")
	_, ok := requestDeviceID(c)
	assert.False(t, ok)

	c.Set("deviceID", "dev-1")
	id, ok := requestDeviceID(c)
	assert.True(t, ok)
	assert.Equal(t, "dev-1", id)

	c.Set("deviceID", 42)
	_, ok = requestDeviceID(c)
	assert.False(t, ok)
}
