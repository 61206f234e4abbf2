package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stillpoint/models"
	"stillpoint/utils"
)

// fakeDeviceRepo stores devices in a map.
type fakeDeviceRepo struct {
	devices map[string]*models.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]*models.Device)}
}

func (f *fakeDeviceRepo) Upsert(device *models.Device) error {
	f.devices[device.ID] = device
	return nil
}

func (f *fakeDeviceRepo) GetByID(id string) (*models.Device, error) {
	if d, ok := f.devices[id]; ok {
		return d, nil
	}
	return nil, assert.AnError
}

func (f *fakeDeviceRepo) UpdateFCMToken(id, token string) error {
	if d, ok := f.devices[id]; ok {
		d.FCMToken = token
		return nil
	}
	return assert.AnError
}

func (f *fakeDeviceRepo) Delete(id string) error {
	delete(f.devices, id)
	return nil
}

func performRegister(t *testing.T, repo *fakeDeviceRepo, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := &DeviceHandler{Devices: repo}
	router.POST("/api/devices/register", h.RegisterDeviceHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/devices/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterDeviceMintsTokenForNewDevice(t *testing.T) {
	repo := newFakeDeviceRepo()
	w := performRegister(t, repo, `{"fcmToken":"fcm-abc","platform":"ios"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DeviceID string `json:"deviceId"`
		Token    string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.DeviceID)
	assert.NotEmpty(t, resp.Token)

	// The issued token resolves back to the registered device.
	gotID, err := utils.ExtractDeviceIDFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.DeviceID, gotID)

	stored, ok := repo.devices[resp.DeviceID]
	require.True(t, ok)
	assert.Equal(t, "fcm-abc", stored.FCMToken)
	assert.Equal(t, "ios", stored.Platform)
}

func TestRegisterDeviceIsIdempotent(t *testing.T) {
	repo := newFakeDeviceRepo()
	w := performRegister(t, repo, `{"deviceId":"dev-1","fcmToken":"old","platform":"android"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRegister(t, repo, `{"deviceId":"dev-1","fcmToken":"new","platform":"android"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, repo.devices, 1)
	assert.Equal(t, "new", repo.devices["dev-1"].FCMToken)
}

func TestRegisterDeviceRejectsUnknownPlatform(t *testing.T) {
	repo := newFakeDeviceRepo()
	w := performRegister(t, repo, `{"fcmToken":"x","platform":"blackberry"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.devices)
}

func TestRegisterDeviceRejectsMalformedBody(t *testing.T) {
	repo := newFakeDeviceRepo()
	w := performRegister(t, repo, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
