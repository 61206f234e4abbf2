package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stillpoint/models"
)

func TestNextFireTimeLaterToday(t *testing.T) {
	prefs := &models.ReminderPrefs{Hour: 15, Minute: 30, Timezone: "UTC"}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	fireAt, err := NextFireTime(prefs, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC), fireAt)
}

func TestNextFireTimeRollsToTomorrow(t *testing.T) {
	prefs := &models.ReminderPrefs{Hour: 8, Minute: 0, Timezone: "UTC"}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	fireAt, err := NextFireTime(prefs, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), fireAt)
}

func TestNextFireTimeExactMomentRollsOver(t *testing.T) {
	prefs := &models.ReminderPrefs{Hour: 9, Minute: 0, Timezone: "UTC"}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	fireAt, err := NextFireTime(prefs, now)
	require.NoError(t, err)
	assert.True(t, fireAt.After(now), "the fire time is always strictly in the future")
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), fireAt)
}

func TestNextFireTimeHonorsTimezone(t *testing.T) {
	prefs := &models.ReminderPrefs{Hour: 8, Minute: 0, Timezone: "Asia/Tokyo"}
	// 23:30 UTC on Mar 1 is 08:30 JST on Mar 2, so 08:00 JST has passed.
	now := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	fireAt, err := NextFireTime(prefs, now)
	require.NoError(t, err)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 3, 8, 0, 0, 0, tokyo).Unix(), fireAt.Unix())
}

func TestNextFireTimeRejectsUnknownTimezone(t *testing.T) {
	prefs := &models.ReminderPrefs{Hour: 8, Timezone: "Mars/Olympus_Mons"}
	_, err := NextFireTime(prefs, time.Now())
	assert.Error(t, err)
}
