package cron

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"stillpoint/config"
	"stillpoint/models"
	"stillpoint/services/tasks"
)

// ReminderScheduler enqueues daily reminder tasks.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{client: client}
}

// ScheduleNext enqueues the next firing of a device's reminder according
// to its preferences and returns the fire time.
func (s *ReminderScheduler) ScheduleNext(prefs *models.ReminderPrefs) (time.Time, error) {
	fireAt, err := NextFireTime(prefs, time.Now())
	if err != nil {
		return time.Time{}, err
	}

	payload := models.ReminderPayload{
		DeviceID: prefs.DeviceID,
		Title:    "Time for a micro-break",
		Body:     "A couple of quiet minutes are waiting for you.",
		FireDate: fireAt.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return time.Time{}, fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return fireAt, nil
}

// Close releases the underlying queue connection.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}

// NextFireTime computes the next occurrence of the preferred clock time in
// the device's timezone, always strictly in the future.
func NextFireTime(prefs *models.ReminderPrefs, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", prefs.Timezone, err)
	}
	local := now.In(loc)
	fireAt := time.Date(local.Year(), local.Month(), local.Day(), prefs.Hour, prefs.Minute, 0, 0, loc)
	if !fireAt.After(local) {
		fireAt = fireAt.AddDate(0, 0, 1)
	}
	return fireAt, nil
}
