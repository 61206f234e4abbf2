package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"stillpoint/config"
	prefsRepo "stillpoint/database/repository/prefs"
	"stillpoint/models"
	"stillpoint/services/notification"
	"stillpoint/services/tasks"
)

// InitReminderWorker runs the async worker in background. Delivered
// reminders re-enqueue themselves for the next day while the device's
// schedule stays enabled.
func InitReminderWorker(notifSvc notification.NotificationService, prefs prefsRepo.PrefsRepository, scheduler *ReminderScheduler) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, prefs, scheduler))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService, prefs prefsRepo.PrefsRepository, scheduler *ReminderScheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// Reminders canceled after enqueueing surface here as a disabled
		// schedule; drop the task silently.
		current, err := prefs.GetByDeviceID(p.DeviceID)
		if err != nil || !current.Enabled {
			log.Printf("[ReminderHandler] reminder for %s no longer active, skipping", p.DeviceID)
			return nil
		}

		log.Printf("[ReminderHandler] triggering reminder for device %s: %s", p.DeviceID, p.Title)

		data := map[string]string{
			"fireDate": p.FireDate,
			"title":    p.Title,
			"body":     p.Body,
		}
		if err := notifSvc.SendPush(ctx, p.DeviceID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] failed to send notification: %v", err)
			return err
		}

		// Recurring daily schedule: enqueue tomorrow's firing.
		if _, err := scheduler.ScheduleNext(current); err != nil {
			log.Printf("[ReminderHandler] failed to schedule next reminder: %v", err)
		}
		return nil
	}
}
