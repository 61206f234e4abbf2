package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	deviceRepo "stillpoint/database/repository/device"
	"stillpoint/utils"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPush(ctx context.Context, deviceID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	devices deviceRepo.DeviceRepository
}

func NewDefaultNotificationService(devices deviceRepo.DeviceRepository) (*DefaultNotificationService, error) {
	if devices == nil {
		return nil, fmt.Errorf("notification service initialization error: device repository is nil")
	}
	return &DefaultNotificationService{devices: devices}, nil
}

// SendPush looks up a device's FCM token and sends a push.
func (s *DefaultNotificationService) SendPush(ctx context.Context, deviceID, title, body string, data map[string]string) error {
	device, err := s.devices.GetByID(deviceID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find device %s: %w", deviceID, err)
	}
	if device.FCMToken == "" {
		return fmt.Errorf("SendPush: device %s has no FCM token", deviceID)
	}

	msg := &messaging.Message{
		Token: device.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}

	utils.GetLogger().Sugar().Debugf("SendPush: successfully sent message: %s", response)
	return nil
}
