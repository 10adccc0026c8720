package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Pusher delivers a push notification to one device token.
type Pusher interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMService sends push notifications via Firebase Cloud Messaging.
type FCMService struct {
	client *messaging.Client
	logger *zap.Logger
}

// NewFCMService returns nil if the Messaging client cannot be created.
func NewFCMService(ctx context.Context, app *firebase.App, logger *zap.Logger) *FCMService {
	if app == nil {
		return nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Warn("FCM disabled: messaging client", zap.Error(err))
		return nil
	}
	return &FCMService{client: client, logger: logger}
}

// Send sends a push notification to the given FCM token.
func (s *FCMService) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if s == nil || token == "" {
		return nil
	}
	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: token,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		s.logger.Warn("FCM send failed", zap.Error(err))
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}
