package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"printpay/internal/domain"
	"printpay/internal/repository"
)

type NotificationService struct {
	users  *repository.UserRepository
	pusher Pusher
	logger *zap.Logger
}

// NewNotificationService accepts a nil pusher; notifications are then skipped.
func NewNotificationService(users *repository.UserRepository, pusher Pusher, logger *zap.Logger) *NotificationService {
	return &NotificationService{users: users, pusher: pusher, logger: logger}
}

// NotifyPaymentResult pushes the outcome of a settled payment to the order
// owner. Failures are logged and never returned: the callback has already
// been reconciled.
func (s *NotificationService) NotifyPaymentResult(ctx context.Context, userID, orderID string, status domain.CanonicalStatus, amount float64) {
	if s == nil || s.pusher == nil || userID == "" {
		return
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("notification skipped: user lookup", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if u == nil || u.FCMToken == "" {
		return
	}
	title, body := "Payment confirmed", "Your payment was successful. We'll start on your order shortly."
	if status == domain.StatusFailed {
		title, body = "Payment failed", "Your payment did not go through. You can retry from the order page."
	}
	data := map[string]string{
		"type":     "PAYMENT_" + strings.ToUpper(string(status)),
		"order_id": orderID,
		"amount":   strconv.FormatFloat(amount, 'f', 2, 64),
	}
	if err := s.pusher.Send(ctx, u.FCMToken, title, body, data); err != nil {
		s.logger.Warn("payment notification not delivered", zap.String("user_id", userID), zap.Error(err))
	}
}
