package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"printpay/internal/domain"
	"printpay/internal/repository"
	"printpay/internal/store"
)

type OrderStatusUpdater struct {
	orders    *repository.OrderRepository
	available bool
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrderStatusUpdater(orders *repository.OrderRepository, s store.Store, logger *zap.Logger) *OrderStatusUpdater {
	return &OrderStatusUpdater{orders: orders, available: store.IsAvailable(s), logger: logger, now: time.Now}
}

// UpdateStatus writes the business and admin status for a payment outcome and
// merges extra into the same update. An empty orderID or an unconfigured store
// makes it a no-op.
func (u *OrderStatusUpdater) UpdateStatus(ctx context.Context, orderID string, status domain.CanonicalStatus, extra map[string]interface{}) error {
	if orderID == "" || !u.available {
		return nil
	}
	orderStatus := status.OrderStatus()
	fields := store.Document{}
	for k, v := range extra {
		fields[k] = v
	}
	fields["status"] = string(orderStatus)
	fields["adminStatus"] = string(orderStatus.AdminStatus())
	fields["paymentStatus"] = string(status)
	fields["updatedAt"] = u.now().UTC().Format(time.RFC3339)
	if err := u.orders.Update(ctx, orderID, fields); err != nil {
		return fmt.Errorf("update order %s status: %w", orderID, err)
	}
	u.logger.Info("order status updated",
		zap.String("order_id", orderID), zap.String("status", string(orderStatus)), zap.String("admin_status", string(orderStatus.AdminStatus())))
	return nil
}
