package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"printpay/internal/domain"
	"printpay/internal/models"
	"printpay/internal/repository"
	"printpay/internal/store"
)

// ResolverConfig controls when a gateway-supplied order reference is trusted.
type ResolverConfig struct {
	OrderIDPrefix    string
	OrderIDMinLength int
}

// OrderResolver maps a billing code or gateway order reference back to an order.
type OrderResolver struct {
	orders   *repository.OrderRepository
	payments *repository.PaymentRepository
	cfg      ResolverConfig
	logger   *zap.Logger
}

func NewOrderResolver(orders *repository.OrderRepository, payments *repository.PaymentRepository, cfg ResolverConfig, logger *zap.Logger) *OrderResolver {
	return &OrderResolver{orders: orders, payments: payments, cfg: cfg, logger: logger}
}

// Resolve tries, in order: orders by billing code (both spellings), a prior
// payment carrying the billing code, then the gateway order reference when it
// looks like one of our order ids. It returns nil when nothing matches; errors
// are store faults only.
func (r *OrderResolver) Resolve(ctx context.Context, billCode, gatewayOrderRef string) (*models.Order, error) {
	if billCode != "" {
		order, err := r.byOrderBillCode(ctx, billCode)
		if err != nil || order != nil {
			return order, err
		}
		order, err = r.byPriorPayment(ctx, billCode)
		if err != nil || order != nil {
			return order, err
		}
	}
	if gatewayOrderRef != "" && r.LooksLikeOrderID(gatewayOrderRef) {
		return r.byOrderRef(ctx, gatewayOrderRef, billCode)
	}
	return nil, nil
}

// LooksLikeOrderID guards against treating arbitrary gateway references as ours.
func (r *OrderResolver) LooksLikeOrderID(ref string) bool {
	if r.cfg.OrderIDPrefix != "" && strings.HasPrefix(ref, r.cfg.OrderIDPrefix) {
		return true
	}
	return r.cfg.OrderIDMinLength > 0 && len(ref) > r.cfg.OrderIDMinLength
}

func (r *OrderResolver) byOrderBillCode(ctx context.Context, billCode string) (*models.Order, error) {
	for _, field := range []string{domain.FieldBillCode, domain.FieldBillCodeLegacy} {
		order, err := r.orders.FindByField(ctx, field, billCode)
		if err != nil {
			return nil, fmt.Errorf("find order by %s: %w", field, err)
		}
		if order != nil {
			r.logger.Debug("order resolved by billcode",
				zap.String("billcode", billCode), zap.String("field", field), zap.String("order_id", order.OrderID))
			return order, nil
		}
	}
	return nil, nil
}

func (r *OrderResolver) byPriorPayment(ctx context.Context, billCode string) (*models.Order, error) {
	for _, field := range []string{domain.FieldBillCode, domain.FieldBillCodeLegacy} {
		recs, err := r.payments.FindByField(ctx, field, billCode)
		if err != nil {
			return nil, fmt.Errorf("find payment by %s: %w", field, err)
		}
		for _, rec := range recs {
			orderID := rec.Data.String("orderId")
			if orderID == "" {
				continue
			}
			order, err := r.orders.GetByID(ctx, orderID)
			if err != nil {
				return nil, fmt.Errorf("load order %s: %w", orderID, err)
			}
			paymentUser := rec.Data.String("userId")
			if order == nil {
				r.logger.Warn("order missing for prior payment, using stand-in",
					zap.String("billcode", billCode), zap.String("payment_id", rec.ID), zap.String("order_id", orderID))
				return &models.Order{OrderID: orderID, UserID: paymentUser, BillCode: billCode, StandIn: true}, nil
			}
			if order.UserID == "" {
				order.UserID = paymentUser
			}
			r.logger.Debug("order resolved by prior payment",
				zap.String("billcode", billCode), zap.String("payment_id", rec.ID), zap.String("order_id", orderID))
			return order, nil
		}
	}
	return nil, nil
}

func (r *OrderResolver) byOrderRef(ctx context.Context, ref, billCode string) (*models.Order, error) {
	order, err := r.orders.GetByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", ref, err)
	}
	if order == nil {
		r.logger.Warn("gateway order reference accepted but order not found", zap.String("order_id", ref))
		return &models.Order{OrderID: ref, BillCode: billCode}, nil
	}
	if billCode != "" && order.BillCode == "" {
		err := r.orders.Update(ctx, ref, store.Document{
			domain.FieldBillCode:       billCode,
			domain.FieldBillCodeLegacy: billCode,
		})
		if err != nil {
			r.logger.Warn("billcode backfill failed", zap.String("order_id", ref), zap.Error(err))
		} else {
			order.BillCode = billCode
		}
	}
	return order, nil
}
