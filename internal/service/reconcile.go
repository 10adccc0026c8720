package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"printpay/internal/domain"
	"printpay/internal/models"
	"printpay/internal/store"
)

// Outcome is the acknowledgement returned to the gateway. Every outcome is
// sent with HTTP 200.
type Outcome struct {
	Received    bool                   `json:"received"`
	Success     bool                   `json:"success,omitempty"`
	Saved       bool                   `json:"saved"`
	OrderID     string                 `json:"orderId,omitempty"`
	PaymentID   string                 `json:"paymentId,omitempty"`
	UnmatchedID string                 `json:"unmatchedId,omitempty"`
	Status      domain.CanonicalStatus `json:"status,omitempty"`
	Warning     string                 `json:"warning,omitempty"`
	Error       string                 `json:"error,omitempty"`
	// State is the last state reached; Trace lists every state in order.
	State domain.CallbackState   `json:"-"`
	Trace []domain.CallbackState `json:"-"`
}

func (o *Outcome) enter(state domain.CallbackState) {
	o.State = state
	o.Trace = append(o.Trace, state)
}

// Acknowledge marks the outcome as sent back to the gateway.
func (o *Outcome) Acknowledge() {
	o.enter(domain.StateAcknowledged)
}

// ReconcileService ties one webhook payload to an order and records it.
type ReconcileService struct {
	store    store.Store
	resolver *OrderResolver
	recorder *PaymentRecorder
	sink     *UnmatchedSink
	updater  *OrderStatusUpdater
	notifier *NotificationService
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

type ReconcileDeps struct {
	Store    store.Store
	Resolver *OrderResolver
	Recorder *PaymentRecorder
	Sink     *UnmatchedSink
	Updater  *OrderStatusUpdater
	Notifier *NotificationService
	Logger   *zap.Logger
	// Timeout bounds the store work of one callback. Zero means no bound.
	Timeout time.Duration
}

func NewReconcileService(d ReconcileDeps) *ReconcileService {
	return &ReconcileService{
		store:    d.Store,
		resolver: d.Resolver,
		recorder: d.Recorder,
		sink:     d.Sink,
		updater:  d.Updater,
		notifier: d.Notifier,
		logger:   d.Logger,
		timeout:  d.Timeout,
		now:      time.Now,
	}
}

// Reconcile runs one callback through resolution and recording. Reconciliation
// problems end in an Outcome with a warning or error; the returned error is
// reserved for store faults, which the caller reports as a 500.
func (s *ReconcileService) Reconcile(ctx context.Context, data models.PaymentData) (*Outcome, error) {
	out := &Outcome{Received: true}
	out.enter(domain.StateReceived)
	if !store.IsAvailable(s.store) {
		return nil, domain.ErrStoreUnavailable
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	log := s.logger.With(
		zap.String("billcode", data.BillCode),
		zap.String("transaction_id", data.TransactionID),
		zap.String("gateway_order_id", data.GatewayOrderRef),
	)

	if data.BillCode == "" {
		log.Warn("callback without billcode ignored", zap.Any("payload", data.Raw))
		out.Error = "missing billcode"
		return out, nil
	}

	out.enter(domain.StateNormalized)
	out.Status = data.Status
	log.Info("callback received", zap.String("raw_status", data.RawStatus), zap.String("status", string(data.Status)), zap.Float64("amount", data.Amount))

	out.enter(domain.StateResolving)
	order, err := s.resolver.Resolve(ctx, data.BillCode, data.GatewayOrderRef)
	if err != nil {
		return nil, fmt.Errorf("resolve order: %w", err)
	}
	if order == nil {
		out.enter(domain.StateUnresolvedNoOrder)
		out.UnmatchedID = s.sink.Stash(ctx, data, "no order found for billcode", "")
		out.Warning = "order not found; payment stored for manual review"
		log.Warn("callback unmatched: no order", zap.String("unmatched_id", out.UnmatchedID))
		return out, nil
	}
	out.OrderID = order.OrderID
	if order.UserID == "" {
		return s.parkWithoutUser(ctx, log, out, data, order.OrderID), nil
	}
	out.enter(domain.StateResolved)

	payment, err := s.recorder.Record(ctx, data, order.OrderID, order.UserID)
	if errors.Is(err, domain.ErrMissingOwner) {
		return s.parkWithoutUser(ctx, log, out, data, order.OrderID), nil
	}
	if err != nil {
		return nil, err
	}
	out.enter(domain.StateRecorded)
	out.PaymentID = payment.PaymentID
	out.Saved = true
	out.Success = true
	log = log.With(zap.String("order_id", order.OrderID), zap.String("payment_id", payment.PaymentID))

	if !data.Status.Settled() {
		out.enter(domain.StateSkipped)
		log.Info("payment pending, order status unchanged")
		return out, nil
	}
	extra := map[string]interface{}{
		"paymentDetails": map[string]interface{}{
			"paymentId":     payment.PaymentID,
			"transactionId": data.TransactionID,
			"billcode":      data.BillCode,
			"amount":        data.Amount,
			"status":        string(data.Status),
			"method":        payment.Method,
			"processedAt":   s.now().UTC().Format(time.RFC3339),
		},
	}
	if err := s.updater.UpdateStatus(ctx, order.OrderID, data.Status, extra); err != nil {
		return nil, err
	}
	out.enter(domain.StateStatusUpdated)
	s.notifier.NotifyPaymentResult(ctx, order.UserID, order.OrderID, data.Status, data.Amount)
	log.Info("payment reconciled")
	return out, nil
}

func (s *ReconcileService) parkWithoutUser(ctx context.Context, log *zap.Logger, out *Outcome, data models.PaymentData, orderID string) *Outcome {
	out.enter(domain.StateUnresolvedNoUser)
	out.Saved = false
	out.Success = false
	out.UnmatchedID = s.sink.Stash(ctx, data, "order "+orderID+" has no userId", orderID)
	out.Warning = "order " + orderID + " has no userId; payment stored for manual review"
	log.Warn("callback unmatched: missing userId", zap.String("order_id", orderID), zap.String("unmatched_id", out.UnmatchedID))
	return out
}
