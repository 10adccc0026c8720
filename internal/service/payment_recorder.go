package service

import (
	"context"
	"fmt"
	"time"

	"printpay/internal/domain"
	"printpay/internal/models"
	"printpay/internal/repository"
	"printpay/pkg/idgen"
)

const fallbackPaymentPrefix = "PAY-"

type PaymentRecorder struct {
	payments      *repository.PaymentRepository
	ids           *idgen.Generator
	defaultMethod string
	now           func() time.Time
}

func NewPaymentRecorder(payments *repository.PaymentRepository, ids *idgen.Generator, defaultMethod string) *PaymentRecorder {
	return &PaymentRecorder{payments: payments, ids: ids, defaultMethod: defaultMethod, now: time.Now}
}

// PaymentID picks the storage key: transaction id, payment id, billing code,
// then a generated id.
func (r *PaymentRecorder) PaymentID(data models.PaymentData) string {
	switch {
	case data.TransactionID != "":
		return data.TransactionID
	case data.PaymentID != "":
		return data.PaymentID
	case data.BillCode != "":
		return data.BillCode
	default:
		return r.ids.Next(fallbackPaymentPrefix)
	}
}

// Record writes the payment and its payments_by_order entry. A record with the
// same derived id is overwritten. Both owner ids are required; nothing is
// written without them.
func (r *PaymentRecorder) Record(ctx context.Context, data models.PaymentData, orderID, userID string) (*models.Payment, error) {
	if orderID == "" || userID == "" {
		return nil, domain.ErrMissingOwner
	}
	method := data.Method
	if method == "" {
		method = r.defaultMethod
	}
	now := r.now()
	p := &models.Payment{
		PaymentID:       r.PaymentID(data),
		OrderID:         orderID,
		UserID:          userID,
		Status:          data.Status,
		Amount:          data.Amount,
		Method:          method,
		TransactionID:   data.TransactionID,
		BillCode:        data.BillCode,
		GatewayOrderRef: data.GatewayOrderRef,
		Signature:       data.Signature,
		RawPayload:      data.Raw,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.payments.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment %s: %w", p.PaymentID, err)
	}
	if err := r.payments.AddToOrderIndex(ctx, p); err != nil {
		return nil, fmt.Errorf("index payment %s under order %s: %w", p.PaymentID, orderID, err)
	}
	return p, nil
}
