package repository

import (
	"context"
	"errors"

	"printpay/internal/domain"
	"printpay/internal/models"
	"printpay/internal/store"
)

type PaymentRepository struct {
	store store.Store
}

func NewPaymentRepository(s store.Store) *PaymentRepository {
	return &PaymentRepository{store: s}
}

// Save overwrites payments/{paymentId}.
func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	return r.store.Set(ctx, domain.CollectionPayments, p.PaymentID, p.Document())
}

// AddToOrderIndex writes payments_by_order/{orderId}/{paymentId}.
func (r *PaymentRepository) AddToOrderIndex(ctx context.Context, p *models.Payment) error {
	return r.store.SetChild(ctx, domain.CollectionPaymentsByOrder, p.OrderID, p.PaymentID, p.IndexDocument())
}

// GetByID returns nil, nil when the payment does not exist.
func (r *PaymentRepository) GetByID(ctx context.Context, paymentID string) (store.Document, error) {
	doc, err := r.store.Get(ctx, domain.CollectionPayments, paymentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return doc, err
}

// FindByField returns payments whose field equals value, ordered by id.
func (r *PaymentRepository) FindByField(ctx context.Context, field, value string) ([]store.Record, error) {
	return store.FindByKey(ctx, r.store, domain.CollectionPayments, field, value)
}

func (r *PaymentRepository) ListByOrder(ctx context.Context, orderID string) ([]models.PaymentSummary, error) {
	recs, err := r.store.Children(ctx, domain.CollectionPaymentsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]models.PaymentSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.PaymentSummaryFromDocument(rec.ID, rec.Data))
	}
	return out, nil
}
