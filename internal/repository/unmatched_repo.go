package repository

import (
	"context"
	"errors"

	"printpay/internal/domain"
	"printpay/internal/models"
	"printpay/internal/store"
)

type UnmatchedPaymentRepository struct {
	store store.Store
}

func NewUnmatchedPaymentRepository(s store.Store) *UnmatchedPaymentRepository {
	return &UnmatchedPaymentRepository{store: s}
}

func (r *UnmatchedPaymentRepository) Save(ctx context.Context, u *models.UnmatchedPayment) error {
	return r.store.Set(ctx, domain.CollectionPaymentsUnmatched, u.ID, u.Document())
}

// GetByID returns nil, nil when nothing is parked under id.
func (r *UnmatchedPaymentRepository) GetByID(ctx context.Context, id string) (store.Document, error) {
	doc, err := r.store.Get(ctx, domain.CollectionPaymentsUnmatched, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return doc, err
}
