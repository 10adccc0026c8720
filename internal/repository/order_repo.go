package repository

import (
	"context"
	"errors"

	"printpay/internal/domain"
	"printpay/internal/models"
	"printpay/internal/store"
)

type OrderRepository struct {
	store store.Store
}

func NewOrderRepository(s store.Store) *OrderRepository {
	return &OrderRepository{store: s}
}

// GetByID returns nil, nil when the order does not exist.
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	doc, err := r.store.Get(ctx, domain.CollectionOrders, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return models.OrderFromDocument(orderID, doc), nil
}

// FindByField returns the first order whose field equals value, or nil.
func (r *OrderRepository) FindByField(ctx context.Context, field, value string) (*models.Order, error) {
	recs, err := store.FindByKey(ctx, r.store, domain.CollectionOrders, field, value)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return models.OrderFromDocument(recs[0].ID, recs[0].Data), nil
}

func (r *OrderRepository) Update(ctx context.Context, orderID string, fields store.Document) error {
	return r.store.Update(ctx, domain.CollectionOrders, orderID, fields)
}
