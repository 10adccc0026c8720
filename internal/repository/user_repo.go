package repository

import (
	"context"
	"errors"

	"printpay/internal/domain"
	"printpay/internal/models"
	"printpay/internal/store"
)

type UserRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// GetByID returns nil, nil for unknown users.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	doc, err := r.store.Get(ctx, domain.CollectionUsers, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return models.UserFromDocument(userID, doc), nil
}
