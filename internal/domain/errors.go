package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrMissingOwner     = errors.New("payment requires both orderId and userId")
	ErrStoreUnavailable = errors.New("store unavailable")
)
