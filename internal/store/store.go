// Package store defines the document store the reconciliation services write
// to. Paths follow the collection/id layout of the Firebase database:
// orders/{orderId}, payments/{paymentId},
// payments_by_order/{orderId}/{paymentId} and payments_unmatched/{id}.
package store

import (
	"context"
	"errors"
	"sort"

	"printpay/internal/domain"
)

// Document is a single stored record body.
type Document map[string]interface{}

// Record is a document together with its key.
type Record struct {
	ID   string
	Data Document
}

// Store is implemented by every backend. Get returns domain.ErrNotFound when
// the document does not exist.
type Store interface {
	Name() string
	Get(ctx context.Context, collection, id string) (Document, error)
	// Set replaces the document.
	Set(ctx context.Context, collection, id string, doc Document) error
	// Update merges top-level fields into the document, creating it if needed.
	Update(ctx context.Context, collection, id string, fields Document) error
	// FindBy returns documents whose top-level field equals value.
	FindBy(ctx context.Context, collection, field string, value interface{}) ([]Record, error)
	SetChild(ctx context.Context, collection, parentID, id string, doc Document) error
	Children(ctx context.Context, collection, parentID string) ([]Record, error)
	Ping(ctx context.Context) error
	Close() error
}

// Unavailable stands in for a backend that failed to initialize. Every call
// fails with domain.ErrStoreUnavailable so the process can still serve health
// checks and answer webhooks with a 500.
type Unavailable struct {
	Reason error
}

func (u Unavailable) err() error {
	if u.Reason == nil {
		return domain.ErrStoreUnavailable
	}
	return errors.Join(domain.ErrStoreUnavailable, u.Reason)
}

func (u Unavailable) Name() string { return "unavailable" }
func (u Unavailable) Get(context.Context, string, string) (Document, error) {
	return nil, u.err()
}
func (u Unavailable) Set(context.Context, string, string, Document) error    { return u.err() }
func (u Unavailable) Update(context.Context, string, string, Document) error { return u.err() }
func (u Unavailable) FindBy(context.Context, string, string, interface{}) ([]Record, error) {
	return nil, u.err()
}
func (u Unavailable) SetChild(context.Context, string, string, string, Document) error {
	return u.err()
}
func (u Unavailable) Children(context.Context, string, string) ([]Record, error) {
	return nil, u.err()
}
func (u Unavailable) Ping(context.Context) error { return u.err() }
func (u Unavailable) Close() error               { return nil }

// IsAvailable reports whether s is a configured backend.
func IsAvailable(s Store) bool {
	if s == nil {
		return false
	}
	switch s.(type) {
	case Unavailable, *Unavailable:
		return false
	}
	return true
}

// SortRecords orders records by ID so backends return stable results.
func SortRecords(recs []Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
}
