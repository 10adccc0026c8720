// Package fsstore stores documents in Cloud Firestore. Child documents of
// payments_by_order live in an "entries" subcollection, since Firestore paths
// alternate collection and document.
package fsstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"printpay/internal/domain"
	"printpay/internal/store"
)

const (
	childCollection  = "entries"
	healthCollection = "_health"
)

type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, app *firebase.App) (*Store, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Name() string { return "firestore" }

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	return store.Document(snap.Data()), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc store.Document) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, doc.Plain()); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Document) error {
	if len(fields) == 0 {
		return nil
	}
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, fields.Plain(), firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore merge %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) FindBy(ctx context.Context, collection, field string, value interface{}) ([]store.Record, error) {
	snaps, err := s.client.Collection(collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore query %s by %s: %w", collection, field, err)
	}
	return toRecords(snaps), nil
}

func (s *Store) SetChild(ctx context.Context, collection, parentID, id string, doc store.Document) error {
	ref := s.client.Collection(collection).Doc(parentID).Collection(childCollection).Doc(id)
	if _, err := ref.Set(ctx, doc.Plain()); err != nil {
		return fmt.Errorf("firestore set %s/%s/%s: %w", collection, parentID, id, err)
	}
	return nil
}

func (s *Store) Children(ctx context.Context, collection, parentID string) ([]store.Record, error) {
	snaps, err := s.client.Collection(collection).Doc(parentID).Collection(childCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore list %s/%s: %w", collection, parentID, err)
	}
	return toRecords(snaps), nil
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Collection(healthCollection).Doc("ping").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func toRecords(snaps []*firestore.DocumentSnapshot) []store.Record {
	out := make([]store.Record, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, store.Record{ID: snap.Ref.ID, Data: store.Document(snap.Data())})
	}
	store.SortRecords(out)
	return out
}
