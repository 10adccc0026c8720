// Package rtdb stores documents in the Firebase Realtime Database.
package rtdb

import (
	"context"
	"fmt"
	"path"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"

	"printpay/internal/domain"
	"printpay/internal/store"
)

// healthPath is read by Ping. It normally holds nothing, which keeps the check cheap.
const healthPath = "_health"

type Store struct {
	client *db.Client
}

// New connects to the database at databaseURL. An empty URL uses the
// databaseURL from the app config.
func New(ctx context.Context, app *firebase.App, databaseURL string) (*Store, error) {
	var (
		client *db.Client
		err    error
	)
	if databaseURL != "" {
		client, err = app.DatabaseWithURL(ctx, databaseURL)
	} else {
		client, err = app.Database(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("rtdb client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Name() string { return "firebase-rtdb" }

func (s *Store) ref(parts ...string) *db.Ref {
	return s.client.NewRef(path.Join(parts...))
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var doc map[string]interface{}
	if err := s.ref(collection, id).Get(ctx, &doc); err != nil {
		return nil, fmt.Errorf("rtdb get %s/%s: %w", collection, id, err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return store.Document(doc), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc store.Document) error {
	if err := s.ref(collection, id).Set(ctx, doc.Plain()); err != nil {
		return fmt.Errorf("rtdb set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Document) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.ref(collection, id).Update(ctx, fields.Plain()); err != nil {
		return fmt.Errorf("rtdb update %s/%s: %w", collection, id, err)
	}
	return nil
}

// FindBy needs an ".indexOn" rule for field in the database rules, otherwise
// the server filters the whole collection.
func (s *Store) FindBy(ctx context.Context, collection, field string, value interface{}) ([]store.Record, error) {
	var result map[string]map[string]interface{}
	if err := s.ref(collection).OrderByChild(field).EqualTo(value).Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("rtdb query %s by %s: %w", collection, field, err)
	}
	return toRecords(result), nil
}

func (s *Store) SetChild(ctx context.Context, collection, parentID, id string, doc store.Document) error {
	if err := s.ref(collection, parentID, id).Set(ctx, doc.Plain()); err != nil {
		return fmt.Errorf("rtdb set %s/%s/%s: %w", collection, parentID, id, err)
	}
	return nil
}

func (s *Store) Children(ctx context.Context, collection, parentID string) ([]store.Record, error) {
	var result map[string]map[string]interface{}
	if err := s.ref(collection, parentID).Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("rtdb get %s/%s: %w", collection, parentID, err)
	}
	return toRecords(result), nil
}

func (s *Store) Ping(ctx context.Context) error {
	var v interface{}
	return s.ref(healthPath).Get(ctx, &v)
}

// Close is a no-op; the REST client holds no connection.
func (s *Store) Close() error { return nil }

func toRecords(m map[string]map[string]interface{}) []store.Record {
	out := make([]store.Record, 0, len(m))
	for id, doc := range m {
		if doc == nil {
			continue
		}
		out = append(out, store.Record{ID: id, Data: store.Document(doc)})
	}
	store.SortRecords(out)
	return out
}
