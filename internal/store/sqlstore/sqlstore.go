// Package sqlstore keeps documents in a single SQL table with a JSON body,
// for deployments that run on MySQL instead of Firebase.
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"printpay/internal/domain"
	"printpay/internal/store"
)

type document struct {
	Collection string         `gorm:"primaryKey;size:64"`
	ID         string         `gorm:"primaryKey;size:191"`
	ParentID   string         `gorm:"size:191;index:idx_documents_parent"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (document) TableName() string {
	return "documents"
}

// Children are stored in the parent's collection under "<parentID>/<id>".
func childKey(parentID, id string) string {
	return parentID + "/" + id
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string { return "mysql" }

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var row document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sql get %s/%s: %w", collection, id, err)
	}
	return decode(row.Data)
}

func (s *Store) Set(ctx context.Context, collection, id string, doc store.Document) error {
	return s.upsert(s.db.WithContext(ctx), collection, id, "", doc)
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Document) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&row).Error
		current := store.Document{}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return fmt.Errorf("sql lock %s/%s: %w", collection, id, err)
		default:
			if current, err = decode(row.Data); err != nil {
				return err
			}
		}
		for k, v := range fields {
			current[k] = v
		}
		return s.upsert(tx, collection, id, row.ParentID, current)
	})
}

func (s *Store) FindBy(ctx context.Context, collection, field string, value interface{}) ([]store.Record, error) {
	var rows []document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND parent_id = ''", collection).
		Where(datatypes.JSONQuery("data").Equals(value, field)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sql query %s by %s: %w", collection, field, err)
	}
	return toRecords(rows, "")
}

func (s *Store) SetChild(ctx context.Context, collection, parentID, id string, doc store.Document) error {
	return s.upsert(s.db.WithContext(ctx), collection, childKey(parentID, id), parentID, doc)
}

func (s *Store) Children(ctx context.Context, collection, parentID string) ([]store.Record, error) {
	var rows []document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND parent_id = ?", collection, parentID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sql list %s/%s: %w", collection, parentID, err)
	}
	return toRecords(rows, parentID+"/")
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) upsert(tx *gorm.DB, collection, id, parentID string, doc store.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	row := document{Collection: collection, ID: id, ParentID: parentID, Data: datatypes.JSON(body)}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"parent_id", "data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("sql upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func decode(data datatypes.JSON) (store.Document, error) {
	doc := store.Document{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func toRecords(rows []document, prefix string) ([]store.Record, error) {
	out := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		doc, err := decode(row.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, store.Record{ID: row.ID[len(prefix):], Data: doc})
	}
	return out, nil
}
