package store

import (
	"context"
	"sync"

	"printpay/internal/domain"
)

// MemoryStore keeps documents in process. It backs tests and local runs
// without Firebase credentials.
type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[string]map[string]Document
	children map[string]map[string]map[string]Document
	fail     error
	writes   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     make(map[string]map[string]Document),
		children: make(map[string]map[string]map[string]Document),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

// SetFailure makes every subsequent call return err. nil clears it.
func (m *MemoryStore) SetFailure(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}

// Writes returns the number of successful write calls.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.fail != nil {
		return nil, m.fail
	}
	doc, ok := m.docs[collection][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc.Clone(), nil
}

func (m *MemoryStore) Set(_ context.Context, collection, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]Document)
	}
	m.docs[collection][id] = doc.Clone()
	m.writes++
	return nil
}

func (m *MemoryStore) Update(_ context.Context, collection, id string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]Document)
	}
	doc := m.docs[collection][id]
	if doc == nil {
		doc = make(Document)
	}
	for k, v := range fields {
		doc[k] = cloneValue(v)
	}
	m.docs[collection][id] = doc
	m.writes++
	return nil
}

func (m *MemoryStore) FindBy(_ context.Context, collection, field string, value interface{}) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []Record
	for id, doc := range m.docs[collection] {
		if v, ok := doc[field]; ok && v == value {
			out = append(out, Record{ID: id, Data: doc.Clone()})
		}
	}
	SortRecords(out)
	return out, nil
}

func (m *MemoryStore) SetChild(_ context.Context, collection, parentID, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.children[collection] == nil {
		m.children[collection] = make(map[string]map[string]Document)
	}
	if m.children[collection][parentID] == nil {
		m.children[collection][parentID] = make(map[string]Document)
	}
	m.children[collection][parentID][id] = doc.Clone()
	m.writes++
	return nil
}

func (m *MemoryStore) Children(_ context.Context, collection, parentID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []Record
	for id, doc := range m.children[collection][parentID] {
		out = append(out, Record{ID: id, Data: doc.Clone()})
	}
	SortRecords(out)
	return out, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fail
}

func (m *MemoryStore) Close() error { return nil }
