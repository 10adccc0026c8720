package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printpay/internal/domain"
)

func TestMemoryStore_GetSetUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "orders", "o1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, m.Set(ctx, "orders", "o1", Document{"a": "1", "b": "2"}))
	require.NoError(t, m.Update(ctx, "orders", "o1", Document{"b": "3", "c": "4"}))

	doc, err := m.Get(ctx, "orders", "o1")
	require.NoError(t, err)
	assert.Equal(t, Document{"a": "1", "b": "3", "c": "4"}, doc)

	// Set replaces rather than merges.
	require.NoError(t, m.Set(ctx, "orders", "o1", Document{"z": "9"}))
	doc, err = m.Get(ctx, "orders", "o1")
	require.NoError(t, err)
	assert.Equal(t, Document{"z": "9"}, doc)
	assert.Equal(t, 3, m.Writes())
}

func TestMemoryStore_FindByAndChildren(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Set(ctx, "orders", "o2", Document{"billcode": "BC"}))
	require.NoError(t, m.Set(ctx, "orders", "o1", Document{"billcode": "BC"}))
	require.NoError(t, m.Set(ctx, "orders", "o3", Document{"billcode": "other"}))

	recs, err := m.FindBy(ctx, "orders", "billcode", "BC")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "o1", recs[0].ID)
	assert.Equal(t, "o2", recs[1].ID)

	require.NoError(t, m.SetChild(ctx, "payments_by_order", "o1", "p2", Document{"paymentId": "p2"}))
	require.NoError(t, m.SetChild(ctx, "payments_by_order", "o1", "p1", Document{"paymentId": "p1"}))
	kids, err := m.Children(ctx, "payments_by_order", "o1")
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, "p1", kids[0].ID)

	none, err := m.Children(ctx, "payments_by_order", "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_Failure(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	boom := errors.New("boom")
	m.SetFailure(boom)

	assert.ErrorIs(t, m.Set(ctx, "c", "id", Document{}), boom)
	_, err := m.FindBy(ctx, "c", "f", "v")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, m.Ping(ctx), boom)
	assert.Equal(t, 0, m.Writes())

	m.SetFailure(nil)
	assert.NoError(t, m.Ping(ctx))
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, IsAvailable(NewMemoryStore()))
	assert.False(t, IsAvailable(nil))
	assert.False(t, IsAvailable(Unavailable{}))
	assert.False(t, IsAvailable(&Unavailable{}))

	_, err := Unavailable{Reason: errors.New("no creds")}.Get(context.Background(), "c", "id")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
