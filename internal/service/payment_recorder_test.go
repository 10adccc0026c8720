package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printpay/internal/domain"
	"printpay/internal/models"
)

func TestPaymentID_Priority(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "TX", f.recorder.PaymentID(models.PaymentData{TransactionID: "TX", PaymentID: "P", BillCode: "BC"}))
	assert.Equal(t, "P", f.recorder.PaymentID(models.PaymentData{PaymentID: "P", BillCode: "BC"}))
	assert.Equal(t, "BC", f.recorder.PaymentID(models.PaymentData{BillCode: "BC"}))

	a := f.recorder.PaymentID(models.PaymentData{})
	b := f.recorder.PaymentID(models.PaymentData{})
	assert.True(t, strings.HasPrefix(a, "PAY-"))
	assert.NotEqual(t, a, b)
}

func TestRecord_RequiresBothOwners(t *testing.T) {
	f := newFixture(t)
	data := models.PaymentData{BillCode: "BC1", Status: domain.StatusSuccess}

	_, err := f.recorder.Record(context.Background(), data, "", "u1")
	assert.ErrorIs(t, err, domain.ErrMissingOwner)
	_, err = f.recorder.Record(context.Background(), data, "o1", "")
	assert.ErrorIs(t, err, domain.ErrMissingOwner)
	assert.Equal(t, 0, f.store.Writes())
}

func TestRecord_WritesPaymentAndIndex(t *testing.T) {
	f := newFixture(t)
	data := models.PaymentData{
		BillCode:        "BC1",
		Status:          domain.StatusSuccess,
		Amount:          50,
		TransactionID:   "TX1",
		GatewayOrderRef: "ORD1",
		Signature:       "sig",
		Raw:             map[string]interface{}{"billcode": "BC1", "status": "1", "empty": nil},
	}

	p, err := f.recorder.Record(context.Background(), data, "ORD1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "TX1", p.PaymentID)

	doc := f.get(t, domain.CollectionPayments, "TX1")
	assert.Equal(t, "ORD1", doc["orderId"])
	assert.Equal(t, "u1", doc["userId"])
	assert.Equal(t, "success", doc["status"])
	assert.Equal(t, 50.0, doc["amount"])
	assert.Equal(t, "toyyibpay", doc["paymentMethod"])
	assert.Equal(t, "BC1", doc["billcode"])
	assert.Equal(t, "ORD1", doc["gatewayOrderId"])
	assert.Equal(t, "sig", doc["signature"])
	assert.Equal(t, "2026-03-01T10:00:00Z", doc["createdAt"])
	assert.Equal(t, map[string]interface{}{"billcode": "BC1", "status": "1"}, doc["rawPayload"])

	list, err := f.payments.ListByOrder(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.PaymentSummary{
		PaymentID: "TX1",
		Status:    "success",
		Amount:    50,
		CreatedAt: "2026-03-01T10:00:00Z",
		UpdatedAt: "2026-03-01T10:00:00Z",
	}, list[0])
}

func TestRecord_ReplayOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := models.PaymentData{BillCode: "BC1", TransactionID: "TX1", Status: domain.StatusPending, Amount: 10}
	second := models.PaymentData{BillCode: "BC1", TransactionID: "TX1", Status: domain.StatusSuccess, Amount: 12}

	_, err := f.recorder.Record(ctx, first, "ORD1", "u1")
	require.NoError(t, err)
	_, err = f.recorder.Record(ctx, second, "ORD1", "u1")
	require.NoError(t, err)

	recs, err := f.payments.FindByField(ctx, "billcode", "BC1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "success", recs[0].Data["status"])
	assert.Equal(t, 12.0, recs[0].Data["amount"])

	list, err := f.payments.ListByOrder(ctx, "ORD1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "success", list[0].Status)
}
