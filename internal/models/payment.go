package models

import (
	"time"

	"printpay/internal/domain"
	"printpay/internal/store"
)

// PaymentData is a gateway callback reduced to the fields reconciliation uses.
type PaymentData struct {
	BillCode        string
	RawStatus       string
	Status          domain.CanonicalStatus
	Amount          float64
	TransactionID   string
	PaymentID       string
	GatewayOrderRef string
	Method          string
	Signature       string
	// Raw is the payload as received, kept for manual reconciliation.
	Raw map[string]interface{}
}

// Payment is stored at payments/{paymentId}.
type Payment struct {
	PaymentID       string
	OrderID         string
	UserID          string
	Status          domain.CanonicalStatus
	Amount          float64
	Method          string
	TransactionID   string
	BillCode        string
	GatewayOrderRef string
	Signature       string
	RawPayload      map[string]interface{}
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Payment) Document() store.Document {
	doc := store.Document{
		"paymentId":     p.PaymentID,
		"orderId":       p.OrderID,
		"userId":        p.UserID,
		"status":        string(p.Status),
		"amount":        p.Amount,
		"paymentMethod": p.Method,
		"createdAt":     p.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.TransactionID != "" {
		doc["transactionId"] = p.TransactionID
	}
	if p.BillCode != "" {
		doc[domain.FieldBillCode] = p.BillCode
	}
	if p.GatewayOrderRef != "" {
		doc["gatewayOrderId"] = p.GatewayOrderRef
	}
	if p.Signature != "" {
		doc["signature"] = p.Signature
	}
	if len(p.RawPayload) > 0 {
		doc["rawPayload"] = map[string]interface{}(store.Compact(p.RawPayload))
	}
	return doc
}

// IndexDocument is the payments_by_order/{orderId}/{paymentId} entry.
func (p *Payment) IndexDocument() store.Document {
	return store.Document{
		"paymentId": p.PaymentID,
		"status":    string(p.Status),
		"amount":    p.Amount,
		"createdAt": p.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt": p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// PaymentSummary is one entry of the payments-by-order index.
type PaymentSummary struct {
	PaymentID string  `json:"paymentId"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func PaymentSummaryFromDocument(id string, d store.Document) PaymentSummary {
	s := PaymentSummary{
		PaymentID: d.String("paymentId"),
		Status:    d.String("status"),
		Amount:    d.Float("amount"),
		CreatedAt: d.String("createdAt"),
		UpdatedAt: d.String("updatedAt"),
	}
	if s.PaymentID == "" {
		s.PaymentID = id
	}
	return s
}

// UnmatchedPayment is stored at payments_unmatched/{id} for manual review.
type UnmatchedPayment struct {
	ID         string
	Data       PaymentData
	Note       string
	OrderID    string
	ReceivedAt time.Time
}

// Document never contains empty or nil values.
func (u *UnmatchedPayment) Document() store.Document {
	doc := store.Document{
		"id":                 u.ID,
		"note":               u.Note,
		"orderId":            u.OrderID,
		domain.FieldBillCode: u.Data.BillCode,
		"status":             string(u.Data.Status),
		"rawStatus":          u.Data.RawStatus,
		"amount":             u.Data.Amount,
		"transactionId":      u.Data.TransactionID,
		"paymentId":          u.Data.PaymentID,
		"gatewayOrderId":     u.Data.GatewayOrderRef,
		"paymentMethod":      u.Data.Method,
		"signature":          u.Data.Signature,
		"receivedAt":         u.ReceivedAt.UTC().Format(time.RFC3339),
	}
	if u.Data.Raw != nil {
		doc["rawPayload"] = u.Data.Raw
	}
	return store.Compact(doc)
}
