package models

import (
	"printpay/internal/domain"
	"printpay/internal/store"
)

// Order is the subset of an orders/{orderId} document this service reads.
// Orders are created by the ordering app; only status fields and billing codes
// are written here.
type Order struct {
	OrderID     string
	UserID      string
	BillCode    string
	Status      domain.OrderStatus
	AdminStatus domain.AdminStatus
	// StandIn is set when the order document is missing and the order was
	// rebuilt from a prior payment record.
	StandIn bool
}

// OrderFromDocument reads an order. The document id wins over an orderId field.
func OrderFromDocument(id string, d store.Document) *Order {
	o := &Order{
		OrderID:     id,
		UserID:      d.String("userId"),
		BillCode:    d.String(domain.FieldBillCode),
		Status:      domain.OrderStatus(d.String("status")),
		AdminStatus: domain.AdminStatus(d.String("adminStatus")),
	}
	if o.OrderID == "" {
		o.OrderID = d.String("orderId")
	}
	if o.BillCode == "" {
		o.BillCode = d.String(domain.FieldBillCodeLegacy)
	}
	return o
}
