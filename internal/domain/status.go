package domain

import "strings"

// CanonicalStatus is the normalized outcome of a payment attempt.
type CanonicalStatus string

const (
	StatusSuccess CanonicalStatus = "success"
	StatusPending CanonicalStatus = "pending"
	StatusFailed  CanonicalStatus = "failed"
)

// OrderStatus is the customer-facing order status stored under "status".
type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderPaid           OrderStatus = "PAID"
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderPrinting       OrderStatus = "PRINTING"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderCancelled      OrderStatus = "CANCELLED"
	OrderPaymentFailed  OrderStatus = "PAYMENT_FAILED"
)

// AdminStatus is the staff-facing label stored under "adminStatus".
type AdminStatus string

const (
	AdminPending    AdminStatus = "pending"
	AdminApproved   AdminStatus = "approved"
	AdminInProgress AdminStatus = "in-progress"
	AdminPrinting   AdminStatus = "printing"
	AdminCompleted  AdminStatus = "completed"
	AdminCancelled  AdminStatus = "cancelled"
)

// NormalizeStatus maps a gateway status code or keyword to a canonical status.
// Unknown and empty inputs are pending.
func NormalizeStatus(raw string) CanonicalStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "success":
		return StatusSuccess
	case "2", "pending":
		return StatusPending
	case "3", "failed", "failure", "cancelled":
		return StatusFailed
	default:
		return StatusPending
	}
}

// OrderStatus returns the business status an order takes for this payment outcome.
func (s CanonicalStatus) OrderStatus() OrderStatus {
	switch s {
	case StatusSuccess:
		return OrderPaid
	case StatusFailed:
		return OrderPaymentFailed
	default:
		return OrderPendingPayment
	}
}

// Settled reports whether the outcome is final enough to touch the order.
func (s CanonicalStatus) Settled() bool {
	return s == StatusSuccess || s == StatusFailed
}

// AdminStatus returns the staff-facing label for a business status.
func (s OrderStatus) AdminStatus() AdminStatus {
	switch s {
	case OrderPendingPayment, OrderPaymentFailed:
		return AdminPending
	case OrderPaid:
		return AdminApproved
	case OrderProcessing:
		return AdminInProgress
	case OrderPrinting:
		return AdminPrinting
	case OrderCompleted:
		return AdminCompleted
	case OrderCancelled:
		return AdminCancelled
	default:
		return AdminPending
	}
}
