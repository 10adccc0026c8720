package domain

const (
	RoleAdmin = "ADMIN"
)

// Collection names in the document store.
const (
	CollectionOrders            = "orders"
	CollectionPayments          = "payments"
	CollectionPaymentsByOrder   = "payments_by_order"
	CollectionPaymentsUnmatched = "payments_unmatched"
	CollectionUsers             = "users"
)

// Order document field names. Billing codes were written under two spellings
// over time and both are still read.
const (
	FieldBillCode       = "billcode"
	FieldBillCodeLegacy = "billCode"
)

// CallbackState tracks how far a single webhook invocation got.
type CallbackState string

const (
	StateReceived          CallbackState = "RECEIVED"
	StateNormalized        CallbackState = "NORMALIZED"
	StateResolving         CallbackState = "RESOLVING"
	StateUnresolvedNoOrder CallbackState = "UNRESOLVED_NO_ORDER"
	StateUnresolvedNoUser  CallbackState = "UNRESOLVED_NO_USER"
	StateResolved          CallbackState = "RESOLVED"
	StateRecorded          CallbackState = "RECORDED"
	StateStatusUpdated     CallbackState = "STATUS_UPDATED"
	StateSkipped           CallbackState = "SKIPPED"
	StateAcknowledged      CallbackState = "ACKNOWLEDGED"
)

// Admin API scopes carried in operator tokens.
const (
	ScopePaymentsRead  = "payments:read"
	ScopeUnmatchedRead = "unmatched:read"
)
