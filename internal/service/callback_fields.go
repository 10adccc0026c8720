package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"printpay/internal/domain"
	"printpay/internal/models"
)

// Gateways disagree on field names; each group lists the accepted spellings
// in priority order.
var (
	billCodeKeys      = []string{"billcode", "billCode", "bill_code"}
	statusKeys        = []string{"status", "statuscode", "billpaymentStatus"}
	amountKeys        = []string{"amount", "billpaymentAmount", "totalAmount"}
	transactionIDKeys = []string{"transaction_id", "billpaymentInvoiceNo", "invoice_no"}
	orderRefKeys      = []string{"order_id", "externalRef", "billExternalReferenceNo"}
	paymentIDKeys     = []string{"payment_id", "paymentId"}
	methodKeys        = []string{"payment_method", "paymentChannel", "billpaymentChannel"}
	signatureKeys     = []string{"signature"}
)

// CallbackFields is a webhook body flattened to field -> value, whatever the
// content type it arrived with.
type CallbackFields map[string]interface{}

// First returns the first non-empty value among keys.
func (f CallbackFields) First(keys ...string) string {
	for _, k := range keys {
		if s := stringValue(f[k]); s != "" {
			return s
		}
	}
	return ""
}

// Keys lists the field names present, for logging.
func (f CallbackFields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	return keys
}

// PaymentData extracts the recognised fields and normalizes the status.
// A missing or unparseable amount is 0.
func (f CallbackFields) PaymentData() models.PaymentData {
	raw := f.First(statusKeys...)
	amount, _ := strconv.ParseFloat(f.First(amountKeys...), 64)
	return models.PaymentData{
		BillCode:        f.First(billCodeKeys...),
		RawStatus:       raw,
		Status:          domain.NormalizeStatus(raw),
		Amount:          amount,
		TransactionID:   f.First(transactionIDKeys...),
		PaymentID:       f.First(paymentIDKeys...),
		GatewayOrderRef: f.First(orderRefKeys...),
		Method:          f.First(methodKeys...),
		Signature:       f.First(signatureKeys...),
		Raw:             map[string]interface{}(f),
	}
}

// FieldsFromValues flattens form values, keeping the first value per key.
func FieldsFromValues(values map[string][]string) CallbackFields {
	f := make(CallbackFields, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			f[k] = vs[0]
		}
	}
	return f
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}
