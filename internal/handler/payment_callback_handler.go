package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printpay/config"
	"printpay/internal/domain"
	"printpay/internal/service"
)

type PaymentCallbackHandler struct {
	svc    *service.ReconcileService
	cfg    *config.PaymentConfig
	logger *zap.Logger
}

func NewPaymentCallbackHandler(svc *service.ReconcileService, cfg *config.PaymentConfig, logger *zap.Logger) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{svc: svc, cfg: cfg, logger: logger}
}

// Handle processes POST /payment/callback. Reconciliation outcomes, including
// unmatched payments and bad payloads, are acknowledged with 200 so the
// gateway does not keep retrying; only store faults return 500.
func (h *PaymentCallbackHandler) Handle(c *gin.Context) {
	fields, err := parseCallbackBody(c)
	if err != nil {
		h.logger.Warn("callback body unreadable", zap.String("content_type", c.ContentType()), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"received": true, "saved": false, "error": "invalid payload"})
		return
	}
	data := fields.PaymentData()
	out, err := h.svc.Reconcile(c.Request.Context(), data)
	if err != nil {
		h.logger.Error("callback processing failed",
			zap.String("billcode", data.BillCode),
			zap.String("transaction_id", data.TransactionID),
			zap.Strings("payload_keys", fields.Keys()),
			zap.Error(err))
		msg := "internal error"
		if errors.Is(err, domain.ErrStoreUnavailable) {
			msg = "database unavailable"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"received": true, "saved": false, "error": msg})
		return
	}
	out.Acknowledge()
	c.JSON(http.StatusOK, out)
}

// Return handles the browser leg of the payment: the gateway sends the user
// back here and we bounce them into the app. Nothing is written.
func (h *PaymentCallbackHandler) Return(c *gin.Context) {
	billCode := firstQuery(c, "billcode", "billCode", "bill_code")
	status := firstQuery(c, "status", "status_id", "statuscode")
	transactionID := firstQuery(c, "transaction_id", "billpaymentInvoiceNo", "invoice_no")
	target := ReturnURL(h.cfg, billCode, status, transactionID)
	h.logger.Info("payment return redirect", zap.String("billcode", billCode), zap.String("status", status))
	c.Redirect(http.StatusFound, target)
}

// ReturnURL builds the app deep link for a payment return. Without a billing
// code the error deep link is used.
func ReturnURL(cfg *config.PaymentConfig, billCode, status, transactionID string) string {
	if billCode == "" {
		return withQuery(cfg.DeepLinkErrorURL, url.Values{"error": {"missing_billcode"}})
	}
	q := url.Values{}
	q.Set("billcode", billCode)
	if status != "" {
		q.Set("status", status)
	}
	if transactionID != "" {
		q.Set("transaction_id", transactionID)
	}
	return withQuery(cfg.DeepLinkURL, q)
}

func withQuery(base string, q url.Values) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode()
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}
