package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printpay/internal/repository"
)

// AdminHandler exposes read-only views for staff reconciling payments by hand.
type AdminHandler struct {
	payments  *repository.PaymentRepository
	unmatched *repository.UnmatchedPaymentRepository
	logger    *zap.Logger
}

func NewAdminHandler(payments *repository.PaymentRepository, unmatched *repository.UnmatchedPaymentRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{payments: payments, unmatched: unmatched, logger: logger}
}

// OrderPayments handles GET /admin/orders/:orderId/payments.
func (h *AdminHandler) OrderPayments(c *gin.Context) {
	orderID := c.Param("orderId")
	list, err := h.payments.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.logger.Error("list payments by order", zap.String("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": orderID, "payments": list})
}

// UnmatchedPayment handles GET /admin/payments/unmatched/:id.
func (h *AdminHandler) UnmatchedPayment(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.unmatched.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get unmatched payment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payment"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}
