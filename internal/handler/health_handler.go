package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printpay/internal/store"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Health always answers 200; storeAvailable reports whether the backend responds.
func (h *HealthHandler) Health(c *gin.Context) {
	available := false
	if store.IsAvailable(h.store) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		available = h.store.Ping(ctx) == nil
		cancel()
	}
	name := "none"
	if h.store != nil {
		name = h.store.Name()
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"status":         "ok",
		"store":          name,
		"storeAvailable": available,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
