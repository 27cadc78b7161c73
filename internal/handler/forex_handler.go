package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"declara/internal/forex"
)

// ForexHandler serves the exchange-rate lookup endpoint. It never errors:
// provider failures surface only through the "fallback" source label.
type ForexHandler struct {
	resolver *forex.Resolver
}

// NewForexHandler creates a ForexHandler.
func NewForexHandler(resolver *forex.Resolver) *ForexHandler {
	return &ForexHandler{resolver: resolver}
}

// Rate handles GET /forex/rate?base=USD&quote=PHP.
func (h *ForexHandler) Rate(c *gin.Context) {
	base := c.Query("base")
	quote := c.Query("quote")

	q := h.resolver.Resolve(c.Request.Context(), base, quote, time.Now().UTC())
	RespondOK(c, gin.H{
		"rate":           q.Rate,
		"base_currency":  q.BaseCurrency,
		"quote_currency": q.QuoteCurrency,
		"rate_date":      q.RateDate.Format("2006-01-02"),
		"source":         q.Source,
	})
}
