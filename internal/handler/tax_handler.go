package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"declara/internal/middleware"
	"declara/internal/service"
)

// TaxHandler serves duty/VAT preview and confirmation endpoints.
type TaxHandler struct {
	taxes *service.TaxService
}

// NewTaxHandler creates a TaxHandler.
func NewTaxHandler(taxes *service.TaxService) *TaxHandler {
	return &TaxHandler{taxes: taxes}
}

type rateRequest struct {
	ManualRate    string `json:"manual_rate"`
	BaseCurrency  string `json:"base_currency"`
	QuoteCurrency string `json:"quote_currency"`
}

func (r *rateRequest) toOptions(c *gin.Context) (service.RateOptions, bool) {
	opts := service.RateOptions{
		BaseCurrency:  r.BaseCurrency,
		QuoteCurrency: r.QuoteCurrency,
	}
	if r.ManualRate != "" {
		rate, err := decimal.NewFromString(r.ManualRate)
		if err != nil || rate.LessThanOrEqual(decimal.Zero) {
			RespondError(c, 400, "INVALID_RATE", "manual_rate must be a positive decimal")
			return opts, false
		}
		opts.ManualRate = &rate
	}
	return opts, true
}

// Preview handles POST /entries/:id/tax/preview.
func (h *TaxHandler) Preview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req rateRequest
	_ = c.ShouldBindJSON(&req)
	opts, ok := req.toOptions(c)
	if !ok {
		return
	}

	result, err := h.taxes.Preview(c.Request.Context(), id, opts)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Confirm handles POST /entries/:id/tax/confirm.
func (h *TaxHandler) Confirm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req rateRequest
	_ = c.ShouldBindJSON(&req)
	opts, ok := req.toOptions(c)
	if !ok {
		return
	}

	actor := middleware.GetActor(c)
	comp, err := h.taxes.Confirm(c.Request.Context(), id, opts, actor)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, comp)
}

// Get handles GET /entries/:id/tax.
func (h *TaxHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	comp, err := h.taxes.GetComputation(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, comp)
}
