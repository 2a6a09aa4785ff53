package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scart/backend/internal/application/trade"
)

// QuotationHandler handles quotation and estimation-rate endpoints
type QuotationHandler struct {
	BaseHandler
	quotations *trade.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotations *trade.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotations: quotations}
}

// Create registers a new quotation. A referenced customer must be approved.
// POST /api/v1/quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	var req trade.QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotations.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, quotation)
}

// Update replaces a quotation's header and detail lines.
// PUT /api/v1/quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req trade.QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotations.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quotation)
}

// Get returns one quotation with derived amounts.
// GET /api/v1/quotations/:id
func (h *QuotationHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotations.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quotation)
}

// List returns quotations matching the filter.
// GET /api/v1/quotations
func (h *QuotationHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if v := c.Query("customer_id"); v != "" {
		customerID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			h.BadRequest(c, "invalid customer_id parameter")
			return
		}
		filter.Filters["customer_id"] = uint(customerID)
	}
	if v := c.Query("original_id"); v != "" {
		originalID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			h.BadRequest(c, "invalid original_id parameter")
			return
		}
		filter.Filters["original_id"] = uint(originalID)
	}
	if c.Query("latest_only") == "true" {
		filter.Filters["latest_only"] = true
	}

	page, err := h.quotations.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CreateRevision copies a quotation as the next revision of its group.
// POST /api/v1/quotations/:id/revisions
func (h *QuotationHandler) CreateRevision(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	revision, err := h.quotations.CreateRevision(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, revision)
}

// Delete removes a quotation and its lines.
// DELETE /api/v1/quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.quotations.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// GetRates returns the cost-estimation rates.
// GET /api/v1/settings/rates
func (h *QuotationHandler) GetRates(c *gin.Context) {
	rates, err := h.quotations.GetRates(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rates)
}

// UpdateRates replaces the cost-estimation rates.
// PUT /api/v1/settings/rates
func (h *QuotationHandler) UpdateRates(c *gin.Context) {
	var req trade.RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rates, err := h.quotations.UpdateRates(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rates)
}
