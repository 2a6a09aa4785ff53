package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/scart/backend/internal/application/partner"
	"github.com/scart/backend/internal/interfaces/http/middleware"
)

// CustomerHandler handles customer master and approval endpoints
type CustomerHandler struct {
	BaseHandler
	customers *partner.CustomerService
	approvals *partner.CustomerApprovalService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *partner.CustomerService, approvals *partner.CustomerApprovalService) *CustomerHandler {
	return &CustomerHandler{customers: customers, approvals: approvals}
}

// Create registers a new customer in pending status.
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, customer)
}

// Update replaces a customer's master fields.
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req partner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customer)
}

// Get returns one customer.
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customer)
}

// List returns customers matching the filter. Non-admin callers only
// see approved customers regardless of the status parameter.
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.customers.List(c.Request.Context(), middleware.IsAdmin(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete removes a customer that is not referenced by any quotation.
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Approve transitions a pending customer to approved, activating the
// requesting user and recording the decision in the approval log.
// POST /api/v1/customers/:id/approve
func (h *CustomerHandler) Approve(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.approvals.Approve(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customer)
}

// Reject transitions a pending customer to rejected with an optional comment.
// POST /api/v1/customers/:id/reject
func (h *CustomerHandler) Reject(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	// The comment body is optional.
	var req partner.RejectCustomerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	customer, err := h.approvals.Reject(c.Request.Context(), id, middleware.GetUserID(c), req.Comment)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customer)
}

// ApprovalHistory returns the customer's approval log entries, newest first.
// GET /api/v1/customers/:id/approval-history
func (h *CustomerHandler) ApprovalHistory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.approvals.History(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, history)
}
