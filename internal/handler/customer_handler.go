package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// CustomerHandler handles customer requests
type CustomerHandler struct {
	svc *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Create handles customer creation
func (h *CustomerHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req service.CustomerRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	customer, err := h.svc.Create(ctx, middleware.GetActor(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, customer, "Customer has been successfully added.")
}

// List handles customer listing
func (h *CustomerHandler) List(ctx context.Context, c *app.RequestContext) {
	p, ok := bindList(ctx, c)
	if !ok {
		return
	}

	page, err := h.svc.List(ctx, middleware.GetActor(c), p)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	sendPage(ctx, c, page)
}

// Get handles fetching one customer
func (h *CustomerHandler) Get(ctx context.Context, c *app.RequestContext) {
	customer, err := h.svc.Get(ctx, middleware.GetActor(c), c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, customer)
}

// Update handles customer edits
func (h *CustomerHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req service.CustomerRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	customer, err := h.svc.Update(ctx, middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, customer)
}

// Delete handles customer removal
func (h *CustomerHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.Delete(ctx, middleware.GetActor(c), c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Customer deleted successfully")
}
