package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// AgencyHandler handles agency requests
type AgencyHandler struct {
	svc *service.AgencyService
}

// NewAgencyHandler creates a new AgencyHandler
func NewAgencyHandler(svc *service.AgencyService) *AgencyHandler {
	return &AgencyHandler{svc: svc}
}

// Create handles agency creation
func (h *AgencyHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req service.AgencyRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	agency, err := h.svc.Create(ctx, middleware.GetActor(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, agency, "Agency has been successfully created.")
}

// List handles agency listing
func (h *AgencyHandler) List(ctx context.Context, c *app.RequestContext) {
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

// Get handles fetching one agency
func (h *AgencyHandler) Get(ctx context.Context, c *app.RequestContext) {
	agency, err := h.svc.Get(ctx, middleware.GetActor(c), c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, agency)
}

// Update handles agency edits
func (h *AgencyHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req service.AgencyRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	agency, err := h.svc.Update(ctx, middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, agency)
}

// Delete handles agency removal
func (h *AgencyHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.Delete(ctx, middleware.GetActor(c), c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Agency deleted successfully")
}
