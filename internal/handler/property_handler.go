package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// PropertyHandler handles property requests
type PropertyHandler struct {
	svc *service.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// Create handles property creation
func (h *PropertyHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req service.PropertyRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	property, err := h.svc.Create(ctx, middleware.GetActor(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, property, "Property has been successfully added.")
}

// List handles property listing
func (h *PropertyHandler) List(ctx context.Context, c *app.RequestContext) {
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

func (h *PropertyHandler) Get(ctx context.Context, c *app.RequestContext) {
	property, err := h.svc.Get(ctx, middleware.GetActor(c), c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, property)
}

func (h *PropertyHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req service.PropertyRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	property, err := h.svc.Update(ctx, middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, property)
}

func (h *PropertyHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.Delete(ctx, middleware.GetActor(c), c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Property deleted successfully")
}
