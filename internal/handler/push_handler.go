package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// PushHandler manages web-push subscriptions
type PushHandler struct {
	svc *service.PushService
}

// NewPushHandler creates a new PushHandler
func NewPushHandler(svc *service.PushService) *PushHandler {
	return &PushHandler{svc: svc}
}

// Subscribe registers the calling device
func (h *PushHandler) Subscribe(ctx context.Context, c *app.RequestContext) {
	var req service.SubscribeRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	sub, err := h.svc.Subscribe(ctx, middleware.GetActor(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, sub, "Subscribed to push notifications")
}

// Unsubscribe removes one device
func (h *PushHandler) Unsubscribe(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.Unsubscribe(ctx, middleware.GetActor(c), c.Param("device_id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Unsubscribed from push notifications")
}

// List returns the caller's devices
func (h *PushHandler) List(ctx context.Context, c *app.RequestContext) {
	subs, err := h.svc.List(ctx, middleware.GetActor(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.List(ctx, c, subs, nil, nil)
}
