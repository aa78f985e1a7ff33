package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// NotificationHandler serves the in-app notification feed
type NotificationHandler struct {
	svc *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List pages the caller's notifications; ?type=unread lists unread ones
func (h *NotificationHandler) List(ctx context.Context, c *app.RequestContext) {
	p, ok := bindList(ctx, c)
	if !ok {
		return
	}

	page, err := h.svc.List(ctx, middleware.GetActor(c), c.Query("type"), p)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	sendPage(ctx, c, page)
}

func (h *NotificationHandler) UnreadCount(ctx context.Context, c *app.RequestContext) {
	n, err := h.svc.UnreadCount(ctx, middleware.GetActor(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]int64{"count": n})
}

func (h *NotificationHandler) MarkRead(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.MarkRead(ctx, middleware.GetActor(c), c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Notification marked as read")
}

func (h *NotificationHandler) MarkAllRead(ctx context.Context, c *app.RequestContext) {
	n, err := h.svc.MarkAllRead(ctx, middleware.GetActor(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, fmt.Sprintf("%d notification(s) marked as read", n))
}

func (h *NotificationHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.Delete(ctx, middleware.GetActor(c), c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Notification deleted successfully")
}
