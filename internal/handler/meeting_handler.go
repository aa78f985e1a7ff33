package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// MeetingHandler handles meeting requests
type MeetingHandler struct {
	svc *service.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler
func NewMeetingHandler(svc *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{svc: svc}
}

// Create handles meeting creation
func (h *MeetingHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req service.MeetingRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	meeting, err := h.svc.Create(ctx, middleware.GetActor(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, meeting, "Meeting has been successfully scheduled.")
}

// List handles meeting listing
func (h *MeetingHandler) List(ctx context.Context, c *app.RequestContext) {
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

// Get handles fetching one meeting
func (h *MeetingHandler) Get(ctx context.Context, c *app.RequestContext) {
	meeting, err := h.svc.Get(ctx, middleware.GetActor(c), c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, meeting)
}

// Update handles meeting edits; a new date or time reschedules it
func (h *MeetingHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req service.MeetingRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	meeting, err := h.svc.Update(ctx, middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, meeting)
}

// Delete handles meeting removal
func (h *MeetingHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.Delete(ctx, middleware.GetActor(c), c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Meeting deleted successfully")
}
