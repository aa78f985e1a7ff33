package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// AgentHandler handles agent requests
type AgentHandler struct {
	svc *service.AgentService
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(svc *service.AgentService) *AgentHandler {
	return &AgentHandler{svc: svc}
}

// Invite creates an agent account and mails the credentials
func (h *AgentHandler) Invite(ctx context.Context, c *app.RequestContext) {
	var req service.InviteAgentRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	agent, err := h.svc.Invite(ctx, middleware.GetActor(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, agent, "Agent has been successfully invited.")
}

// List handles agent listing
func (h *AgentHandler) List(ctx context.Context, c *app.RequestContext) {
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

// Get handles fetching one agent
func (h *AgentHandler) Get(ctx context.Context, c *app.RequestContext) {
	agent, err := h.svc.Get(ctx, middleware.GetActor(c), c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, agent)
}

// Update handles agent edits
func (h *AgentHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req service.UpdateAgentRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	agent, err := h.svc.Update(ctx, middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, agent)
}

// Delete handles agent removal
func (h *AgentHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.Delete(ctx, middleware.GetActor(c), c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Agent deleted successfully")
}
