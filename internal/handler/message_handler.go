package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// MessageHandler handles message-related requests
type MessageHandler struct {
	msgService *service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(msgService *service.MessageService) *MessageHandler {
	return &MessageHandler{msgService: msgService}
}

// Start handles the first message to a user, creating the conversation when needed
func (h *MessageHandler) Start(ctx context.Context, c *app.RequestContext) {
	var req service.StartConversationRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	res, err := h.msgService.Start(ctx, middleware.GetActor(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if res.Created {
		response.Created(ctx, c, res, "Conversation started")
		return
	}
	response.Success(ctx, c, res)
}

// Send handles a message to an existing conversation
func (h *MessageHandler) Send(ctx context.Context, c *app.RequestContext) {
	var req service.SendMessageRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	msg, err := h.msgService.Send(ctx, middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Created(ctx, c, msg, "Message sent")
}

// List handles paging through a conversation's messages
func (h *MessageHandler) List(ctx context.Context, c *app.RequestContext) {
	p, ok := bindList(ctx, c)
	if !ok {
		return
	}

	page, err := h.msgService.ListMessages(ctx, middleware.GetActor(c), c.Param("id"), p)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	sendPage(ctx, c, page)
}

// MarkRead marks the conversation read for the caller
func (h *MessageHandler) MarkRead(ctx context.Context, c *app.RequestContext) {
	n, err := h.msgService.MarkRead(ctx, middleware.GetActor(c), c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, fmt.Sprintf("%d message(s) marked as read", n))
}

// Latest returns the newest messages addressed to the caller
func (h *MessageHandler) Latest(ctx context.Context, c *app.RequestContext) {
	msgs, err := h.msgService.Latest(ctx, middleware.GetActor(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.List(ctx, c, msgs, nil, nil)
}
