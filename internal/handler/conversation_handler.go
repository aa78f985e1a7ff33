package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// ConversationHandler handles conversation-related requests
type ConversationHandler struct {
	convService *service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(convService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

type conversationList struct {
	Conversations []*entity.ConversationView `json:"conversations"`
	entity.ConversationCounts
}

// List returns one bucket of the caller's conversations.
// ?archived, ?deleted and ?blocked select the bucket; several flags resolve by precedence.
func (h *ConversationHandler) List(ctx context.Context, c *app.RequestContext) {
	view := entity.ViewFromFlags(c.Query("archived") == "true", c.Query("deleted") == "true", c.Query("blocked") == "true")

	convs, counts, err := h.convService.List(ctx, middleware.GetActor(c), view)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, conversationList{Conversations: convs, ConversationCounts: counts})
}

var pastTense = map[entity.VisibilityAction]string{
	entity.ActionArchive:   "archived",
	entity.ActionUnarchive: "unarchived",
	entity.ActionBlock:     "blocked",
	entity.ActionUnblock:   "unblocked",
	entity.ActionDelete:    "deleted",
	entity.ActionRestore:   "restored",
}

// Transition returns a handler applying action to the conversation in the path
func (h *ConversationHandler) Transition(action entity.VisibilityAction) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if err := h.convService.Transition(ctx, middleware.GetActor(c), c.Param("id"), action); err != nil {
			response.Error(ctx, c, err)
			return
		}
		response.Message(ctx, c, "Conversation "+pastTense[action]+" successfully")
	}
}
