package service

import (
	"context"

	"github.com/mbeoliero/kit/log"
	"golang.org/x/sync/errgroup"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/pkg/errcode"
)

// ConversationService handles conversation lists and per-user visibility
type ConversationService struct {
	convs ConversationStore
	users UserStore
}

// NewConversationService creates a new ConversationService
func NewConversationService(convs ConversationStore, users UserStore) *ConversationService {
	return &ConversationService{convs: convs, users: users}
}

// List returns the caller's conversations in view together with the bucket counts
func (s *ConversationService) List(ctx context.Context, actor entity.Actor, view entity.View) ([]*entity.ConversationView, entity.ConversationCounts, error) {
	var (
		convs  []*entity.Conversation
		counts entity.ConversationCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		convs, err = s.convs.ListForUser(gctx, actor.UserId, view)
		return err
	})
	for view, dst := range map[entity.View]*int64{
		entity.ViewArchived: &counts.Archived,
		entity.ViewDeleted:  &counts.Deleted,
		entity.ViewBlocked:  &counts.Blocked,
	} {
		g.Go(func() error {
			n, err := s.convs.CountForUser(gctx, actor.UserId, view)
			*dst = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.CtxError(ctx, "list conversations failed: user_id=%s, view=%s, error=%v", actor.UserId, view, err)
		return nil, counts, errcode.ErrInternalServer
	}

	others := make([]string, 0, len(convs))
	for _, c := range convs {
		others = append(others, c.OtherParticipant(actor.UserId))
	}
	profiles := make(map[string]*entity.UserInfo, len(others))
	users, err := s.users.GetByIds(ctx, others)
	if err != nil {
		// the list is still usable without profiles
		log.CtxWarn(ctx, "load conversation participants failed: user_id=%s, error=%v", actor.UserId, err)
	}
	for _, u := range users {
		profiles[u.Id] = u.ToUserInfo()
	}

	result := make([]*entity.ConversationView, 0, len(convs))
	for _, c := range convs {
		result = append(result, c.ToView(actor.UserId, profiles[c.OtherParticipant(actor.UserId)]))
	}
	return result, counts, nil
}

// Transition applies a visibility action to the caller's view of a conversation
func (s *ConversationService) Transition(ctx context.Context, actor entity.Actor, conversationId string, action entity.VisibilityAction) error {
	if !action.Valid() {
		return errcode.ErrInvalidParam.WithMsg("unknown conversation action")
	}

	ok, err := s.convs.UpdateVisibility(ctx, conversationId, actor.UserId, action)
	if err != nil {
		log.CtxError(ctx, "update conversation visibility failed: conversation_id=%s, user_id=%s, action=%s, error=%v",
			conversationId, actor.UserId, action, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrConvNotFound
	}

	log.CtxInfo(ctx, "conversation visibility updated: conversation_id=%s, user_id=%s, action=%s", conversationId, actor.UserId, action)
	return nil
}
