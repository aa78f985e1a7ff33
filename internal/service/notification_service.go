package service

import (
	"context"

	"github.com/mbeoliero/kit/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

// NotificationService serves the caller's in-app notification feed
type NotificationService struct {
	notifications NotificationStore
	opts          query.Options
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications NotificationStore, opts query.Options) *NotificationService {
	return &NotificationService{notifications: notifications, opts: opts}
}

// List pages the caller's notifications, newest first.
// typ filters by notification type; "unread" selects unread ones of any type.
func (s *NotificationService) List(ctx context.Context, actor entity.Actor, typ string, p query.ListParams) (*Page[entity.Notification], error) {
	p = p.Normalize(s.opts)
	filter := bson.M{"userId": actor.UserId}
	switch typ {
	case "":
	case constant.NotifyFilterUnread:
		filter["read"] = false
	default:
		filter["type"] = typ
	}

	items, total, err := s.notifications.Page(ctx, filter, p)
	if err != nil {
		log.CtxError(ctx, "list notifications failed: user_id=%s, error=%v", actor.UserId, err)
		return nil, errcode.ErrInternalServer
	}
	return &Page[entity.Notification]{Items: items, Pagination: query.NewPagination(total, p)}, nil
}

// UnreadCount counts the caller's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, actor entity.Actor) (int64, error) {
	n, err := s.notifications.CountUnread(ctx, actor.UserId)
	if err != nil {
		log.CtxError(ctx, "count unread notifications failed: user_id=%s, error=%v", actor.UserId, err)
		return 0, errcode.ErrInternalServer
	}
	return n, nil
}

// MarkRead marks one of the caller's notifications read
func (s *NotificationService) MarkRead(ctx context.Context, actor entity.Actor, id string) error {
	ok, err := s.notifications.MarkRead(ctx, id, actor.UserId)
	if err != nil {
		log.CtxError(ctx, "mark notification read failed: id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrNotificationGone
	}
	return nil
}

// MarkAllRead marks every notification of the caller read and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, actor entity.Actor) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, actor.UserId)
	if err != nil {
		log.CtxError(ctx, "mark all notifications read failed: user_id=%s, error=%v", actor.UserId, err)
		return 0, errcode.ErrInternalServer
	}
	return n, nil
}

// Delete removes one of the caller's notifications
func (s *NotificationService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	ok, err := s.notifications.DeleteOwned(ctx, id, actor.UserId)
	if err != nil {
		log.CtxError(ctx, "delete notification failed: id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrNotificationGone
	}
	return nil
}
