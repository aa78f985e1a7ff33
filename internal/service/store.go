package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/query"
)

// DocStore is the document collection contract the entity services rely on
type DocStore[T any] interface {
	Create(ctx context.Context, doc *T) error
	GetById(ctx context.Context, id string) (*T, error)
	Replace(ctx context.Context, doc *T) error
	DeleteById(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Page(ctx context.Context, filter bson.M, p query.ListParams) ([]*T, int64, error)
	FindIds(ctx context.Context, filter bson.M) ([]string, error)
}

// CustomerStore adds the duplicate lookup used on lead creation
type CustomerStore interface {
	DocStore[entity.Customer]
	FindByPhone(ctx context.Context, agencyId, phone string) (*entity.Customer, error)
}

// MeetingStore adds the time-window queries used by the meeting jobs
type MeetingStore interface {
	DocStore[entity.Meeting]
	MarkPast(ctx context.Context, cutoff time.Time) (int64, error)
	FindUpcomingBetween(ctx context.Context, from, to time.Time) ([]*entity.Meeting, error)
}

// ConversationStore persists conversations and their per-user state
type ConversationStore interface {
	GetById(ctx context.Context, id string) (*entity.Conversation, error)
	FindOrCreate(ctx context.Context, userA, userB string) (*entity.Conversation, bool, error)
	UpdateVisibility(ctx context.Context, id, userId string, action entity.VisibilityAction) (bool, error)
	ListForUser(ctx context.Context, userId string, view entity.View) ([]*entity.Conversation, error)
	CountForUser(ctx context.Context, userId string, view entity.View) (int64, error)
	RecordMessage(ctx context.Context, msg *entity.Message) error
	ResetUnread(ctx context.Context, id primitive.ObjectID, userId string) error
}

// MessageStore persists conversation messages
type MessageStore interface {
	Create(ctx context.Context, msg *entity.Message) error
	ListByConversation(ctx context.Context, convId primitive.ObjectID, p query.ListParams) ([]*entity.Message, int64, error)
	MarkRead(ctx context.Context, convId primitive.ObjectID, reader string, at time.Time) (int64, error)
	LatestForReceiver(ctx context.Context, userId string, limit int64) ([]*entity.Message, error)
}

// UserStore persists user accounts
type UserStore interface {
	Create(ctx context.Context, user *entity.User) error
	GetById(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIds(ctx context.Context, ids []string) ([]*entity.User, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) (bool, error)
	Page(ctx context.Context, f *query.Filter, p query.ListParams) ([]*entity.User, int64, error)
	FindIds(ctx context.Context, f *query.Filter) ([]string, error)
}

// NotificationStore reads and updates a user's notification feed
type NotificationStore interface {
	Page(ctx context.Context, filter bson.M, p query.ListParams) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userId string) (int64, error)
	MarkRead(ctx context.Context, id, userId string) (bool, error)
	MarkAllRead(ctx context.Context, userId string) (int64, error)
	DeleteOwned(ctx context.Context, id, userId string) (bool, error)
}

// PushSubscriptionStore persists web-push subscriptions
type PushSubscriptionStore interface {
	Upsert(ctx context.Context, sub *entity.PushSubscription) error
	ListByUser(ctx context.Context, userId string) ([]*entity.PushSubscription, error)
	DeleteByDevice(ctx context.Context, userId, deviceId string) (bool, error)
}

// TokenStore tracks issued tokens so they can be revoked
type TokenStore interface {
	StoreToken(ctx context.Context, userId string, platformId int, token string) error
	IsTokenValid(ctx context.Context, userId string, platformId int, token string) (bool, error)
	InvalidateToken(ctx context.Context, userId string, platformId int, token string) error
	ForceLogoutUser(ctx context.Context, userId string) error
}

// Notifier dispatches side effects without blocking the caller
type Notifier interface {
	Notify(ctx context.Context, n notify.Notification)
	Push(ctx context.Context, p notify.Push)
	Email(ctx context.Context, e notify.Email)
}
