package servicetest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mbeoliero/realty/internal/entity"
)

// Notifications is an in-memory notification feed
type Notifications struct {
	*Docs[entity.Notification, *entity.Notification]
}

// NewNotifications creates an empty feed
func NewNotifications() *Notifications {
	return &Notifications{Docs: NewDocs[entity.Notification]()}
}

func (n *Notifications) CountUnread(ctx context.Context, userId string) (int64, error) {
	return n.Count(ctx, bson.M{"userId": userId, "read": false})
}

func (n *Notifications) MarkRead(_ context.Context, id, userId string) (bool, error) {
	for _, it := range n.Find(bson.M{"userId": userId}) {
		if it.Id.Hex() == id {
			it.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (n *Notifications) MarkAllRead(_ context.Context, userId string) (int64, error) {
	var count int64
	for _, it := range n.Find(bson.M{"userId": userId, "read": false}) {
		it.Read = true
		count++
	}
	return count, nil
}

func (n *Notifications) DeleteOwned(ctx context.Context, id, userId string) (bool, error) {
	for _, it := range n.Find(bson.M{"userId": userId}) {
		if it.Id.Hex() == id {
			return n.DeleteById(ctx, id)
		}
	}
	return false, nil
}

// PushSubscriptions is an in-memory subscription table
type PushSubscriptions struct {
	mu     sync.Mutex
	nextId uint64
	subs   []*entity.PushSubscription
}

// NewPushSubscriptions creates an empty table
func NewPushSubscriptions() *PushSubscriptions {
	return &PushSubscriptions{}
}

func (p *PushSubscriptions) Upsert(_ context.Context, sub *entity.PushSubscription) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, it := range p.subs {
		if it.UserId == sub.UserId && it.DeviceId == sub.DeviceId {
			sub.Id = it.Id
			p.subs[i] = sub
			return nil
		}
	}
	p.nextId++
	sub.Id = p.nextId
	p.subs = append(p.subs, sub)
	return nil
}

func (p *PushSubscriptions) ListByUser(_ context.Context, userId string) ([]*entity.PushSubscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*entity.PushSubscription, 0)
	for _, it := range p.subs {
		if it.UserId == userId {
			out = append(out, it)
		}
	}
	return out, nil
}

func (p *PushSubscriptions) DeleteByDevice(_ context.Context, userId, deviceId string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, it := range p.subs {
		if it.UserId == userId && it.DeviceId == deviceId {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Tokens is an in-memory token registry keyed by user and platform
type Tokens struct {
	mu     sync.Mutex
	tokens map[string]string
}

// NewTokens creates an empty registry
func NewTokens() *Tokens {
	return &Tokens{tokens: map[string]string{}}
}

func tokenKey(userId string, platformId int) string {
	return fmt.Sprintf("%s:%d", userId, platformId)
}

func (t *Tokens) StoreToken(_ context.Context, userId string, platformId int, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens[tokenKey(userId, platformId)] = token
	return nil
}

func (t *Tokens) IsTokenValid(_ context.Context, userId string, platformId int, token string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tokens[tokenKey(userId, platformId)] == token, nil
}

func (t *Tokens) InvalidateToken(_ context.Context, userId string, platformId int, _ string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tokens, tokenKey(userId, platformId))
	return nil
}

func (t *Tokens) ForceLogoutUser(_ context.Context, userId string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	prefix := userId + ":"
	for k := range t.tokens {
		if strings.HasPrefix(k, prefix) {
			delete(t.tokens, k)
		}
	}
	return nil
}
