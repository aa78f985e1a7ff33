package servicetest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
)

// Conversations is an in-memory conversation store
type Conversations struct {
	mu    sync.Mutex
	convs []*entity.Conversation
}

// NewConversations creates an empty conversation store
func NewConversations() *Conversations {
	return &Conversations{}
}

// Add stores conv as is
func (c *Conversations) Add(conv *entity.Conversation) *entity.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conv.Id.IsZero() {
		conv.Id = primitive.NewObjectID()
	}
	c.convs = append(c.convs, conv)
	return conv
}

// All returns every stored conversation
func (c *Conversations) All() []*entity.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*entity.Conversation(nil), c.convs...)
}

func (c *Conversations) GetById(_ context.Context, id string) (*entity.Conversation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, conv := range c.convs {
		if conv.Id.Hex() == id {
			return conv, nil
		}
	}
	return nil, nil
}

func (c *Conversations) FindOrCreate(_ context.Context, userA, userB string) (*entity.Conversation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := entity.GenPairKey(userA, userB)
	for _, conv := range c.convs {
		if conv.PairKey == key {
			return conv, false, nil
		}
	}
	conv := entity.NewConversation(userA, userB)
	conv.Id = primitive.NewObjectID()
	c.convs = append(c.convs, conv)
	return conv, true, nil
}

func (c *Conversations) UpdateVisibility(ctx context.Context, id, userId string, action entity.VisibilityAction) (bool, error) {
	conv, _ := c.GetById(ctx, id)
	if conv == nil || !conv.HasParticipant(userId) {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	conv.Apply(action, userId)
	return true, nil
}

func (c *Conversations) ListForUser(_ context.Context, userId string, view entity.View) ([]*entity.Conversation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*entity.Conversation
	for _, conv := range c.convs {
		if conv.HasParticipant(userId) && conv.ViewFor(userId) == view {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (c *Conversations) CountForUser(ctx context.Context, userId string, view entity.View) (int64, error) {
	convs, _ := c.ListForUser(ctx, userId, view)
	return int64(len(convs)), nil
}

// RecordMessage mutates a copy so callers holding the conversation see only their own update
func (c *Conversations) RecordMessage(_ context.Context, msg *entity.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, conv := range c.convs {
		if conv.Id != msg.ConversationId {
			continue
		}
		cp := *conv
		cp.UnreadCount = make(map[string]int64, len(conv.UnreadCount)+1)
		for k, v := range conv.UnreadCount {
			cp.UnreadCount[k] = v
		}
		at := msg.CreatedAt
		cp.LastMessage = msg.Preview()
		cp.LastMessageAt = &at
		cp.UnreadCount[msg.ReceiverId]++
		c.convs[i] = &cp
	}
	return nil
}

func (c *Conversations) ResetUnread(_ context.Context, id primitive.ObjectID, userId string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, conv := range c.convs {
		if conv.Id == id {
			conv.UnreadCount[userId] = 0
		}
	}
	return nil
}

// Messages is an in-memory message store
type Messages struct {
	mu   sync.Mutex
	msgs []*entity.Message
}

// NewMessages creates an empty message store
func NewMessages() *Messages {
	return &Messages{}
}

// All returns every stored message in send order
func (m *Messages) All() []*entity.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Message(nil), m.msgs...)
}

func (m *Messages) Create(_ context.Context, msg *entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.Id = primitive.NewObjectID()
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *Messages) ListByConversation(_ context.Context, convId primitive.ObjectID, p query.ListParams) ([]*entity.Message, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*entity.Message
	for _, msg := range m.msgs {
		if msg.ConversationId == convId {
			all = append(all, msg)
		}
	}
	total := int64(len(all))
	start := min(p.Skip(), total)
	end := min(start+p.Limit, total)
	return all[start:end], total, nil
}

func (m *Messages) MarkRead(_ context.Context, convId primitive.ObjectID, reader string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, msg := range m.msgs {
		if msg.ConversationId == convId && msg.ReceiverId == reader && !msg.IsRead {
			t := at
			msg.IsRead = true
			msg.ReadAt = &t
			n++
		}
	}
	return n, nil
}

func (m *Messages) LatestForReceiver(_ context.Context, userId string, limit int64) ([]*entity.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Message
	for i := len(m.msgs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if m.msgs[i].ReceiverId == userId {
			out = append(out, m.msgs[i])
		}
	}
	return out, nil
}
