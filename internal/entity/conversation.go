package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is a two-party conversation with per-participant visibility flags
type Conversation struct {
	Id            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PairKey       string             `json:"-" bson:"pairKey"`
	Participants  []string           `json:"participants" bson:"participants"`
	LastMessage   string             `json:"lastMessage" bson:"lastMessage"`
	LastMessageAt *time.Time         `json:"lastMessageAt,omitempty" bson:"lastMessageAt,omitempty"`
	UnreadCount   map[string]int64   `json:"unreadCount" bson:"unreadCount"`
	ArchivedBy    []string           `json:"archivedBy" bson:"archivedBy"`
	BlockedBy     []string           `json:"blockedBy" bson:"blockedBy"`
	DeletedBy     []string           `json:"deletedBy" bson:"deletedBy"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewConversation builds an empty conversation between two users
func NewConversation(userA, userB string) *Conversation {
	now := time.Now()
	return &Conversation{
		PairKey:      GenPairKey(userA, userB),
		Participants: []string{userA, userB},
		UnreadCount:  map[string]int64{},
		ArchivedBy:   []string{},
		BlockedBy:    []string{},
		DeletedBy:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasParticipant reports whether userId is a member of the conversation
func (c *Conversation) HasParticipant(userId string) bool {
	return containsString(c.Participants, userId)
}

// OtherParticipant returns the member that is not userId
func (c *Conversation) OtherParticipant(userId string) string {
	for _, p := range c.Participants {
		if p != userId {
			return p
		}
	}
	return ""
}

// ConversationView is a conversation as seen by one participant
type ConversationView struct {
	Id               string     `json:"id"`
	Participants     []string   `json:"participants"`
	OtherParticipant *UserInfo  `json:"otherParticipant,omitempty"`
	LastMessage      string     `json:"lastMessage"`
	LastMessageAt    *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount      int64      `json:"unreadCount"`
	View             View       `json:"view"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ToView projects the conversation for userId
func (c *Conversation) ToView(userId string, other *UserInfo) *ConversationView {
	return &ConversationView{
		Id:               c.Id.Hex(),
		Participants:     c.Participants,
		OtherParticipant: other,
		LastMessage:      c.LastMessage,
		LastMessageAt:    c.LastMessageAt,
		UnreadCount:      c.UnreadCount[userId],
		View:             c.ViewFor(userId),
		CreatedAt:        c.CreatedAt,
	}
}

// ConversationCounts are the sizes of the non-default buckets for one user
type ConversationCounts struct {
	Archived int64 `json:"archiveCount"`
	Deleted  int64 `json:"deletedCount"`
	Blocked  int64 `json:"blockedCount"`
}

func (c *Conversation) SetId(id primitive.ObjectID) { c.Id = id }
func (c *Conversation) GetId() primitive.ObjectID   { return c.Id }
