package entity

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbeoliero/realty/pkg/constant"
)

// Message is one entry of a conversation's append-only log
type Message struct {
	Id             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationId primitive.ObjectID `json:"conversationId" bson:"conversationId"`
	SenderId       string             `json:"senderId" bson:"senderId"`
	ReceiverId     string             `json:"receiverId" bson:"receiverId"`
	Content        string             `json:"content" bson:"content"`
	Attachments    []string           `json:"attachments" bson:"attachments"`
	IsRead         bool               `json:"isRead" bson:"isRead"`
	ReadAt         *time.Time         `json:"readAt,omitempty" bson:"readAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// Preview is the lastMessage label stored on the conversation
func (m *Message) Preview() string {
	return LastMessagePreview(m.Content, m.Attachments)
}

// LastMessagePreview returns the content, a placeholder for attachment-only messages, or ""
func LastMessagePreview(content string, attachments []string) string {
	if c := strings.TrimSpace(content); c != "" {
		return c
	}
	if len(attachments) > 0 {
		return constant.AttachmentLabel
	}
	return ""
}

func (m *Message) SetId(id primitive.ObjectID) { m.Id = id }
func (m *Message) GetId() primitive.ObjectID   { return m.Id }
