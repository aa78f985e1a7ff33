package sdk

import (
	"encoding/json"
	"time"
)

// Response represents the standard API envelope
type Response struct {
	Success    bool            `json:"success"`
	Code       int             `json:"code,omitempty"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination json.RawMessage `json:"pagination,omitempty"`
	Stats      json.RawMessage `json:"stats,omitempty"`
}

// Pagination describes one page of a list
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// ListOptions are the common list query parameters
type ListOptions struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	AgencyId string
}

// UserInfo represents public user info
type UserInfo struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	AgencyId  string `json:"agency_id,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	AgencyId string `json:"agencyId,omitempty"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	PlatformId int    `json:"platform_id,omitempty"`
}

// LoginResponse represents user login response
type LoginResponse struct {
	Token    string    `json:"token"`
	UserInfo *UserInfo `json:"user_info"`
}

// Customer is a lead owned by an agency
type Customer struct {
	Id             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email,omitempty"`
	PhoneNumber    string    `json:"phoneNumber"`
	WhatsAppNumber string    `json:"whatsAppNumber,omitempty"`
	MinBudget      float64   `json:"minBudget,omitempty"`
	MaxBudget      float64   `json:"maxBudget,omitempty"`
	LeadSource     string    `json:"leadSource,omitempty"`
	InitialNotes   string    `json:"initialNotes,omitempty"`
	Status         string    `json:"status,omitempty"`
	AgencyId       string    `json:"agencyId,omitempty"`
	UserId         string    `json:"userId,omitempty"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Conversation is one entry of the conversation list
type Conversation struct {
	Id               string     `json:"id"`
	Participants     []string   `json:"participants"`
	OtherParticipant *UserInfo  `json:"otherParticipant,omitempty"`
	LastMessage      string     `json:"lastMessage"`
	LastMessageAt    *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount      int64      `json:"unreadCount"`
	View             string     `json:"view"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ConversationList is one bucket of conversations with the per-bucket counts
type ConversationList struct {
	Conversations []*Conversation `json:"conversations"`
	ArchiveCount  int64           `json:"archiveCount"`
	DeletedCount  int64           `json:"deletedCount"`
	BlockedCount  int64           `json:"blockedCount"`
}

// Message is one direct message
type Message struct {
	Id             string     `json:"id"`
	ConversationId string     `json:"conversationId"`
	SenderId       string     `json:"senderId"`
	ReceiverId     string     `json:"receiverId"`
	Content        string     `json:"content"`
	Attachments    []string   `json:"attachments"`
	IsRead         bool       `json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// SendMessageRequest is the body of a message to an existing conversation
type SendMessageRequest struct {
	Content     string   `json:"content,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// StartConversationRequest is the body of a first message to a user
type StartConversationRequest struct {
	ReceiverId  string   `json:"receiverId"`
	Content     string   `json:"content,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// ConversationRef is the stored conversation returned when one is started
type ConversationRef struct {
	Id           string   `json:"id"`
	Participants []string `json:"participants"`
	LastMessage  string   `json:"lastMessage"`
}

// StartResult is the conversation and the message that started or resumed it
type StartResult struct {
	Conversation *ConversationRef `json:"conversation"`
	Message      *Message         `json:"message"`
	Created      bool             `json:"created"`
}

// Notification is one in-app notification
type Notification struct {
	Id        string    `json:"id"`
	UserId    string    `json:"userId"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
