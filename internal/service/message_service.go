package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

// MessageService handles sending, reading and listing messages
type MessageService struct {
	convs       ConversationStore
	msgs        MessageStore
	users       UserStore
	notifier    Notifier
	opts        query.Options
	frontendURL string
	now         func() time.Time
}

// NewMessageService creates a new MessageService
func NewMessageService(convs ConversationStore, msgs MessageStore, users UserStore, notifier Notifier, opts query.Options, frontendURL string) *MessageService {
	return &MessageService{
		convs:       convs,
		msgs:        msgs,
		users:       users,
		notifier:    notifier,
		opts:        opts,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// SendMessageRequest is the body of a message sent to an existing conversation
type SendMessageRequest struct {
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

// StartConversationRequest is the body of a first message to a user
type StartConversationRequest struct {
	ReceiverId  string   `json:"receiverId" validate:"required"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

// StartResult is the outcome of starting (or resuming) a conversation
type StartResult struct {
	Conversation *entity.Conversation `json:"conversation"`
	Message      *entity.Message      `json:"message"`
	Created      bool                 `json:"created"`
}

// Send appends a message to a conversation the caller takes part in
func (s *MessageService) Send(ctx context.Context, actor entity.Actor, conversationId string, req *SendMessageRequest) (*entity.Message, error) {
	if entity.LastMessagePreview(req.Content, req.Attachments) == "" {
		return nil, errcode.ErrEmptyMessage
	}

	conv, err := s.participantConversation(ctx, actor, conversationId)
	if err != nil {
		return nil, err
	}
	return s.appendMessage(ctx, actor, conv, req.Content, req.Attachments)
}

// Start finds or creates the caller's conversation with the receiver and appends the first message.
// The receiver is notified only when the conversation did not exist yet.
func (s *MessageService) Start(ctx context.Context, actor entity.Actor, req *StartConversationRequest) (*StartResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if entity.LastMessagePreview(req.Content, req.Attachments) == "" {
		return nil, errcode.ErrEmptyMessage
	}
	if req.ReceiverId == actor.UserId {
		return nil, errcode.ErrSelfConversation
	}

	receiver, err := s.users.GetById(ctx, req.ReceiverId)
	if err != nil {
		log.CtxError(ctx, "get receiver failed: receiver_id=%s, error=%v", req.ReceiverId, err)
		return nil, errcode.ErrInternalServer
	}
	if receiver == nil {
		return nil, errcode.ErrReceiverNotFound
	}

	conv, created, err := s.convs.FindOrCreate(ctx, actor.UserId, receiver.Id)
	if err != nil {
		log.CtxError(ctx, "find or create conversation failed: sender_id=%s, receiver_id=%s, error=%v", actor.UserId, receiver.Id, err)
		return nil, errcode.ErrInternalServer
	}

	msg, err := s.appendMessage(ctx, actor, conv, req.Content, req.Attachments)
	if err != nil {
		return nil, err
	}

	if created {
		link := fmt.Sprintf("/%s/messages?conversationId=%s", receiver.Role, conv.Id.Hex())
		s.notifier.Notify(ctx, notify.Notification{
			UserId:   receiver.Id,
			AgencyId: receiver.AgencyId,
			Message:  "You have a new message: " + msg.Preview(),
			Type:     constant.NotifyTypeMessage,
			Link:     link,
		})
		s.notifier.Push(ctx, notify.Push{
			UserId:  receiver.Id,
			Title:   "New Message",
			Message: msg.Preview(),
			UrlPath: link,
		})
		log.CtxInfo(ctx, "conversation started: conversation_id=%s, sender_id=%s, receiver_id=%s", conv.Id.Hex(), actor.UserId, receiver.Id)
	}

	return &StartResult{Conversation: conv, Message: msg, Created: created}, nil
}

// MarkRead marks every message addressed to the caller as read and clears the caller's unread counter
func (s *MessageService) MarkRead(ctx context.Context, actor entity.Actor, conversationId string) (int64, error) {
	conv, err := s.participantConversation(ctx, actor, conversationId)
	if err != nil {
		return 0, err
	}

	n, err := s.msgs.MarkRead(ctx, conv.Id, actor.UserId, s.now())
	if err != nil {
		log.CtxError(ctx, "mark messages read failed: conversation_id=%s, user_id=%s, error=%v", conversationId, actor.UserId, err)
		return 0, errcode.ErrInternalServer
	}
	if err := s.convs.ResetUnread(ctx, conv.Id, actor.UserId); err != nil {
		log.CtxError(ctx, "reset unread count failed: conversation_id=%s, user_id=%s, error=%v", conversationId, actor.UserId, err)
		return 0, errcode.ErrInternalServer
	}
	return n, nil
}

// ListMessages pages a conversation's messages in send order
func (s *MessageService) ListMessages(ctx context.Context, actor entity.Actor, conversationId string, p query.ListParams) (*Page[entity.Message], error) {
	conv, err := s.participantConversation(ctx, actor, conversationId)
	if err != nil {
		return nil, err
	}

	p = p.Normalize(s.opts)
	items, total, err := s.msgs.ListByConversation(ctx, conv.Id, p)
	if err != nil {
		log.CtxError(ctx, "list messages failed: conversation_id=%s, error=%v", conversationId, err)
		return nil, errcode.ErrInternalServer
	}
	return &Page[entity.Message]{Items: items, Pagination: query.NewPagination(total, p)}, nil
}

// Latest returns the newest messages addressed to the caller
func (s *MessageService) Latest(ctx context.Context, actor entity.Actor) ([]*entity.Message, error) {
	msgs, err := s.msgs.LatestForReceiver(ctx, actor.UserId, constant.LatestMessagesLimit)
	if err != nil {
		log.CtxError(ctx, "latest messages failed: user_id=%s, error=%v", actor.UserId, err)
		return nil, errcode.ErrInternalServer
	}
	return msgs, nil
}

func (s *MessageService) participantConversation(ctx context.Context, actor entity.Actor, conversationId string) (*entity.Conversation, error) {
	conv, err := s.convs.GetById(ctx, conversationId)
	if err != nil {
		log.CtxError(ctx, "get conversation failed: conversation_id=%s, error=%v", conversationId, err)
		return nil, errcode.ErrInternalServer
	}
	if conv == nil || !conv.HasParticipant(actor.UserId) {
		return nil, errcode.ErrConvNotFound
	}
	return conv, nil
}

// appendMessage is the single write path shared by Send and Start
func (s *MessageService) appendMessage(ctx context.Context, actor entity.Actor, conv *entity.Conversation, content string, attachments []string) (*entity.Message, error) {
	if attachments == nil {
		attachments = []string{}
	}
	msg := &entity.Message{
		ConversationId: conv.Id,
		SenderId:       actor.UserId,
		ReceiverId:     conv.OtherParticipant(actor.UserId),
		Content:        strings.TrimSpace(content),
		Attachments:    attachments,
		CreatedAt:      s.now(),
	}

	if err := s.msgs.Create(ctx, msg); err != nil {
		log.CtxError(ctx, "create message failed: conversation_id=%s, error=%v", conv.Id.Hex(), err)
		return nil, errcode.ErrInternalServer
	}
	if err := s.convs.RecordMessage(ctx, msg); err != nil {
		log.CtxError(ctx, "update conversation after message failed: conversation_id=%s, error=%v", conv.Id.Hex(), err)
		return nil, errcode.ErrInternalServer
	}

	at := msg.CreatedAt
	conv.LastMessage = msg.Preview()
	conv.LastMessageAt = &at
	if conv.UnreadCount == nil {
		conv.UnreadCount = map[string]int64{}
	}
	conv.UnreadCount[msg.ReceiverId]++

	if actor.IsAdmin() {
		s.emailReceiver(ctx, msg)
	}
	return msg, nil
}

// emailReceiver tells the receiver an admin wrote to them
func (s *MessageService) emailReceiver(ctx context.Context, msg *entity.Message) {
	users, err := s.users.GetByIds(ctx, []string{msg.SenderId, msg.ReceiverId})
	if err != nil {
		log.CtxWarn(ctx, "load users for message email failed: message_id=%s, error=%v", msg.Id.Hex(), err)
		return
	}

	var sender, receiver *entity.User
	for _, u := range users {
		switch u.Id {
		case msg.SenderId:
			sender = u
		case msg.ReceiverId:
			receiver = u
		}
	}
	if sender == nil || receiver == nil {
		return
	}

	link := fmt.Sprintf("%s/%s/messages?conversationId=%s", s.frontendURL, receiver.Role, msg.ConversationId.Hex())
	s.notifier.Email(ctx, notify.FirstMessageEmail(receiver.Email, receiver.Name, sender.Name, link))
}
