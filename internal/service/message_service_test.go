package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/internal/service/servicetest"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

type messageFixture struct {
	svc      *MessageService
	convs    *servicetest.Conversations
	msgs     *servicetest.Messages
	notifier *servicetest.Notifier
}

func newMessageFixture() *messageFixture {
	f := &messageFixture{
		convs:    servicetest.NewConversations(),
		msgs:     servicetest.NewMessages(),
		notifier: servicetest.NewNotifier(),
	}
	f.svc = NewMessageService(f.convs, f.msgs, servicetest.NewUsers(seedUsers()...), f.notifier, testOpts, "https://app.example")
	return f
}

func TestMessageService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("second start reuses the conversation and notifies once", func(t *testing.T) {
		f := newMessageFixture()

		first, err := f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "agent-1", Content: "Is the flat still available?"})
		require.NoError(t, err)
		assert.True(t, first.Created)

		second, err := f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "agent-1", Content: "Hello again"})
		require.NoError(t, err)
		assert.False(t, second.Created)
		assert.Equal(t, first.Conversation.Id, second.Conversation.Id)

		assert.Len(t, f.convs.All(), 1)
		assert.Len(t, f.msgs.All(), 2)

		notes := f.notifier.NotificationsOf(constant.NotifyTypeMessage)
		require.Len(t, notes, 1)
		assert.Equal(t, "agent-1", notes[0].UserId)
		assert.Equal(t, "You have a new message: Is the flat still available?", notes[0].Message)
		assert.Equal(t, "/agent/messages?conversationId="+first.Conversation.Id.Hex(), notes[0].Link)
		assert.Len(t, f.notifier.Pushes(), 1)
	})

	t.Run("reversed participants share one conversation", func(t *testing.T) {
		f := newMessageFixture()

		_, err := f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "agent-1", Content: "hi"})
		require.NoError(t, err)
		res, err := f.svc.Start(ctx, agentActor, &StartConversationRequest{ReceiverId: "customer-1", Content: "hello"})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Len(t, f.convs.All(), 1)
	})

	t.Run("rejects invalid requests", func(t *testing.T) {
		f := newMessageFixture()

		_, err := f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "agent-1", Content: "   "})
		assert.ErrorIs(t, err, errcode.ErrEmptyMessage)

		_, err = f.svc.Start(ctx, customerActor, &StartConversationRequest{Content: "hi"})
		assert.ErrorIs(t, err, errcode.ErrInvalidParam)

		_, err = f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "customer-1", Content: "hi"})
		assert.ErrorIs(t, err, errcode.ErrSelfConversation)

		_, err = f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "ghost", Content: "hi"})
		assert.ErrorIs(t, err, errcode.ErrReceiverNotFound)

		assert.Empty(t, f.convs.All())
		assert.Empty(t, f.msgs.All())
	})

	t.Run("admin messages are mailed to the receiver", func(t *testing.T) {
		f := newMessageFixture()

		_, err := f.svc.Start(ctx, adminActor, &StartConversationRequest{ReceiverId: "agent-1", Content: "Welcome aboard"})
		require.NoError(t, err)

		emails := f.notifier.Emails()
		require.Len(t, emails, 1)
		assert.Equal(t, "agent-1@example.com", emails[0].To)
		assert.Contains(t, emails[0].HTML, "https://app.example/agent/messages?conversationId=")
	})

	t.Run("non-admin messages are not mailed", func(t *testing.T) {
		f := newMessageFixture()

		_, err := f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "agent-1", Content: "hi"})
		require.NoError(t, err)
		assert.Empty(t, f.notifier.Emails())
	})
}

func TestMessageService_SendAndMarkRead(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	start, err := f.svc.Start(ctx, customerActor, &StartConversationRequest{ReceiverId: "agent-1", Content: "first"})
	require.NoError(t, err)
	convId := start.Conversation.Id.Hex()

	_, err = f.svc.Send(ctx, customerActor, convId, &SendMessageRequest{Content: "second"})
	require.NoError(t, err)
	msg, err := f.svc.Send(ctx, customerActor, convId, &SendMessageRequest{Attachments: []string{"https://cdn.example/plan.pdf"}})
	require.NoError(t, err)
	assert.Equal(t, "agent-1", msg.ReceiverId)

	conv, err := f.convs.GetById(ctx, convId)
	require.NoError(t, err)
	assert.Equal(t, int64(3), conv.UnreadCount["agent-1"])
	assert.Zero(t, conv.UnreadCount["customer-1"])
	assert.Equal(t, constant.AttachmentLabel, conv.LastMessage)

	t.Run("outsiders cannot send or read", func(t *testing.T) {
		outsider := agentActor
		outsider.UserId = "agent-2"
		_, err := f.svc.Send(ctx, outsider, convId, &SendMessageRequest{Content: "hi"})
		assert.ErrorIs(t, err, errcode.ErrConvNotFound)
		_, err = f.svc.MarkRead(ctx, outsider, convId)
		assert.ErrorIs(t, err, errcode.ErrConvNotFound)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		_, err := f.svc.Send(ctx, customerActor, convId, &SendMessageRequest{Content: " "})
		assert.ErrorIs(t, err, errcode.ErrEmptyMessage)
	})

	t.Run("receiver marks read", func(t *testing.T) {
		n, err := f.svc.MarkRead(ctx, agentActor, convId)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		conv, err := f.convs.GetById(ctx, convId)
		require.NoError(t, err)
		assert.Zero(t, conv.UnreadCount["agent-1"])
		for _, m := range f.msgs.All() {
			assert.True(t, m.IsRead)
			assert.NotNil(t, m.ReadAt)
		}

		n, err = f.svc.MarkRead(ctx, agentActor, convId)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("list in send order", func(t *testing.T) {
		page, err := f.svc.ListMessages(ctx, agentActor, convId, queryPage(1, 2))
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "first", page.Items[0].Content)
		assert.Equal(t, "second", page.Items[1].Content)
		assert.Equal(t, int64(3), page.Pagination.Total)
		assert.Equal(t, int64(2), page.Pagination.TotalPages)
	})

	t.Run("latest for receiver", func(t *testing.T) {
		latest, err := f.svc.Latest(ctx, agentActor)
		require.NoError(t, err)
		require.Len(t, latest, 3)
		assert.Equal(t, msg.Id, latest[0].Id)

		none, err := f.svc.Latest(ctx, customerActor)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
