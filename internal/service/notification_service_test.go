package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/service/servicetest"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewNotifications()
	svc := NewNotificationService(store, testOpts)

	seed := []*entity.Notification{
		{UserId: "agent-1", Type: constant.NotifyTypeNewLead, Message: "lead"},
		{UserId: "agent-1", Type: constant.NotifyTypeMessage, Message: "msg", Read: true},
		{UserId: "agent-1", Type: constant.NotifyTypeMessage, Message: "msg 2"},
		{UserId: "customer-1", Type: constant.NotifyTypeMessage, Message: "not mine"},
	}
	for _, n := range seed {
		require.NoError(t, store.Create(ctx, n))
	}

	page, err := svc.List(ctx, agentActor, "", queryPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, "msg 2", page.Items[0].Message)

	page, err = svc.List(ctx, agentActor, constant.NotifyFilterUnread, queryPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)

	page, err = svc.List(ctx, agentActor, constant.NotifyTypeMessage, queryPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)

	unread, err := svc.UnreadCount(ctx, agentActor)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, svc.MarkRead(ctx, agentActor, seed[0].Id.Hex()))
	assert.ErrorIs(t, svc.MarkRead(ctx, agentActor, seed[3].Id.Hex()), errcode.ErrNotificationGone)

	n, err := svc.MarkAllRead(ctx, agentActor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, svc.Delete(ctx, agentActor, seed[3].Id.Hex()), errcode.ErrNotificationGone)
	require.NoError(t, svc.Delete(ctx, customerActor, seed[3].Id.Hex()))
}

func TestPushService(t *testing.T) {
	ctx := context.Background()
	svc := NewPushService(servicetest.NewPushSubscriptions())

	req := &SubscribeRequest{
		DeviceId: "laptop",
		Endpoint: "https://push.example/abc",
		Keys:     PushKeys{P256dh: "p", Auth: "a"},
	}
	first, err := svc.Subscribe(ctx, agentActor, req)
	require.NoError(t, err)
	req.Endpoint = "https://push.example/def"
	second, err := svc.Subscribe(ctx, agentActor, req)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	generated, err := svc.Subscribe(ctx, agentActor, &SubscribeRequest{Endpoint: "https://push.example/x", Keys: PushKeys{P256dh: "p", Auth: "a"}})
	require.NoError(t, err)
	_, err = uuid.Parse(generated.DeviceId)
	assert.NoError(t, err, "a missing device id is generated")

	subs, err := svc.List(ctx, agentActor)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	_, err = svc.Subscribe(ctx, agentActor, &SubscribeRequest{Endpoint: "not a url"})
	assert.ErrorIs(t, err, errcode.ErrInvalidParam)

	require.NoError(t, svc.Unsubscribe(ctx, agentActor, "laptop"))
	assert.ErrorIs(t, svc.Unsubscribe(ctx, agentActor, "laptop"), errcode.ErrSubscriptionGone)
}
