package notify

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mbeoliero/realty/internal/entity"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Create(ctx context.Context, n *entity.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, e Email) error {
	return m.Called(ctx, e).Error(0)
}

type mockPush struct{ mock.Mock }

func (m *mockPush) Send(ctx context.Context, p Push) error {
	return m.Called(ctx, p).Error(0)
}

type mockSubs struct{ mock.Mock }

func (m *mockSubs) ListByUser(ctx context.Context, userId string) ([]*entity.PushSubscription, error) {
	args := m.Called(ctx, userId)
	subs, _ := args.Get(0).([]*entity.PushSubscription)
	return subs, args.Error(1)
}

func (m *mockSubs) DeleteById(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}
