package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/entity"
)

func TestDispatcher_RunsAllKinds(t *testing.T) {
	store, mailer, push := &mockStore{}, &mockMailer{}, &mockPush{}
	store.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserId == "u1" && n.Type == "message" && n.ExpiresAt.After(n.CreatedAt)
	})).Return(nil).Once()
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e Email) bool { return e.To == "bob@example.com" })).Return(nil).Once()
	push.On("Send", mock.Anything, Push{UserId: "u1", Title: "New Message"}).Return(nil).Once()

	d := NewDispatcher(config.NotifyConfig{QueueSize: 8, WorkerNum: 2, TaskTimeout: time.Second}, store, push, mailer)
	d.Run()

	d.Notify(context.Background(), Notification{UserId: "u1", Message: "hi", Type: "message"})
	d.Email(context.Background(), Email{To: "bob@example.com"})
	d.Push(context.Background(), Push{UserId: "u1", Title: "New Message"})
	d.Stop()

	store.AssertExpectations(t)
	mailer.AssertExpectations(t)
	push.AssertExpectations(t)
}

func TestDispatcher_FailuresAreAbsorbed(t *testing.T) {
	store := &mockStore{}
	store.On("Create", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	before := testutil.ToFloat64(tasksTotal.WithLabelValues(string(KindNotification), "error"))

	d := NewDispatcher(config.NotifyConfig{QueueSize: 4, WorkerNum: 1}, store, nil, nil)
	d.Run()
	assert.NotPanics(t, func() {
		d.Notify(context.Background(), Notification{UserId: "u1"})
	})
	d.Stop()

	after := testutil.ToFloat64(tasksTotal.WithLabelValues(string(KindNotification), "error"))
	assert.Equal(t, before+1, after)
}

func TestDispatcher_CanceledRequestContext(t *testing.T) {
	store := &mockStore{}
	store.On("Create", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).Return(nil).Once()

	d := NewDispatcher(config.NotifyConfig{QueueSize: 4, WorkerNum: 1}, store, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	d.Notify(ctx, Notification{UserId: "u1"})
	cancel()

	d.Run()
	d.Stop()
	store.AssertExpectations(t)
}

func TestDispatcher_NeverBlocks(t *testing.T) {
	store := &mockStore{}
	d := NewDispatcher(config.NotifyConfig{QueueSize: 1, WorkerNum: 1}, store, nil, nil)

	before := testutil.ToFloat64(droppedTotal.WithLabelValues(string(KindNotification)))

	done := make(chan struct{})
	go func() {
		// workers are not running: the second task cannot be queued
		d.Notify(context.Background(), Notification{UserId: "u1"})
		d.Notify(context.Background(), Notification{UserId: "u2"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked")
	}
	assert.Equal(t, before+1, testutil.ToFloat64(droppedTotal.WithLabelValues(string(KindNotification))))

	store.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.Run()
	d.Stop()
	store.AssertNumberOfCalls(t, "Create", 1)
}

func TestDispatcher_AfterStop(t *testing.T) {
	d := NewDispatcher(config.NotifyConfig{}, &mockStore{}, nil, nil)
	d.Run()
	d.Stop()
	d.Stop()

	assert.NotPanics(t, func() {
		d.Notify(context.Background(), Notification{UserId: "u1"})
	})
}

func TestDispatcher_SkipsEmptyTargets(t *testing.T) {
	store, mailer := &mockStore{}, &mockMailer{}
	d := NewDispatcher(config.NotifyConfig{}, store, nil, mailer)
	d.Run()
	d.Notify(context.Background(), Notification{})
	d.Email(context.Background(), Email{})
	d.Push(context.Background(), Push{UserId: "u1"})
	d.Stop()

	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
