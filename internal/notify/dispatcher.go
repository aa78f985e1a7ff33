package notify

import (
	"context"
	"sync"
	"time"

	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/entity"
)

// Kind is the type of a side-effect task
type Kind string

const (
	KindNotification Kind = "notification"
	KindPush         Kind = "push"
	KindEmail        Kind = "email"
)

// Notification is an in-app notification request
type Notification struct {
	UserId   string
	AgencyId string
	Message  string
	Type     string
	Link     string
}

// Push is a web-push request for every device of a user
type Push struct {
	UserId  string
	Title   string
	Message string
	UrlPath string
}

// Email is a transactional email
type Email struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// NotificationStore persists in-app notifications
type NotificationStore interface {
	Create(ctx context.Context, n *entity.Notification) error
}

// PushSender delivers a push to a user's devices
type PushSender interface {
	Send(ctx context.Context, p Push) error
}

// Mailer sends transactional email
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

type task struct {
	kind Kind
	ctx  context.Context
	run  func(ctx context.Context) error
}

// Dispatcher runs side effects on a worker pool; callers never wait and never see failures
type Dispatcher struct {
	store  NotificationStore
	push   PushSender
	mailer Mailer

	tasks     chan task
	workerNum int
	timeout   time.Duration
	ttl       time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher; call Run to start the workers
func NewDispatcher(cfg config.NotifyConfig, store NotificationStore, push PushSender, mailer Mailer) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	workerNum := cfg.WorkerNum
	if workerNum <= 0 {
		workerNum = 1
	}
	ttl := cfg.NotificationTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Dispatcher{
		store:     store,
		push:      push,
		mailer:    mailer,
		tasks:     make(chan task, queueSize),
		workerNum: workerNum,
		timeout:   cfg.TaskTimeout,
		ttl:       ttl,
	}
}

// Run starts the workers
func (d *Dispatcher) Run() {
	for i := 0; i < d.workerNum; i++ {
		d.wg.Add(1)
		go d.workLoop(i)
	}
	log.Info("notify dispatcher started: workers=%d, queue=%d", d.workerNum, cap(d.tasks))
}

// Stop rejects new tasks and waits for queued ones to finish
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	d.wg.Wait()
	log.Info("notify dispatcher stopped")
}

// Notify records an in-app notification in the background
func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	if n.UserId == "" {
		return
	}
	d.enqueue(ctx, KindNotification, func(ctx context.Context) error {
		now := time.Now()
		return d.store.Create(ctx, &entity.Notification{
			UserId:    n.UserId,
			AgencyId:  n.AgencyId,
			Message:   n.Message,
			Type:      n.Type,
			Link:      n.Link,
			CreatedAt: now,
			ExpiresAt: now.Add(d.ttl),
		})
	})
}

// Push delivers a web-push in the background
func (d *Dispatcher) Push(ctx context.Context, p Push) {
	if p.UserId == "" || d.push == nil {
		return
	}
	d.enqueue(ctx, KindPush, func(ctx context.Context) error {
		return d.push.Send(ctx, p)
	})
}

// Email sends an email in the background
func (d *Dispatcher) Email(ctx context.Context, e Email) {
	if e.To == "" || d.mailer == nil {
		return
	}
	d.enqueue(ctx, KindEmail, func(ctx context.Context) error {
		return d.mailer.Send(ctx, e)
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, kind Kind, run func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		droppedTotal.WithLabelValues(string(kind)).Inc()
		log.CtxWarn(ctx, "notify dispatcher closed, task dropped: kind=%s", kind)
		return
	}

	t := task{kind: kind, ctx: context.WithoutCancel(ctx), run: run}
	select {
	case d.tasks <- t:
		queueDepth.Inc()
	default:
		droppedTotal.WithLabelValues(string(kind)).Inc()
		log.CtxWarn(ctx, "notify queue full, task dropped: kind=%s", kind)
	}
}

func (d *Dispatcher) workLoop(id int) {
	defer d.wg.Done()
	for t := range d.tasks {
		queueDepth.Dec()
		d.process(id, t)
	}
}

func (d *Dispatcher) process(id int, t task) {
	ctx := t.ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			tasksTotal.WithLabelValues(string(t.kind), "panic").Inc()
			log.CtxError(ctx, "notify task panicked: worker=%d, kind=%s, panic=%v", id, t.kind, r)
		}
	}()

	if err := t.run(ctx); err != nil {
		tasksTotal.WithLabelValues(string(t.kind), "error").Inc()
		log.CtxError(ctx, "notify task failed: worker=%d, kind=%s, error=%v", id, t.kind, err)
		return
	}
	tasksTotal.WithLabelValues(string(t.kind), "ok").Inc()
}
