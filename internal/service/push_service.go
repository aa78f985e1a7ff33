package service

import (
	"context"

	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/pkg/errcode"
	"github.com/mbeoliero/realty/pkg/idgen"
)

// PushService manages the caller's web-push subscriptions
type PushService struct {
	subs PushSubscriptionStore
}

// NewPushService creates a new PushService
func NewPushService(subs PushSubscriptionStore) *PushService {
	return &PushService{subs: subs}
}

// PushKeys are the browser-issued encryption keys of a subscription
type PushKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

// SubscribeRequest is the body of a push subscription
type SubscribeRequest struct {
	DeviceId string   `json:"deviceId"`
	Platform string   `json:"platform"`
	Browser  string   `json:"browser"`
	Endpoint string   `json:"endpoint" validate:"required,url"`
	Keys     PushKeys `json:"keys"`
}

// Subscribe stores the device's subscription, replacing an earlier one of the same device
func (s *PushService) Subscribe(ctx context.Context, actor entity.Actor, req *SubscribeRequest) (*entity.PushSubscription, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	sub := &entity.PushSubscription{
		UserId:   actor.UserId,
		DeviceId: req.DeviceId,
		Role:     actor.Role,
		Platform: req.Platform,
		Browser:  req.Browser,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if sub.DeviceId == "" {
		sub.DeviceId = idgen.NewDeviceId()
	}

	if err := s.subs.Upsert(ctx, sub); err != nil {
		log.CtxError(ctx, "save push subscription failed: user_id=%s, device_id=%s, error=%v", actor.UserId, sub.DeviceId, err)
		return nil, errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "push subscription saved: user_id=%s, device_id=%s", actor.UserId, sub.DeviceId)
	return sub, nil
}

// Unsubscribe removes one device's subscription
func (s *PushService) Unsubscribe(ctx context.Context, actor entity.Actor, deviceId string) error {
	ok, err := s.subs.DeleteByDevice(ctx, actor.UserId, deviceId)
	if err != nil {
		log.CtxError(ctx, "delete push subscription failed: user_id=%s, device_id=%s, error=%v", actor.UserId, deviceId, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrSubscriptionGone
	}
	return nil
}

// List returns the caller's subscriptions
func (s *PushService) List(ctx context.Context, actor entity.Actor) ([]*entity.PushSubscription, error) {
	subs, err := s.subs.ListByUser(ctx, actor.UserId)
	if err != nil {
		log.CtxError(ctx, "list push subscriptions failed: user_id=%s, error=%v", actor.UserId, err)
		return nil, errcode.ErrInternalServer
	}
	return subs, nil
}
