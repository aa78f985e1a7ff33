package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/internal/entity"
)

// SubscriptionStore lists and prunes push subscriptions
type SubscriptionStore interface {
	ListByUser(ctx context.Context, userId string) ([]*entity.PushSubscription, error)
	DeleteById(ctx context.Context, id uint64) error
}

// RelaySender hands pushes to a web-push relay service, one request per device.
// Subscriptions the relay reports as gone (404/410) are deleted.
type RelaySender struct {
	subs     SubscriptionStore
	cli      *client.Client
	relayURL string
	baseURL  string
}

// NewRelaySender creates a RelaySender; with an empty relayURL pushes are only logged
func NewRelaySender(subs SubscriptionStore, cli *client.Client, relayURL, frontendURL string) *RelaySender {
	return &RelaySender{subs: subs, cli: cli, relayURL: relayURL, baseURL: frontendURL}
}

type relayKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type relaySubscription struct {
	Endpoint string    `json:"endpoint"`
	Keys     relayKeys `json:"keys"`
}

type relayPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

type relayRequest struct {
	Subscription relaySubscription `json:"subscription"`
	Payload      relayPayload      `json:"payload"`
}

// Send delivers p to every device of p.UserId
func (s *RelaySender) Send(ctx context.Context, p Push) error {
	subs, err := s.subs.ListByUser(ctx, p.UserId)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		log.CtxDebug(ctx, "no push subscriptions: user_id=%s", p.UserId)
		return nil
	}
	if s.relayURL == "" {
		log.CtxInfo(ctx, "push relay not configured, skipping: user_id=%s, title=%s, devices=%d", p.UserId, p.Title, len(subs))
		return nil
	}

	var errs []error
	for _, sub := range subs {
		status, err := s.post(ctx, relayRequest{
			Subscription: relaySubscription{
				Endpoint: sub.Endpoint,
				Keys:     relayKeys{P256dh: sub.P256dh, Auth: sub.Auth},
			},
			Payload: relayPayload{Title: p.Title, Body: p.Message, URL: s.baseURL + p.UrlPath},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("device %s: %w", sub.DeviceId, err))
			continue
		}

		switch {
		case status == http.StatusGone || status == http.StatusNotFound:
			log.CtxInfo(ctx, "push subscription expired, removing: user_id=%s, device_id=%s", sub.UserId, sub.DeviceId)
			if err := s.subs.DeleteById(ctx, sub.Id); err != nil {
				errs = append(errs, fmt.Errorf("delete subscription %d: %w", sub.Id, err))
			}
		case status >= http.StatusMultipleChoices:
			errs = append(errs, fmt.Errorf("device %s: relay status %d", sub.DeviceId, status))
		}
	}
	return errors.Join(errs...)
}

func (s *RelaySender) post(ctx context.Context, body relayRequest) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(s.relayURL)
	req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
	req.SetBody(b)

	if err := s.cli.Do(ctx, req, resp); err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}
