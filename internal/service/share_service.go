package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mbeoliero/kit/log"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

// ShareService records properties recommended to users
type ShareService struct {
	shares     DocStore[entity.PropertyShare]
	properties DocStore[entity.Property]
	agencies   DocStore[entity.Agency]
	users      UserStore
	notifier   Notifier
	opts       query.Options
}

// NewShareService creates a new ShareService
func NewShareService(shares DocStore[entity.PropertyShare], properties DocStore[entity.Property], agencies DocStore[entity.Agency], users UserStore, notifier Notifier, opts query.Options) *ShareService {
	return &ShareService{
		shares:     shares,
		properties: properties,
		agencies:   agencies,
		users:      users,
		notifier:   notifier,
		opts:       opts,
	}
}

// ShareRequest is the body of a property share
type ShareRequest struct {
	PropertyId       string `json:"propertyId" validate:"required"`
	SharedWithUserId string `json:"sharedWithUserId" validate:"required"`
	Message          string `json:"message"`
}

// ShareStats are the extra counters of the share list
type ShareStats struct {
	TotalWithoutFilter int64 `json:"totalWithoutFilter"`
}

// Create shares a property with a user and notifies them
func (s *ShareService) Create(ctx context.Context, actor entity.Actor, req *ShareRequest) (*entity.PropertyShare, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	property, err := s.properties.GetById(ctx, req.PropertyId)
	if err != nil {
		log.CtxError(ctx, "get property failed: property_id=%s, error=%v", req.PropertyId, err)
		return nil, errcode.ErrInternalServer
	}
	if property == nil {
		return nil, errcode.ErrPropertyNotFound
	}
	if !actor.CanAccessAgency(property.AgencyId) {
		return nil, errcode.ErrNoPermission
	}

	recipient, err := s.users.GetById(ctx, req.SharedWithUserId)
	if err != nil {
		log.CtxError(ctx, "get share recipient failed: user_id=%s, error=%v", req.SharedWithUserId, err)
		return nil, errcode.ErrInternalServer
	}
	if recipient == nil {
		return nil, errcode.ErrUserNotFound
	}

	share := &entity.PropertyShare{
		AgencyId:         property.AgencyId,
		PropertyId:       req.PropertyId,
		SharedWithUserId: recipient.Id,
		SharedByUserId:   actor.UserId,
		Message:          req.Message,
		CreatedAt:        time.Now(),
	}
	if err := s.shares.Create(ctx, share); err != nil {
		log.CtxError(ctx, "create property share failed: property_id=%s, error=%v", req.PropertyId, err)
		return nil, errcode.ErrInternalServer
	}

	msg := fmt.Sprintf("A property (%s) has been shared with you.", property.Title)
	link := fmt.Sprintf("/%s/properties/%s", recipient.Role, property.Id.Hex())
	s.notifier.Notify(ctx, notify.Notification{
		UserId:   recipient.Id,
		AgencyId: property.AgencyId,
		Message:  msg,
		Type:     constant.NotifyTypePropertyShared,
		Link:     link,
	})
	s.notifier.Push(ctx, notify.Push{UserId: recipient.Id, Title: "Property Shared", Message: msg, UrlPath: link})

	log.CtxInfo(ctx, "property shared: share_id=%s, property_id=%s, with=%s", share.Id.Hex(), share.PropertyId, recipient.Id)
	return share, nil
}

// List pages shares; customers only see what was shared with them
func (s *ShareService) List(ctx context.Context, actor entity.Actor, p query.ListParams) (*Page[entity.PropertyShare], error) {
	p = p.Normalize(s.opts)
	f := query.NewFilter(p, s.opts, "message")
	f.Status = ""
	scope := bson.M{}
	if actor.Role == constant.RoleCustomer {
		f.Eq("sharedWithUserId", actor.UserId)
		scope["sharedWithUserId"] = actor.UserId
	} else if agencyId := actor.ScopeAgency(p.AgencyId); agencyId != "" {
		f.Eq("agencyId", agencyId)
		scope["agencyId"] = agencyId
	}

	if f.HasSearch() {
		var propertyIds, agencyIds, userIds []string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			propertyIds, err = s.properties.FindIds(gctx, bson.M{"title": query.SearchRegex(f.Search)})
			return err
		})
		g.Go(func() error {
			var err error
			agencyIds, err = agencyIdsByName(gctx, s.agencies, f.Search)
			return err
		})
		g.Go(func() error {
			var err error
			userIds, err = s.users.FindIds(gctx, &query.Filter{Search: f.Search, SearchFields: []string{"name"}})
			return err
		})
		if err := g.Wait(); err != nil {
			log.CtxError(ctx, "search share references failed: error=%v", err)
			return nil, errcode.ErrInternalServer
		}
		f.AddRelated("propertyId", propertyIds).
			AddRelated("agencyId", agencyIds).
			AddRelated("sharedWithUserId", userIds)
	}

	var (
		items []*entity.PropertyShare
		total int64
		stats ShareStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, total, err = s.shares.Page(gctx, f.BSON(), p)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalWithoutFilter, err = s.shares.Count(gctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		log.CtxError(ctx, "list property shares failed: error=%v", err)
		return nil, errcode.ErrInternalServer
	}

	return &Page[entity.PropertyShare]{Items: items, Pagination: query.NewPagination(total, p), Stats: stats}, nil
}

// Delete removes a share
func (s *ShareService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	share, err := s.shares.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get property share failed: share_id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if share == nil {
		return errcode.ErrShareNotFound
	}
	if !actor.CanAccessAgency(share.AgencyId) && share.SharedByUserId != actor.UserId {
		return errcode.ErrNoPermission
	}

	ok, err := s.shares.DeleteById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "delete property share failed: share_id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrShareNotFound
	}
	return nil
}
