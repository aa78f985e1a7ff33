package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbeoliero/kit/log"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/internal/repository"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

// AgencyService manages agencies
type AgencyService struct {
	agencies DocStore[entity.Agency]
	users    UserStore
	notifier Notifier
	opts     query.Options
}

// NewAgencyService creates a new AgencyService
func NewAgencyService(agencies DocStore[entity.Agency], users UserStore, notifier Notifier, opts query.Options) *AgencyService {
	return &AgencyService{agencies: agencies, users: users, notifier: notifier, opts: opts}
}

// AgencyRequest is the body of agency create and update
type AgencyRequest struct {
	Name    string `json:"name" validate:"required"`
	Owner   string `json:"owner"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	LogoUrl string `json:"logoUrl"`
	Status  string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// AgencyStats are the extra counters of the agency list
type AgencyStats struct {
	TotalAgencies int64 `json:"totalAgencies"`
}

// Create registers an agency; admin only
func (s *AgencyService) Create(ctx context.Context, actor entity.Actor, req *AgencyRequest) (*entity.Agency, error) {
	if !actor.IsAdmin() {
		return nil, errcode.ErrNoPermission
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	agency := &entity.Agency{
		Name:      req.Name,
		Slug:      slugify(req.Name),
		Owner:     req.Owner,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		LogoUrl:   req.LogoUrl,
		Status:    pick(req.Status, constant.AgencyStatusApproved),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errcode.ErrConflict.WithMsg("An agency with this name or owner already exists")
		}
		log.CtxError(ctx, "create agency failed: name=%s, error=%v", req.Name, err)
		return nil, errcode.ErrInternalServer
	}

	if agency.Owner != "" {
		if err := s.users.Update(ctx, agency.Owner, map[string]interface{}{"agency_id": agency.Id.Hex()}); err != nil {
			log.CtxWarn(ctx, "link agency owner failed: agency_id=%s, owner=%s, error=%v", agency.Id.Hex(), agency.Owner, err)
		}
		s.notifyOwner(ctx, agency, fmt.Sprintf("Agency (%s) has been created.", agency.Name), "Agency Created")
	}

	log.CtxInfo(ctx, "agency created: agency_id=%s, name=%s", agency.Id.Hex(), agency.Name)
	return agency, nil
}

// List pages agencies; non-admins only see their own
func (s *AgencyService) List(ctx context.Context, actor entity.Actor, p query.ListParams) (*Page[entity.Agency], error) {
	p = p.Normalize(s.opts)
	f := query.NewFilter(p, s.opts, "name")
	if !actor.IsAdmin() {
		oid, ok := entity.ParseObjectId(actor.AgencyId)
		if !ok {
			return &Page[entity.Agency]{Pagination: query.NewPagination(0, p), Stats: AgencyStats{}}, nil
		}
		f.Eq("_id", oid)
	}

	var (
		items []*entity.Agency
		total int64
		stats AgencyStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, total, err = s.agencies.Page(gctx, f.BSON(), p)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalAgencies, err = s.agencies.Count(gctx, bson.M{})
		return err
	})
	if err := g.Wait(); err != nil {
		log.CtxError(ctx, "list agencies failed: error=%v", err)
		return nil, errcode.ErrInternalServer
	}

	return &Page[entity.Agency]{Items: items, Pagination: query.NewPagination(total, p), Stats: stats}, nil
}

// Get returns one agency
func (s *AgencyService) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Agency, error) {
	agency, err := s.agencies.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get agency failed: agency_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if agency == nil {
		return nil, errcode.ErrAgencyNotFound
	}
	if !actor.CanAccessAgency(id) && agency.Owner != actor.UserId {
		return nil, errcode.ErrNoPermission
	}
	return agency, nil
}

// Update edits an agency; admins and the agency owner may do so
func (s *AgencyService) Update(ctx context.Context, actor entity.Actor, id string, req *AgencyRequest) (*entity.Agency, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	agency, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && agency.Owner != actor.UserId {
		return nil, errcode.ErrNoPermission
	}

	agency.Name = req.Name
	agency.Slug = slugify(req.Name)
	agency.Email = pick(req.Email, agency.Email)
	agency.Phone = pick(req.Phone, agency.Phone)
	agency.Address = pick(req.Address, agency.Address)
	agency.LogoUrl = pick(req.LogoUrl, agency.LogoUrl)
	if actor.IsAdmin() {
		agency.Owner = pick(req.Owner, agency.Owner)
		agency.Status = pick(req.Status, agency.Status)
	}
	agency.UpdatedAt = time.Now()

	if err := s.agencies.Replace(ctx, agency); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errcode.ErrConflict.WithMsg("An agency with this name or owner already exists")
		}
		log.CtxError(ctx, "update agency failed: agency_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}

	s.notifyOwner(ctx, agency, fmt.Sprintf("Agency (%s) has been updated successfully.", agency.Name), "Agency Updated")
	return agency, nil
}

// Delete removes an agency; admin only
func (s *AgencyService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.IsAdmin() {
		return errcode.ErrNoPermission
	}
	ok, err := s.agencies.DeleteById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "delete agency failed: agency_id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrAgencyNotFound
	}
	log.CtxInfo(ctx, "agency deleted: agency_id=%s", id)
	return nil
}

func (s *AgencyService) notifyOwner(ctx context.Context, agency *entity.Agency, msg, title string) {
	if agency.Owner == "" {
		return
	}
	s.notifier.Notify(ctx, notify.Notification{
		UserId:   agency.Owner,
		AgencyId: agency.Id.Hex(),
		Message:  msg,
		Type:     constant.NotifyTypeAgency,
	})
	s.notifier.Push(ctx, notify.Push{
		UserId:  agency.Owner,
		Title:   title,
		Message: msg,
		UrlPath: "/agent/agency",
	})
}
