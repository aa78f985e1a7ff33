package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/internal/repository"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
	"github.com/mbeoliero/realty/pkg/idgen"
)

// PropertyService manages property listings
type PropertyService struct {
	properties DocStore[entity.Property]
	agencies   DocStore[entity.Agency]
	notifier   Notifier
	opts       query.Options
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(properties DocStore[entity.Property], agencies DocStore[entity.Agency], notifier Notifier, opts query.Options) *PropertyService {
	return &PropertyService{properties: properties, agencies: agencies, notifier: notifier, opts: opts}
}

// PropertyRequest is the body of property create and update
type PropertyRequest struct {
	Title        string                 `json:"title" validate:"required"`
	Description  string                 `json:"description"`
	Location     string                 `json:"location" validate:"required"`
	Price        float64                `json:"price" validate:"min=0"`
	Images       []entity.PropertyImage `json:"images"`
	Type         string                 `json:"type" validate:"required"`
	Category     string                 `json:"category" validate:"required"`
	Size         float64                `json:"size" validate:"min=0"`
	Bedrooms     int                    `json:"bedrooms" validate:"min=0"`
	Bathrooms    int                    `json:"bathrooms" validate:"min=0"`
	Amenities    []string               `json:"amenities"`
	OwnerName    string                 `json:"owner_name"`
	OwnerContact string                 `json:"owner_contact"`
	AgencyId     string                 `json:"agencyId"`
	Status       string                 `json:"status" validate:"omitempty,oneof=Available Pending Sold Rented"`
}

// Create adds a listing with a generated property code and tells the agency owner
func (s *PropertyService) Create(ctx context.Context, actor entity.Actor, req *PropertyRequest) (*entity.Property, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	agencyId := actor.ScopeAgency(req.AgencyId)
	if agencyId == "" {
		return nil, errcode.ErrAgencyRequired
	}

	code, err := idgen.NextPropertyCode()
	if err != nil {
		log.CtxError(ctx, "generate property code failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	now := time.Now()
	property := &entity.Property{
		PropertyCode: code,
		Owner:        actor.UserId,
		AgencyId:     agencyId,
		Status:       constant.PropertyStatusAvailable,
		CreatedAt:    now,
	}
	applyPropertyRequest(property, req)
	property.UpdatedAt = now

	if err := s.properties.Create(ctx, property); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errcode.ErrConflict.WithMsg("property code already in use")
		}
		log.CtxError(ctx, "create property failed: agency_id=%s, error=%v", agencyId, err)
		return nil, errcode.ErrInternalServer
	}

	agency, err := s.agencies.GetById(ctx, agencyId)
	if err != nil {
		log.CtxWarn(ctx, "load agency for property notification failed: agency_id=%s, error=%v", agencyId, err)
	}
	if agency != nil && agency.Owner != "" && agency.Owner != actor.UserId {
		msg := fmt.Sprintf("New property (%s) has been added.", property.Title)
		link := "/agent/properties/" + property.Id.Hex()
		s.notifier.Notify(ctx, notify.Notification{
			UserId:   agency.Owner,
			AgencyId: agencyId,
			Message:  msg,
			Type:     constant.NotifyTypePropertyAdded,
			Link:     link,
		})
		s.notifier.Push(ctx, notify.Push{UserId: agency.Owner, Title: "Property Added", Message: msg, UrlPath: link})
	}

	log.CtxInfo(ctx, "property created: property_id=%s, code=%s", property.Id.Hex(), property.PropertyCode)
	return property, nil
}

// List pages listings, searching title, type, category and owner name or the agency name
func (s *PropertyService) List(ctx context.Context, actor entity.Actor, p query.ListParams) (*Page[entity.Property], error) {
	p = p.Normalize(s.opts)
	f := query.NewFilter(p, s.opts, "title", "type", "category", "owner_name").
		Eq("agencyId", actor.ScopeAgency(p.AgencyId))

	if f.HasSearch() {
		ids, err := agencyIdsByName(ctx, s.agencies, f.Search)
		if err != nil {
			log.CtxError(ctx, "search agencies failed: error=%v", err)
			return nil, errcode.ErrInternalServer
		}
		f.AddRelated("agencyId", ids)
	}

	items, total, err := s.properties.Page(ctx, f.BSON(), p)
	if err != nil {
		log.CtxError(ctx, "list properties failed: error=%v", err)
		return nil, errcode.ErrInternalServer
	}
	return &Page[entity.Property]{Items: items, Pagination: query.NewPagination(total, p)}, nil
}

// Get returns one listing
func (s *PropertyService) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Property, error) {
	property, err := s.properties.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get property failed: property_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if property == nil {
		return nil, errcode.ErrPropertyNotFound
	}
	if !actor.CanAccessAgency(property.AgencyId) {
		return nil, errcode.ErrNoPermission
	}
	return property, nil
}

// Update edits a listing and tells its owner
func (s *PropertyService) Update(ctx context.Context, actor entity.Actor, id string, req *PropertyRequest) (*entity.Property, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	property, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	applyPropertyRequest(property, req)
	property.UpdatedAt = time.Now()
	if err := s.properties.Replace(ctx, property); err != nil {
		log.CtxError(ctx, "update property failed: property_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}

	msg := fmt.Sprintf("Property (%s) has been updated successfully.", property.Title)
	link := "/agent/properties/" + id
	s.notifier.Notify(ctx, notify.Notification{
		UserId:   property.Owner,
		AgencyId: property.AgencyId,
		Message:  msg,
		Type:     constant.NotifyTypePropertyUpdated,
		Link:     link,
	})
	s.notifier.Push(ctx, notify.Push{UserId: property.Owner, Title: "Property Updated", Message: msg, UrlPath: link})
	return property, nil
}

// Delete removes a listing
func (s *PropertyService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	ok, err := s.properties.DeleteById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "delete property failed: property_id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrPropertyNotFound
	}
	log.CtxInfo(ctx, "property deleted: property_id=%s", id)
	return nil
}

func applyPropertyRequest(p *entity.Property, req *PropertyRequest) {
	p.Title = req.Title
	p.Description = req.Description
	p.Location = req.Location
	p.Price = req.Price
	p.Type = req.Type
	p.Category = req.Category
	p.Size = req.Size
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.OwnerName = req.OwnerName
	p.OwnerContact = req.OwnerContact
	p.Status = pick(req.Status, p.Status)
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}
	if p.Images == nil {
		p.Images = []entity.PropertyImage{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
}
