package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/internal/repository"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

// CustomerService manages agency leads
type CustomerService struct {
	customers CustomerStore
	agencies  DocStore[entity.Agency]
	notifier  Notifier
	opts      query.Options
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers CustomerStore, agencies DocStore[entity.Agency], notifier Notifier, opts query.Options) *CustomerService {
	return &CustomerService{customers: customers, agencies: agencies, notifier: notifier, opts: opts}
}

// CustomerRequest is the body of customer create and update
type CustomerRequest struct {
	FullName       string  `json:"fullName" validate:"required"`
	Email          string  `json:"email" validate:"omitempty,email"`
	PhoneNumber    string  `json:"phoneNumber" validate:"required"`
	WhatsAppNumber string  `json:"whatsAppNumber"`
	MinBudget      float64 `json:"minBudget" validate:"min=0"`
	MaxBudget      float64 `json:"maxBudget" validate:"min=0"`
	LeadSource     string  `json:"leadSource"`
	InitialNotes   string  `json:"initialNotes"`
	Status         string  `json:"status" validate:"omitempty,oneof=new interested negotiating converted not_interested follow_up"`
	AgencyId       string  `json:"agencyId"`
	UserId         string  `json:"userId"`
}

// Create adds a lead; a phone number may appear only once per agency
func (s *CustomerService) Create(ctx context.Context, actor entity.Actor, req *CustomerRequest) (*entity.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	agencyId := actor.ScopeAgency(req.AgencyId)
	if agencyId == "" {
		return nil, errcode.ErrAgencyRequired
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	existing, err := s.customers.FindByPhone(ctx, agencyId, phone)
	if err != nil {
		log.CtxError(ctx, "check customer phone failed: agency_id=%s, error=%v", agencyId, err)
		return nil, errcode.ErrInternalServer
	}
	if existing != nil {
		return nil, errcode.ErrCustomerExists
	}

	now := time.Now()
	customer := &entity.Customer{
		FullName:       strings.TrimSpace(req.FullName),
		Email:          req.Email,
		PhoneNumber:    phone,
		WhatsAppNumber: req.WhatsAppNumber,
		MinBudget:      req.MinBudget,
		MaxBudget:      req.MaxBudget,
		LeadSource:     req.LeadSource,
		InitialNotes:   req.InitialNotes,
		Status:         pick(req.Status, constant.CustomerStatusNew),
		AgencyId:       agencyId,
		UserId:         req.UserId,
		CreatedBy:      actor.UserId,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errcode.ErrCustomerExists
		}
		log.CtxError(ctx, "create customer failed: agency_id=%s, error=%v", agencyId, err)
		return nil, errcode.ErrInternalServer
	}

	msg := fmt.Sprintf("New lead (%s) has been added.", customer.FullName)
	for _, userId := range s.leadRecipients(ctx, actor, agencyId) {
		s.notifier.Notify(ctx, notify.Notification{
			UserId:   userId,
			AgencyId: agencyId,
			Message:  msg,
			Type:     constant.NotifyTypeNewLead,
			Link:     "/agent/customers/" + customer.Id.Hex(),
		})
		s.notifier.Push(ctx, notify.Push{
			UserId:  userId,
			Title:   "New Lead",
			Message: msg,
			UrlPath: "/agent/customers/" + customer.Id.Hex(),
		})
	}

	log.CtxInfo(ctx, "customer created: customer_id=%s, agency_id=%s", customer.Id.Hex(), agencyId)
	return customer, nil
}

// leadRecipients are the creator and the agency owner
func (s *CustomerService) leadRecipients(ctx context.Context, actor entity.Actor, agencyId string) []string {
	recipients := []string{actor.UserId}
	agency, err := s.agencies.GetById(ctx, agencyId)
	if err != nil {
		log.CtxWarn(ctx, "load agency for lead notification failed: agency_id=%s, error=%v", agencyId, err)
		return recipients
	}
	if agency != nil && agency.Owner != "" && agency.Owner != actor.UserId {
		recipients = append(recipients, agency.Owner)
	}
	return recipients
}

// List pages leads, searching name, phone and email or the agency name
func (s *CustomerService) List(ctx context.Context, actor entity.Actor, p query.ListParams) (*Page[entity.Customer], error) {
	p = p.Normalize(s.opts)
	f := query.NewFilter(p, s.opts, "fullName", "phoneNumber", "email").
		Eq("agencyId", actor.ScopeAgency(p.AgencyId))

	if f.HasSearch() {
		ids, err := agencyIdsByName(ctx, s.agencies, f.Search)
		if err != nil {
			log.CtxError(ctx, "search agencies failed: error=%v", err)
			return nil, errcode.ErrInternalServer
		}
		f.AddRelated("agencyId", ids)
	}

	items, total, err := s.customers.Page(ctx, f.BSON(), p)
	if err != nil {
		log.CtxError(ctx, "list customers failed: error=%v", err)
		return nil, errcode.ErrInternalServer
	}
	return &Page[entity.Customer]{Items: items, Pagination: query.NewPagination(total, p)}, nil
}

// Get returns one lead
func (s *CustomerService) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Customer, error) {
	customer, err := s.customers.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get customer failed: customer_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if customer == nil {
		return nil, errcode.ErrCustomerNotFound
	}
	if !actor.CanAccessAgency(customer.AgencyId) {
		return nil, errcode.ErrNoPermission
	}
	return customer, nil
}

// Update edits a lead and tells its creator
func (s *CustomerService) Update(ctx context.Context, actor entity.Actor, id string, req *CustomerRequest) (*entity.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	customer, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	if phone != customer.PhoneNumber {
		dup, err := s.customers.FindByPhone(ctx, customer.AgencyId, phone)
		if err != nil {
			log.CtxError(ctx, "check customer phone failed: customer_id=%s, error=%v", id, err)
			return nil, errcode.ErrInternalServer
		}
		if dup != nil {
			return nil, errcode.ErrCustomerExists
		}
	}

	customer.FullName = strings.TrimSpace(req.FullName)
	customer.PhoneNumber = phone
	customer.Email = req.Email
	customer.WhatsAppNumber = req.WhatsAppNumber
	customer.MinBudget = req.MinBudget
	customer.MaxBudget = req.MaxBudget
	customer.LeadSource = pick(req.LeadSource, customer.LeadSource)
	customer.InitialNotes = pick(req.InitialNotes, customer.InitialNotes)
	customer.Status = pick(req.Status, customer.Status)
	customer.UserId = pick(req.UserId, customer.UserId)
	customer.UpdatedAt = time.Now()

	if err := s.customers.Replace(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errcode.ErrCustomerExists
		}
		log.CtxError(ctx, "update customer failed: customer_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}

	msg := fmt.Sprintf("Customer (%s) has been updated successfully.", customer.FullName)
	s.notifier.Notify(ctx, notify.Notification{
		UserId:   customer.CreatedBy,
		AgencyId: customer.AgencyId,
		Message:  msg,
		Type:     constant.NotifyTypeLeadUpdated,
		Link:     "/agent/customers/" + id,
	})
	s.notifier.Push(ctx, notify.Push{
		UserId:  customer.CreatedBy,
		Title:   "Customer Updated",
		Message: msg,
		UrlPath: "/agent/customers/" + id,
	})
	return customer, nil
}

// Delete removes a lead
func (s *CustomerService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	ok, err := s.customers.DeleteById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "delete customer failed: customer_id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrCustomerNotFound
	}
	log.CtxInfo(ctx, "customer deleted: customer_id=%s", id)
	return nil
}
