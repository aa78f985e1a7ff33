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

// MeetingService manages appointments with leads
type MeetingService struct {
	meetings   MeetingStore
	customers  CustomerStore
	properties DocStore[entity.Property]
	agencies   DocStore[entity.Agency]
	notifier   Notifier
	opts       query.Options
	loc        *time.Location
}

// NewMeetingService creates a new MeetingService; meeting wall-clock times are read in loc
func NewMeetingService(meetings MeetingStore, customers CustomerStore, properties DocStore[entity.Property], agencies DocStore[entity.Agency], notifier Notifier, opts query.Options, loc *time.Location) *MeetingService {
	if loc == nil {
		loc = time.Local
	}
	return &MeetingService{
		meetings:   meetings,
		customers:  customers,
		properties: properties,
		agencies:   agencies,
		notifier:   notifier,
		opts:       opts,
		loc:        loc,
	}
}

// MeetingRequest is the body of meeting create and update
type MeetingRequest struct {
	Title      string `json:"title" validate:"required"`
	Agenda     string `json:"agenda"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	CustomerId string `json:"customerId" validate:"required"`
	PropertyId string `json:"propertyId"`
	AgencyId   string `json:"agencyId"`
	Status     string `json:"status" validate:"omitempty,oneof=scheduled rescheduled cancelled past completed"`
}

// MeetingStats are the extra counters of the meeting list
type MeetingStats struct {
	TotalUnfiltered int64 `json:"totalUnfiltered"`
	ScheduledCount  int64 `json:"scheduledCount"`
}

// Create schedules a meeting and tells the creator and the customer
func (s *MeetingService) Create(ctx context.Context, actor entity.Actor, req *MeetingRequest) (*entity.Meeting, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	agencyId := actor.ScopeAgency(req.AgencyId)
	if agencyId == "" {
		return nil, errcode.ErrAgencyRequired
	}

	customer, err := s.checkRefs(ctx, actor, req)
	if err != nil {
		return nil, err
	}
	startsAt, err := entity.ParseMeetingStart(req.Date, req.Time, s.loc)
	if err != nil {
		return nil, errcode.ErrInvalidParam.Wrap(err)
	}

	now := time.Now()
	meeting := &entity.Meeting{
		Title:      req.Title,
		Agenda:     req.Agenda,
		Date:       req.Date,
		Time:       req.Time,
		StartsAt:   startsAt,
		CustomerId: req.CustomerId,
		PropertyId: req.PropertyId,
		AgencyId:   agencyId,
		CreatedBy:  actor.UserId,
		Status:     pick(req.Status, constant.MeetingStatusScheduled),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		log.CtxError(ctx, "create meeting failed: agency_id=%s, error=%v", agencyId, err)
		return nil, errcode.ErrInternalServer
	}

	msg := fmt.Sprintf("Meeting (%s) scheduled on %s at %s.", meeting.Title, meeting.Date, meeting.Time)
	s.notifyAttendees(ctx, meeting, customer, msg, "Meeting Scheduled")

	log.CtxInfo(ctx, "meeting created: meeting_id=%s, starts_at=%s", meeting.Id.Hex(), startsAt.Format(time.RFC3339))
	return meeting, nil
}

// checkRefs verifies the customer and optional property exist in a reachable agency
func (s *MeetingService) checkRefs(ctx context.Context, actor entity.Actor, req *MeetingRequest) (*entity.Customer, error) {
	customer, err := s.customers.GetById(ctx, req.CustomerId)
	if err != nil {
		log.CtxError(ctx, "get customer failed: customer_id=%s, error=%v", req.CustomerId, err)
		return nil, errcode.ErrInternalServer
	}
	if customer == nil {
		return nil, errcode.ErrCustomerNotFound
	}
	if !actor.CanAccessAgency(customer.AgencyId) {
		return nil, errcode.ErrNoPermission
	}

	if req.PropertyId != "" {
		property, err := s.properties.GetById(ctx, req.PropertyId)
		if err != nil {
			log.CtxError(ctx, "get property failed: property_id=%s, error=%v", req.PropertyId, err)
			return nil, errcode.ErrInternalServer
		}
		if property == nil {
			return nil, errcode.ErrPropertyNotFound
		}
	}
	return customer, nil
}

// List pages meetings, searching the title or the customer name, property title and agency name
func (s *MeetingService) List(ctx context.Context, actor entity.Actor, p query.ListParams) (*Page[entity.Meeting], error) {
	p = p.Normalize(s.opts)
	scope := actor.ScopeAgency(p.AgencyId)
	f := query.NewFilter(p, s.opts, "title").Eq("agencyId", scope)

	if f.HasSearch() {
		var customerIds, propertyIds, agencyIds []string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			customerIds, err = s.customers.FindIds(gctx, bson.M{"fullName": query.SearchRegex(f.Search)})
			return err
		})
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
		if err := g.Wait(); err != nil {
			log.CtxError(ctx, "search meeting references failed: error=%v", err)
			return nil, errcode.ErrInternalServer
		}
		f.AddRelated("customerId", customerIds).
			AddRelated("propertyId", propertyIds).
			AddRelated("agencyId", agencyIds)
	}

	unfiltered := bson.M{}
	if scope != "" {
		unfiltered["agencyId"] = scope
	}
	scheduled := bson.M{"status": constant.MeetingStatusScheduled}
	if scope != "" {
		scheduled["agencyId"] = scope
	}

	var (
		items []*entity.Meeting
		total int64
		stats MeetingStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, total, err = s.meetings.Page(gctx, f.BSON(), p)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalUnfiltered, err = s.meetings.Count(gctx, unfiltered)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ScheduledCount, err = s.meetings.Count(gctx, scheduled)
		return err
	})
	if err := g.Wait(); err != nil {
		log.CtxError(ctx, "list meetings failed: error=%v", err)
		return nil, errcode.ErrInternalServer
	}

	return &Page[entity.Meeting]{Items: items, Pagination: query.NewPagination(total, p), Stats: stats}, nil
}

// Get returns one meeting
func (s *MeetingService) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Meeting, error) {
	meeting, err := s.meetings.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get meeting failed: meeting_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if meeting == nil {
		return nil, errcode.ErrMeetingNotFound
	}
	if !actor.CanAccessAgency(meeting.AgencyId) {
		return nil, errcode.ErrNoPermission
	}
	return meeting, nil
}

// Update edits a meeting; moving it to another date or time marks it rescheduled
func (s *MeetingService) Update(ctx context.Context, actor entity.Actor, id string, req *MeetingRequest) (*entity.Meeting, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	meeting, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.checkRefs(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	if req.Date != meeting.Date || req.Time != meeting.Time {
		startsAt, err := entity.ParseMeetingStart(req.Date, req.Time, s.loc)
		if err != nil {
			return nil, errcode.ErrInvalidParam.Wrap(err)
		}
		meeting.Date = req.Date
		meeting.Time = req.Time
		meeting.StartsAt = startsAt
		meeting.Status = constant.MeetingStatusRescheduled
	}
	meeting.Title = req.Title
	meeting.Agenda = req.Agenda
	meeting.CustomerId = req.CustomerId
	meeting.PropertyId = req.PropertyId
	if req.Status != "" && meeting.Status != constant.MeetingStatusRescheduled {
		meeting.Status = req.Status
	}
	meeting.UpdatedAt = time.Now()

	if err := s.meetings.Replace(ctx, meeting); err != nil {
		log.CtxError(ctx, "update meeting failed: meeting_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}

	msg := fmt.Sprintf("Meeting (%s) has been updated successfully.", meeting.Title)
	s.notifyAttendees(ctx, meeting, customer, msg, "Meeting Updated")
	return meeting, nil
}

// Delete removes a meeting
func (s *MeetingService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	ok, err := s.meetings.DeleteById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "delete meeting failed: meeting_id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrMeetingNotFound
	}
	log.CtxInfo(ctx, "meeting deleted: meeting_id=%s", id)
	return nil
}

// notifyAttendees tells the creator and, when the lead has an account, the customer
func (s *MeetingService) notifyAttendees(ctx context.Context, m *entity.Meeting, customer *entity.Customer, msg, title string) {
	notifyMeeting(ctx, s.notifier, m, customer, constant.NotifyTypeMeeting, msg, title)
}

// notifyMeeting is shared with the reminder jobs
func notifyMeeting(ctx context.Context, notifier Notifier, m *entity.Meeting, customer *entity.Customer, typ, msg, title string) {
	recipients := []struct{ userId, link string }{
		{m.CreatedBy, "/agent/meetings/" + m.Id.Hex()},
	}
	if customer != nil && customer.UserId != "" && customer.UserId != m.CreatedBy {
		recipients = append(recipients, struct{ userId, link string }{customer.UserId, "/customer/meetings/" + m.Id.Hex()})
	}

	for _, r := range recipients {
		notifier.Notify(ctx, notify.Notification{
			UserId:   r.userId,
			AgencyId: m.AgencyId,
			Message:  msg,
			Type:     typ,
			Link:     r.link,
		})
		notifier.Push(ctx, notify.Push{UserId: r.userId, Title: title, Message: msg, UrlPath: r.link})
	}
}

// pastGrace is how long after its start a meeting is still considered ongoing
const pastGrace = 2 * time.Hour

// ExpirePast marks scheduled and rescheduled meetings that started over two hours before now as past
func (s *MeetingService) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.meetings.MarkPast(ctx, now.Add(-pastGrace))
	if err != nil {
		return 0, fmt.Errorf("mark past meetings: %w", err)
	}
	if n > 0 {
		log.CtxInfo(ctx, "meetings marked past: count=%d", n)
	}
	return n, nil
}

// RemindBetween sends a reminder for every active meeting starting in (from, to]
func (s *MeetingService) RemindBetween(ctx context.Context, from, to time.Time, lead string) (int, error) {
	meetings, err := s.meetings.FindUpcomingBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("find upcoming meetings: %w", err)
	}

	for _, m := range meetings {
		customer, err := s.customers.GetById(ctx, m.CustomerId)
		if err != nil {
			log.CtxWarn(ctx, "load customer for reminder failed: meeting_id=%s, error=%v", m.Id.Hex(), err)
		}
		msg := fmt.Sprintf("%s: %s at %s.", lead, m.Title, m.StartsAt.In(s.loc).Format(entity.MeetingTimeLayout))
		notifyMeeting(ctx, s.notifier, m, customer, constant.NotifyTypeMeetingReminder, msg, "Meeting Reminder")
	}
	return len(meetings), nil
}
