package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mbeoliero/kit/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/internal/repository"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
	"github.com/mbeoliero/realty/pkg/idgen"
)

// AgentService manages the agents of agencies
type AgentService struct {
	users    UserStore
	agencies DocStore[entity.Agency]
	tokens   TokenStore
	notifier Notifier
	opts     query.Options
	loginURL string
}

// NewAgentService creates a new AgentService
func NewAgentService(users UserStore, agencies DocStore[entity.Agency], tokens TokenStore, notifier Notifier, opts query.Options, frontendURL string) *AgentService {
	return &AgentService{
		users:    users,
		agencies: agencies,
		tokens:   tokens,
		notifier: notifier,
		opts:     opts,
		loginURL: frontendURL + "/login",
	}
}

// InviteAgentRequest is the body of an agent invitation
type InviteAgentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	AgencyId string `json:"agencyId"`
}

// UpdateAgentRequest is the body of an agent update
type UpdateAgentRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// Invite creates an agent account with a temporary password and mails the credentials.
// Admins may invite into any agency, agency owners into their own.
func (s *AgentService) Invite(ctx context.Context, actor entity.Actor, req *InviteAgentRequest) (*entity.UserInfo, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	agencyId := actor.ScopeAgency(req.AgencyId)
	if agencyId == "" {
		return nil, errcode.ErrAgencyRequired
	}

	agency, err := s.agencies.GetById(ctx, agencyId)
	if err != nil {
		log.CtxError(ctx, "get agency failed: agency_id=%s, error=%v", agencyId, err)
		return nil, errcode.ErrInternalServer
	}
	if agency == nil {
		return nil, errcode.ErrAgencyNotFound
	}
	if !actor.IsAdmin() && agency.Owner != actor.UserId {
		return nil, errcode.ErrNoPermission
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.CtxError(ctx, "check agent email failed: email=%s, error=%v", email, err)
		return nil, errcode.ErrInternalServer
	}
	if existing != nil {
		return nil, errcode.ErrUserExists
	}

	userId, err := idgen.NextID()
	if err != nil {
		log.CtxError(ctx, "generate user id failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	tempPassword := idgen.NewTempPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		log.CtxError(ctx, "hash password failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	agent := &entity.User{
		Id:       userId,
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     constant.RoleAgent,
		AgencyId: agencyId,
	}
	if err := s.users.Create(ctx, agent); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errcode.ErrUserExists
		}
		log.CtxError(ctx, "create agent failed: email=%s, error=%v", email, err)
		return nil, errcode.ErrInternalServer
	}

	s.notifier.Email(ctx, notify.AgentInviteEmail(agent.Email, agent.Name, agency.Name, tempPassword, s.loginURL))
	if agency.Owner != "" && agency.Owner != actor.UserId {
		s.notifier.Notify(ctx, notify.Notification{
			UserId:   agency.Owner,
			AgencyId: agencyId,
			Message:  fmt.Sprintf("Agent (%s) has been added to your agency.", agent.Name),
			Type:     constant.NotifyTypeAgent,
		})
	}

	log.CtxInfo(ctx, "agent invited: user_id=%s, agency_id=%s", agent.Id, agencyId)
	return agent.ToUserInfo(), nil
}

// List pages agents, searching name and phone or the agency name
func (s *AgentService) List(ctx context.Context, actor entity.Actor, p query.ListParams) (*Page[entity.UserInfo], error) {
	p = p.Normalize(s.opts)
	f := query.NewFilter(p, s.opts, "name", "phone").
		Eq("role", constant.RoleAgent).
		Eq("agency_id", actor.ScopeAgency(p.AgencyId))
	// users carry no status column
	f.Status = ""

	if f.HasSearch() {
		ids, err := agencyIdsByName(ctx, s.agencies, f.Search)
		if err != nil {
			log.CtxError(ctx, "search agencies failed: error=%v", err)
			return nil, errcode.ErrInternalServer
		}
		f.AddRelated("agency_id", ids)
	}

	users, total, err := s.users.Page(ctx, f, p)
	if err != nil {
		log.CtxError(ctx, "list agents failed: error=%v", err)
		return nil, errcode.ErrInternalServer
	}

	items := make([]*entity.UserInfo, 0, len(users))
	for _, u := range users {
		items = append(items, u.ToUserInfo())
	}
	return &Page[entity.UserInfo]{Items: items, Pagination: query.NewPagination(total, p)}, nil
}

// Get returns one agent
func (s *AgentService) Get(ctx context.Context, actor entity.Actor, id string) (*entity.UserInfo, error) {
	agent, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return agent.ToUserInfo(), nil
}

// Update edits an agent's profile
func (s *AgentService) Update(ctx context.Context, actor entity.Actor, id string, req *UpdateAgentRequest) (*entity.UserInfo, error) {
	agent, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
		agent.Name = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
		agent.Phone = req.Phone
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
		agent.Avatar = req.Avatar
	}
	if len(updates) == 0 {
		return agent.ToUserInfo(), nil
	}

	if err := s.users.Update(ctx, id, updates); err != nil {
		log.CtxError(ctx, "update agent failed: user_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	return agent.ToUserInfo(), nil
}

// Delete removes an agent and revokes their sessions
func (s *AgentService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}

	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		log.CtxError(ctx, "delete agent failed: user_id=%s, error=%v", id, err)
		return errcode.ErrInternalServer
	}
	if !ok {
		return errcode.ErrAgentNotFound
	}
	if err := s.tokens.ForceLogoutUser(ctx, id); err != nil {
		log.CtxWarn(ctx, "revoke agent tokens failed: user_id=%s, error=%v", id, err)
	}

	log.CtxInfo(ctx, "agent deleted: user_id=%s", id)
	return nil
}

func (s *AgentService) load(ctx context.Context, actor entity.Actor, id string) (*entity.User, error) {
	agent, err := s.users.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get agent failed: user_id=%s, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if agent == nil || agent.Role != constant.RoleAgent {
		return nil, errcode.ErrAgentNotFound
	}
	if !actor.CanAccessAgency(agent.AgencyId) {
		return nil, errcode.ErrNoPermission
	}
	return agent, nil
}
