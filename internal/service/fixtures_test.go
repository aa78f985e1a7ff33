package service

import (
	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/pkg/constant"
)

var testOpts = query.DefaultOptions

func newUser(id, name, role, agencyId string) *entity.User {
	return &entity.User{
		Id:       id,
		Name:     name,
		Email:    id + "@example.com",
		Role:     role,
		AgencyId: agencyId,
	}
}

var (
	adminActor    = entity.Actor{UserId: "admin", Role: constant.RoleAdmin}
	agentActor    = entity.Actor{UserId: "agent-1", Role: constant.RoleAgent, AgencyId: "agency-1"}
	customerActor = entity.Actor{UserId: "customer-1", Role: constant.RoleCustomer}
)

func seedUsers() []*entity.User {
	return []*entity.User{
		newUser("admin", "Admin", constant.RoleAdmin, ""),
		newUser("agent-1", "Agent One", constant.RoleAgent, "agency-1"),
		newUser("customer-1", "Customer One", constant.RoleCustomer, ""),
	}
}

func queryPage(page, limit int64) query.ListParams {
	return query.ListParams{Page: page, Limit: limit}
}
