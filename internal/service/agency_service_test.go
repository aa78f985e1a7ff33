package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/service/servicetest"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

func TestAgencyService(t *testing.T) {
	ctx := context.Background()
	users := servicetest.NewUsers(newUser("owner-1", "Owner", constant.RoleAgent, ""))
	notifier := servicetest.NewNotifier()
	svc := NewAgencyService(servicetest.NewDocs[entity.Agency](), users, notifier, testOpts)

	_, err := svc.Create(ctx, agentActor, &AgencyRequest{Name: "Nope"})
	assert.ErrorIs(t, err, errcode.ErrNoPermission)

	agency, err := svc.Create(ctx, adminActor, &AgencyRequest{Name: "Mumbai Homes & Co.", Owner: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, "mumbai-homes-co", agency.Slug)
	assert.Equal(t, constant.AgencyStatusApproved, agency.Status)

	owner, err := users.GetById(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, agency.Id.Hex(), owner.AgencyId)
	require.Len(t, notifier.NotificationsOf(constant.NotifyTypeAgency), 1)

	_, err = svc.Create(ctx, adminActor, &AgencyRequest{Name: "Pune Estates"})
	require.NoError(t, err)

	t.Run("owners see only their agency", func(t *testing.T) {
		page, err := svc.List(ctx, owner.Actor(), queryPage(1, 10))
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, agency.Id, page.Items[0].Id)

		page, err = svc.List(ctx, adminActor, queryPage(1, 10))
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, AgencyStats{TotalAgencies: 2}, page.Stats)
	})

	t.Run("owner may update, others may not", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner.Actor(), agency.Id.Hex(), &AgencyRequest{Name: "Mumbai Homes", Phone: "022"})
		require.NoError(t, err)
		assert.Equal(t, "022", updated.Phone)

		_, err = svc.Update(ctx, agentActor, agency.Id.Hex(), &AgencyRequest{Name: "Hijack"})
		assert.ErrorIs(t, err, errcode.ErrNoPermission)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, owner.Actor(), agency.Id.Hex()), errcode.ErrNoPermission)
		require.NoError(t, svc.Delete(ctx, adminActor, agency.Id.Hex()))
		assert.ErrorIs(t, svc.Delete(ctx, adminActor, agency.Id.Hex()), errcode.ErrAgencyNotFound)
	})
}

func TestAgentService_Invite(t *testing.T) {
	ctx := context.Background()
	agencies := newAgencies(t, &entity.Agency{Name: "Mumbai Homes", Owner: "owner-1"})
	agencyId := agencies.Find(nil)[0].Id.Hex()
	ownerActor := entity.Actor{UserId: "owner-1", Role: constant.RoleAgent, AgencyId: agencyId}

	users := servicetest.NewUsers(newUser("taken", "Taken", constant.RoleCustomer, ""))
	tokens := servicetest.NewTokens()
	notifier := servicetest.NewNotifier()
	svc := NewAgentService(users, agencies, tokens, notifier, testOpts, "https://app.example")

	agent, err := svc.Invite(ctx, adminActor, &InviteAgentRequest{Name: "Neha", Email: "Neha@Example.com", AgencyId: agencyId})
	require.NoError(t, err)
	assert.Equal(t, "neha@example.com", agent.Email)
	assert.Equal(t, constant.RoleAgent, agent.Role)
	assert.Equal(t, agencyId, agent.AgencyId)

	emails := notifier.Emails()
	require.Len(t, emails, 1)
	assert.Equal(t, "neha@example.com", emails[0].To)
	assert.Contains(t, emails[0].HTML, "https://app.example/login")
	require.Len(t, notifier.NotificationsOf(constant.NotifyTypeAgent), 1)

	stored, err := users.GetById(ctx, agent.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Password)
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("")))

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Invite(ctx, ownerActor, &InviteAgentRequest{Name: "Dup", Email: "taken@example.com"})
		assert.ErrorIs(t, err, errcode.ErrUserExists)
	})

	t.Run("only admins and the owner invite", func(t *testing.T) {
		stranger := entity.Actor{UserId: agent.Id, Role: constant.RoleAgent, AgencyId: agencyId}
		_, err := svc.Invite(ctx, stranger, &InviteAgentRequest{Name: "X", Email: "x@example.com"})
		assert.ErrorIs(t, err, errcode.ErrNoPermission)
	})

	t.Run("list searches by name or agency", func(t *testing.T) {
		p := queryPage(1, 10)
		p.Search = "mumbai"
		page, err := svc.List(ctx, ownerActor, p)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, agent.Id, page.Items[0].Id)
	})

	t.Run("delete revokes sessions", func(t *testing.T) {
		require.NoError(t, tokens.StoreToken(ctx, agent.Id, 1, "tok"))
		require.NoError(t, svc.Delete(ctx, ownerActor, agent.Id))

		valid, err := tokens.IsTokenValid(ctx, agent.Id, 1, "tok")
		require.NoError(t, err)
		assert.False(t, valid)

		_, err = svc.Get(ctx, ownerActor, agent.Id)
		assert.ErrorIs(t, err, errcode.ErrAgentNotFound)
	})
}
