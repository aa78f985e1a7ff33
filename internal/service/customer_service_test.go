package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/repository"
	"github.com/mbeoliero/realty/internal/service/servicetest"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

func newAgencies(t *testing.T, agencies ...*entity.Agency) *servicetest.Docs[entity.Agency, *entity.Agency] {
	t.Helper()
	docs := servicetest.NewDocs[entity.Agency]()
	for _, a := range agencies {
		require.NoError(t, docs.Create(context.Background(), a))
	}
	return docs
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	owned := &entity.Agency{Name: "Mumbai Homes", Owner: "owner-1"}
	agencies := newAgencies(t, owned)
	actor := entity.Actor{UserId: "agent-1", Role: constant.RoleAgent, AgencyId: owned.Id.Hex()}

	customers := servicetest.NewCustomers()
	notifier := servicetest.NewNotifier()
	svc := NewCustomerService(customers, agencies, notifier, testOpts)

	created, err := svc.Create(ctx, actor, &CustomerRequest{FullName: " Priya Shah ", PhoneNumber: "9990001111"})
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", created.FullName)
	assert.Equal(t, constant.CustomerStatusNew, created.Status)
	assert.Equal(t, owned.Id.Hex(), created.AgencyId)
	assert.Equal(t, "agent-1", created.CreatedBy)

	t.Run("creator and agency owner are told", func(t *testing.T) {
		leads := notifier.NotificationsOf(constant.NotifyTypeNewLead)
		require.Len(t, leads, 2)
		assert.Equal(t, "agent-1", leads[0].UserId)
		assert.Equal(t, "owner-1", leads[1].UserId)
		assert.Equal(t, "New lead (Priya Shah) has been added.", leads[0].Message)
		assert.Len(t, notifier.Pushes(), 2)
	})

	t.Run("same phone in the same agency conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, actor, &CustomerRequest{FullName: "Someone Else", PhoneNumber: "9990001111"})
		assert.ErrorIs(t, err, errcode.ErrCustomerExists)
		assert.Equal(t, 1, customers.Len())
	})

	t.Run("same phone in another agency is allowed", func(t *testing.T) {
		other := entity.Actor{UserId: "agent-9", Role: constant.RoleAgent, AgencyId: "agency-9"}
		_, err := svc.Create(ctx, other, &CustomerRequest{FullName: "Priya Shah", PhoneNumber: "9990001111"})
		require.NoError(t, err)
	})

	t.Run("unique index race maps to conflict", func(t *testing.T) {
		racing := servicetest.NewCustomers()
		racing.CreateErr = repository.ErrDuplicate
		svc := NewCustomerService(racing, agencies, servicetest.NewNotifier(), testOpts)
		_, err := svc.Create(ctx, actor, &CustomerRequest{FullName: "Ravi", PhoneNumber: "1"})
		assert.ErrorIs(t, err, errcode.ErrCustomerExists)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Create(ctx, actor, &CustomerRequest{PhoneNumber: "123"})
		require.ErrorIs(t, err, errcode.ErrInvalidParam)
		assert.Contains(t, err.Error(), "fullName")

		_, err = svc.Create(ctx, actor, &CustomerRequest{FullName: "Ravi", PhoneNumber: "123", Status: "hot"})
		assert.ErrorIs(t, err, errcode.ErrInvalidParam)
	})

	t.Run("admin must name the agency", func(t *testing.T) {
		_, err := svc.Create(ctx, adminActor, &CustomerRequest{FullName: "Ravi", PhoneNumber: "123"})
		assert.ErrorIs(t, err, errcode.ErrAgencyRequired)
	})
}

func TestCustomerService_UpdateAndAccess(t *testing.T) {
	ctx := context.Background()
	customers := servicetest.NewCustomers()
	notifier := servicetest.NewNotifier()
	svc := NewCustomerService(customers, newAgencies(t), notifier, testOpts)

	first, err := svc.Create(ctx, agentActor, &CustomerRequest{FullName: "Asha", PhoneNumber: "111"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, agentActor, &CustomerRequest{FullName: "Vikram", PhoneNumber: "222"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, agentActor, first.Id.Hex(), &CustomerRequest{FullName: "Asha", PhoneNumber: "222"})
	assert.ErrorIs(t, err, errcode.ErrCustomerExists)

	updated, err := svc.Update(ctx, agentActor, first.Id.Hex(), &CustomerRequest{FullName: "Asha Rao", PhoneNumber: "111", Status: constant.CustomerStatusInterested})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", updated.FullName)
	assert.Equal(t, constant.CustomerStatusInterested, updated.Status)
	require.Len(t, notifier.NotificationsOf(constant.NotifyTypeLeadUpdated), 1)

	outsider := entity.Actor{UserId: "agent-2", Role: constant.RoleAgent, AgencyId: "agency-2"}
	_, err = svc.Get(ctx, outsider, first.Id.Hex())
	assert.ErrorIs(t, err, errcode.ErrNoPermission)

	require.NoError(t, svc.Delete(ctx, agentActor, first.Id.Hex()))
	_, err = svc.Get(ctx, agentActor, first.Id.Hex())
	assert.ErrorIs(t, err, errcode.ErrCustomerNotFound)
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	customers := servicetest.NewCustomers()
	svc := NewCustomerService(customers, newAgencies(t), servicetest.NewNotifier(), testOpts)

	for _, c := range []*CustomerRequest{
		{FullName: "Asha", PhoneNumber: "111", Status: constant.CustomerStatusInterested},
		{FullName: "Vikram", PhoneNumber: "222", Email: "vik@example.com"},
		{FullName: "Meera", PhoneNumber: "333", Status: constant.CustomerStatusInterested},
	} {
		_, err := svc.Create(ctx, agentActor, c)
		require.NoError(t, err)
	}
	other := entity.Actor{UserId: "agent-2", Role: constant.RoleAgent, AgencyId: "agency-2"}
	_, err := svc.Create(ctx, other, &CustomerRequest{FullName: "Asha", PhoneNumber: "444"})
	require.NoError(t, err)

	page, err := svc.List(ctx, agentActor, queryPage(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, int64(2), page.Pagination.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Meera", page.Items[0].FullName)

	p := queryPage(1, 10)
	p.Search = "VIK"
	page, err = svc.List(ctx, agentActor, p)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Vikram", page.Items[0].FullName)

	p = queryPage(1, 10)
	p.Status = "INTERESTED"
	page, err = svc.List(ctx, agentActor, p)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.List(ctx, adminActor, queryPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Pagination.Total)
}
