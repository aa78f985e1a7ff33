package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/service/servicetest"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

func propertyRequest(title string) *PropertyRequest {
	return &PropertyRequest{Title: title, Location: "Bandra", Type: "Apartment", Category: "Sale", Price: 100}
}

func TestPropertyService_Create(t *testing.T) {
	ctx := context.Background()
	agency := &entity.Agency{Name: "Coastal Realty", Owner: "owner-1"}
	agencies := newAgencies(t, agency)
	actor := entity.Actor{UserId: "agent-1", Role: constant.RoleAgent, AgencyId: agency.Id.Hex()}
	notifier := servicetest.NewNotifier()
	svc := NewPropertyService(servicetest.NewDocs[entity.Property](), agencies, notifier, testOpts)

	p1, err := svc.Create(ctx, actor, propertyRequest("Sea view flat"))
	require.NoError(t, err)
	p2, err := svc.Create(ctx, actor, propertyRequest("Garden villa"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p1.PropertyCode, constant.PropertyCodePrefix))
	assert.NotEqual(t, p1.PropertyCode, p2.PropertyCode)
	assert.Equal(t, constant.PropertyStatusAvailable, p1.Status)
	assert.Equal(t, "agent-1", p1.Owner)
	assert.NotNil(t, p1.Images)
	assert.NotNil(t, p1.Amenities)

	added := notifier.NotificationsOf(constant.NotifyTypePropertyAdded)
	require.Len(t, added, 2)
	assert.Equal(t, "owner-1", added[0].UserId)

	_, err = svc.Create(ctx, actor, &PropertyRequest{Title: "No location", Type: "Apartment", Category: "Sale"})
	assert.ErrorIs(t, err, errcode.ErrInvalidParam)

	updated, err := svc.Update(ctx, actor, p1.Id.Hex(), &PropertyRequest{Title: "Sea view flat", Location: "Bandra", Type: "Apartment", Category: "Sale", Status: constant.PropertyStatusSold})
	require.NoError(t, err)
	assert.Equal(t, constant.PropertyStatusSold, updated.Status)
	assert.Equal(t, p1.PropertyCode, updated.PropertyCode)
	require.Len(t, notifier.NotificationsOf(constant.NotifyTypePropertyUpdated), 1)
}

func TestPropertyService_SearchMatchesFieldsOrAgencyName(t *testing.T) {
	ctx := context.Background()
	mumbai := &entity.Agency{Name: "Mumbai Homes"}
	pune := &entity.Agency{Name: "Pune Estates"}
	agencies := newAgencies(t, mumbai, pune)
	svc := NewPropertyService(servicetest.NewDocs[entity.Property](), agencies, servicetest.NewNotifier(), testOpts)

	create := func(agency *entity.Agency, title string) *entity.Property {
		req := propertyRequest(title)
		req.AgencyId = agency.Id.Hex()
		p, err := svc.Create(ctx, adminActor, req)
		require.NoError(t, err)
		return p
	}
	byAgency := create(mumbai, "Two bedroom flat")
	byTitle := create(pune, "Penthouse near Mumbai airport")
	create(pune, "Farmhouse")

	p := queryPage(1, 10)
	p.Search = "mumbai"
	page, err := svc.List(ctx, adminActor, p)
	require.NoError(t, err)

	var ids []string
	for _, it := range page.Items {
		ids = append(ids, it.Id.Hex())
	}
	assert.ElementsMatch(t, []string{byAgency.Id.Hex(), byTitle.Id.Hex()}, ids)
	assert.Equal(t, int64(2), page.Pagination.Total)

	t.Run("regex characters are literal", func(t *testing.T) {
		p := queryPage(1, 10)
		p.Search = "flat.*"
		page, err := svc.List(ctx, adminActor, p)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("agents only see their agency", func(t *testing.T) {
		actor := entity.Actor{UserId: "agent-1", Role: constant.RoleAgent, AgencyId: pune.Id.Hex()}
		page, err := svc.List(ctx, actor, queryPage(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Pagination.Total)

		_, err = svc.Get(ctx, actor, byAgency.Id.Hex())
		assert.ErrorIs(t, err, errcode.ErrNoPermission)
	})
}
