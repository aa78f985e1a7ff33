package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/service/servicetest"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	tokens := servicetest.NewTokens()
	svc := NewAuthService(servicetest.NewUsers(), tokens, config.JWTConfig{Secret: "test-secret", ExpireHours: 1})

	info, err := svc.Register(ctx, &RegisterRequest{Name: "Asha", Email: "Asha@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", info.Email)
	assert.Equal(t, constant.RoleCustomer, info.Role)

	t.Run("register validation", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{Name: "Again", Email: "asha@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, errcode.ErrUserExists)

		_, err = svc.Register(ctx, &RegisterRequest{Name: "Short", Email: "short@example.com", Password: "123"})
		assert.ErrorIs(t, err, errcode.ErrInvalidParam)

		_, err = svc.Register(ctx, &RegisterRequest{Name: "Boss", Email: "boss@example.com", Password: "secret1", Role: constant.RoleAdmin})
		assert.ErrorIs(t, err, errcode.ErrInvalidParam)
	})

	t.Run("login", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, errcode.ErrLoginFailed)
		_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, errcode.ErrLoginFailed)

		resp, err := svc.Login(ctx, &LoginRequest{Email: "ASHA@example.com", Password: "secret1", PlatformId: 5})
		require.NoError(t, err)
		assert.Equal(t, info.Id, resp.UserInfo.Id)

		claims, err := svc.ValidateToken(ctx, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, info.Id, claims.UserId)
		assert.Equal(t, constant.RoleCustomer, claims.Role)
		assert.Equal(t, 5, claims.PlatformId)

		me, err := svc.Me(ctx, entity.Actor{UserId: claims.UserId})
		require.NoError(t, err)
		assert.Equal(t, "Asha", me.Name)

		require.NoError(t, svc.Logout(ctx, claims.UserId, claims.PlatformId, resp.Token))
		_, err = svc.ValidateToken(ctx, resp.Token)
		assert.ErrorIs(t, err, errcode.ErrTokenInvalid)
	})
}
