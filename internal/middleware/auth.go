package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/pkg/errcode"
	"github.com/mbeoliero/realty/pkg/jwt"
	"github.com/mbeoliero/realty/pkg/response"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer token
	BearerPrefix = "Bearer "
	// ActorKey is the context key for the request principal
	ActorKey = "actor"
	// TokenKey is the context key for the raw bearer token
	TokenKey = "token"
	// PlatformIdKey is the context key for platform Id
	PlatformIdKey = "platform_id"
)

// TokenValidator checks a bearer token and returns its claims
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// JWTAuth is the JWT authentication middleware; it stores the Actor for handlers
func JWTAuth(validator TokenValidator) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		authHeader := string(c.GetHeader(AuthorizationHeader))
		if authHeader == "" {
			response.AbortWithCode(ctx, c, errcode.ErrTokenMissing)
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortWithCode(ctx, c, errcode.ErrTokenInvalid)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			if errors.Is(err, errcode.ErrTokenExpired) {
				response.AbortWithCode(ctx, c, errcode.ErrTokenExpired)
				return
			}
			response.AbortWithCode(ctx, c, errcode.ErrTokenInvalid)
			return
		}

		SetActor(c, entity.Actor{UserId: claims.UserId, Role: claims.Role, AgencyId: claims.AgencyId})
		c.Set(TokenKey, tokenString)
		c.Set(PlatformIdKey, claims.PlatformId)

		c.Next(ctx)
	}
}

// RequireRole rejects callers whose role is not one of roles
func RequireRole(roles ...string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		actor := GetActor(c)
		for _, r := range roles {
			if actor.Role == r {
				c.Next(ctx)
				return
			}
		}
		response.AbortWithCode(ctx, c, errcode.ErrForbidden)
	}
}

// SetActor stores the request principal
func SetActor(c *app.RequestContext, actor entity.Actor) {
	c.Set(ActorKey, actor)
}

// GetActor gets the request principal from context
func GetActor(c *app.RequestContext) entity.Actor {
	if v, ok := c.Get(ActorKey); ok {
		return v.(entity.Actor)
	}
	return entity.Actor{}
}

// GetToken gets the raw bearer token from context
func GetToken(c *app.RequestContext) string {
	return c.GetString(TokenKey)
}

// GetPlatformId gets platform Id from context
func GetPlatformId(c *app.RequestContext) int {
	if v, ok := c.Get(PlatformIdKey); ok {
		return v.(int)
	}
	return 0
}
