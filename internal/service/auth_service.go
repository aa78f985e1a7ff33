package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mbeoliero/kit/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/repository"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/errcode"
	"github.com/mbeoliero/realty/pkg/idgen"
	"github.com/mbeoliero/realty/pkg/jwt"
)

// AuthService handles authentication logic
type AuthService struct {
	users      UserStore
	tokenStore TokenStore
	jwtCfg     config.JWTConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokenStore TokenStore, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{users: users, tokenStore: tokenStore, jwtCfg: jwtCfg}
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=agent customer"`
	AgencyId string `json:"agencyId"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	PlatformId int    `json:"platform_id"`
}

// LoginResponse represents user login response
type LoginResponse struct {
	Token    string           `json:"token"`
	UserInfo *entity.UserInfo `json:"user_info"`
}

// Register registers a new agent or customer account
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.UserInfo, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.CtxError(ctx, "check user exists failed: %v", err)
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

	// Hash password with bcrypt
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.CtxError(ctx, "hash password failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	user := &entity.User{
		Id:       userId,
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
		Role:     pick(req.Role, constant.RoleCustomer),
		AgencyId: req.AgencyId,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errcode.ErrUserExists
		}
		log.CtxError(ctx, "create user failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "user registered: user_id=%s, role=%s", userId, user.Role)
	return user.ToUserInfo(), nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.CtxError(ctx, "get user failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if user == nil {
		log.CtxDebug(ctx, "login with unknown email: email=%s", req.Email)
		return nil, errcode.ErrLoginFailed
	}

	// Verify password with bcrypt
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errcode.ErrLoginFailed
	}

	token, err := jwt.GenerateToken(jwt.Claims{
		UserId:     user.Id,
		Role:       user.Role,
		AgencyId:   user.AgencyId,
		PlatformId: req.PlatformId,
	}, s.jwtCfg.Secret, s.jwtCfg.ExpireHours)
	if err != nil {
		log.CtxError(ctx, "generate token failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	// Store token in Redis
	if err := s.tokenStore.StoreToken(ctx, user.Id, req.PlatformId, token); err != nil {
		log.CtxError(ctx, "store token failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "user logged in: user_id=%s, platform_id=%d", user.Id, req.PlatformId)
	return &LoginResponse{
		Token:    token,
		UserInfo: user.ToUserInfo(),
	}, nil
}

// ValidateToken validates a token and returns claims
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.ParseToken(token, s.jwtCfg.Secret)
	if err != nil {
		return nil, err
	}

	// Check token status in Redis
	valid, err := s.tokenStore.IsTokenValid(ctx, claims.UserId, claims.PlatformId, token)
	if err != nil {
		log.CtxWarn(ctx, "check token status failed: %v", err)
		// Fall back to JWT validation only if Redis check fails
		return claims, nil
	}
	if !valid {
		return nil, errcode.ErrTokenInvalid
	}

	return claims, nil
}

// Logout invalidates a user's token
func (s *AuthService) Logout(ctx context.Context, userId string, platformId int, token string) error {
	if err := s.tokenStore.InvalidateToken(ctx, userId, platformId, token); err != nil {
		log.CtxError(ctx, "invalidate token failed: %v", err)
		return errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "user logged out: user_id=%s, platform_id=%d", userId, platformId)
	return nil
}

// Me returns the caller's profile
func (s *AuthService) Me(ctx context.Context, actor entity.Actor) (*entity.UserInfo, error) {
	user, err := s.users.GetById(ctx, actor.UserId)
	if err != nil {
		log.CtxError(ctx, "get user failed: user_id=%s, error=%v", actor.UserId, err)
		return nil, errcode.ErrInternalServer
	}
	if user == nil {
		return nil, errcode.ErrUserNotFound
	}
	return user.ToUserInfo(), nil
}
