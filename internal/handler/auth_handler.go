package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/response"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
func (h *AuthHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req service.RegisterRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	userInfo, err := h.authService.Register(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, userInfo, "Account has been successfully created.")
}

// Login handles user login
func (h *AuthHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req service.LoginRequest
	if !bindBody(ctx, c, &req) {
		return
	}

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// Logout revokes the caller's token
func (h *AuthHandler) Logout(ctx context.Context, c *app.RequestContext) {
	actor := middleware.GetActor(c)
	if err := h.authService.Logout(ctx, actor.UserId, middleware.GetPlatformId(c), middleware.GetToken(c)); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Message(ctx, c, "Logged out successfully")
}

// Me returns the caller's profile
func (h *AuthHandler) Me(ctx context.Context, c *app.RequestContext) {
	info, err := h.authService.Me(ctx, middleware.GetActor(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, info)
}
