package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/handler"
	"github.com/mbeoliero/realty/internal/middleware"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/constant"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth         *handler.AuthHandler
	Agency       *handler.AgencyHandler
	Agent        *handler.AgentHandler
	Customer     *handler.CustomerHandler
	Property     *handler.PropertyHandler
	Meeting      *handler.MeetingHandler
	Share        *handler.ShareHandler
	Conversation *handler.ConversationHandler
	Message      *handler.MessageHandler
	Notification *handler.NotificationHandler
	Push         *handler.PushHandler
}

// NewHandlers builds one handler per service
func NewHandlers(s *service.Services) *Handlers {
	return &Handlers{
		Auth:         handler.NewAuthHandler(s.Auth),
		Agency:       handler.NewAgencyHandler(s.Agency),
		Agent:        handler.NewAgentHandler(s.Agent),
		Customer:     handler.NewCustomerHandler(s.Customer),
		Property:     handler.NewPropertyHandler(s.Property),
		Meeting:      handler.NewMeetingHandler(s.Meeting),
		Share:        handler.NewShareHandler(s.Share),
		Conversation: handler.NewConversationHandler(s.Conversation),
		Message:      handler.NewMessageHandler(s.Message),
		Notification: handler.NewNotificationHandler(s.Notification),
		Push:         handler.NewPushHandler(s.Push),
	}
}

// SetupRouter sets up all routes
func SetupRouter(r *route.Engine, cfg *config.Config, handlers *Handlers, validator middleware.TokenValidator) {
	r.Use(middleware.RequestId(), middleware.AccessLog(), middleware.CORS(cfg.Server.AllowedOrigins))

	r.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler(prometheus.DefaultGatherer))

	api := r.Group("/api/v1")

	// Auth routes (no auth required except logout and me)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/logout", middleware.JWTAuth(validator), handlers.Auth.Logout)
		authGroup.GET("/me", middleware.JWTAuth(validator), handlers.Auth.Me)
	}

	authed := api.Group("", middleware.JWTAuth(validator))
	adminOnly := middleware.RequireRole(constant.RoleAdmin)

	agencyGroup := authed.Group("/agencies")
	{
		agencyGroup.GET("", handlers.Agency.List)
		agencyGroup.POST("", adminOnly, handlers.Agency.Create)
		agencyGroup.GET("/:id", handlers.Agency.Get)
		agencyGroup.PUT("/:id", handlers.Agency.Update)
		agencyGroup.DELETE("/:id", adminOnly, handlers.Agency.Delete)
	}

	agentGroup := authed.Group("/agents")
	{
		agentGroup.GET("", handlers.Agent.List)
		agentGroup.POST("", handlers.Agent.Invite)
		agentGroup.GET("/:id", handlers.Agent.Get)
		agentGroup.PUT("/:id", handlers.Agent.Update)
		agentGroup.DELETE("/:id", handlers.Agent.Delete)
	}

	customerGroup := authed.Group("/customers")
	{
		customerGroup.GET("", handlers.Customer.List)
		customerGroup.POST("", handlers.Customer.Create)
		customerGroup.GET("/:id", handlers.Customer.Get)
		customerGroup.PUT("/:id", handlers.Customer.Update)
		customerGroup.DELETE("/:id", handlers.Customer.Delete)
	}

	propertyGroup := authed.Group("/properties")
	{
		propertyGroup.GET("", handlers.Property.List)
		propertyGroup.POST("", handlers.Property.Create)
		propertyGroup.GET("/:id", handlers.Property.Get)
		propertyGroup.PUT("/:id", handlers.Property.Update)
		propertyGroup.DELETE("/:id", handlers.Property.Delete)
	}

	meetingGroup := authed.Group("/meetings")
	{
		meetingGroup.GET("", handlers.Meeting.List)
		meetingGroup.POST("", handlers.Meeting.Create)
		meetingGroup.GET("/:id", handlers.Meeting.Get)
		meetingGroup.PUT("/:id", handlers.Meeting.Update)
		meetingGroup.DELETE("/:id", handlers.Meeting.Delete)
	}

	shareGroup := authed.Group("/shares")
	{
		shareGroup.GET("", handlers.Share.List)
		shareGroup.POST("", handlers.Share.Create)
		shareGroup.DELETE("/:id", handlers.Share.Delete)
	}

	convGroup := authed.Group("/conversations")
	{
		convGroup.GET("", handlers.Conversation.List)
		convGroup.POST("/start", handlers.Message.Start)
		convGroup.GET("/:id/messages", handlers.Message.List)
		convGroup.POST("/:id/messages", handlers.Message.Send)
		convGroup.PUT("/:id/read", handlers.Message.MarkRead)
		for _, action := range []entity.VisibilityAction{
			entity.ActionArchive, entity.ActionUnarchive,
			entity.ActionBlock, entity.ActionUnblock,
			entity.ActionDelete, entity.ActionRestore,
		} {
			convGroup.PUT("/:id/"+string(action), handlers.Conversation.Transition(action))
		}
	}

	authed.GET("/messages/latest", handlers.Message.Latest)

	notificationGroup := authed.Group("/notifications")
	{
		notificationGroup.GET("", handlers.Notification.List)
		notificationGroup.GET("/unread-count", handlers.Notification.UnreadCount)
		notificationGroup.PUT("/read-all", handlers.Notification.MarkAllRead)
		notificationGroup.PUT("/:id/read", handlers.Notification.MarkRead)
		notificationGroup.DELETE("/:id", handlers.Notification.Delete)
	}

	pushGroup := authed.Group("/push")
	{
		pushGroup.POST("/subscribe", handlers.Push.Subscribe)
		pushGroup.DELETE("/subscribe/:device_id", handlers.Push.Unsubscribe)
		pushGroup.GET("/subscriptions", handlers.Push.List)
	}
}
