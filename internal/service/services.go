package service

import (
	"time"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/internal/repository"
)

// Services holds every business service
type Services struct {
	Auth         *AuthService
	Agency       *AgencyService
	Agent        *AgentService
	Customer     *CustomerService
	Property     *PropertyService
	Meeting      *MeetingService
	Share        *ShareService
	Conversation *ConversationService
	Message      *MessageService
	Notification *NotificationService
	Push         *PushService
}

// NewServices wires the services onto the repositories
func NewServices(repos *repository.Repositories, tokens TokenStore, notifier Notifier, cfg *config.Config) *Services {
	opts := query.OptionsFrom(cfg.List)
	frontend := cfg.Notify.FrontendURL

	return &Services{
		Auth:         NewAuthService(repos.User, tokens, cfg.JWT),
		Agency:       NewAgencyService(repos.Agency, repos.User, notifier, opts),
		Agent:        NewAgentService(repos.User, repos.Agency, tokens, notifier, opts, frontend),
		Customer:     NewCustomerService(repos.Customer, repos.Agency, notifier, opts),
		Property:     NewPropertyService(repos.Property, repos.Agency, notifier, opts),
		Meeting:      NewMeetingService(repos.Meeting, repos.Customer, repos.Property, repos.Agency, notifier, opts, time.Local),
		Share:        NewShareService(repos.Share, repos.Property, repos.Agency, repos.User, notifier, opts),
		Conversation: NewConversationService(repos.Conversation, repos.User),
		Message:      NewMessageService(repos.Conversation, repos.Message, repos.User, notifier, opts, frontend),
		Notification: NewNotificationService(repos.Notification, opts),
		Push:         NewPushService(repos.PushSubscription),
	}
}
