package constant

// Roles
const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

// Agency status
const (
	AgencyStatusPending  = "pending"
	AgencyStatusApproved = "approved"
	AgencyStatusRejected = "rejected"
)

// Customer (lead) status
const (
	CustomerStatusNew           = "new"
	CustomerStatusInterested    = "interested"
	CustomerStatusNegotiating   = "negotiating"
	CustomerStatusConverted     = "converted"
	CustomerStatusNotInterested = "not_interested"
	CustomerStatusFollowUp      = "follow_up"
)

// Property status
const (
	PropertyStatusAvailable = "Available"
	PropertyStatusPending   = "Pending"
	PropertyStatusSold      = "Sold"
	PropertyStatusRented    = "Rented"
)

// Meeting status
const (
	MeetingStatusScheduled   = "scheduled"
	MeetingStatusRescheduled = "rescheduled"
	MeetingStatusCancelled   = "cancelled"
	MeetingStatusPast        = "past"
	MeetingStatusCompleted   = "completed"
)

// Notification types
const (
	NotifyTypeMessage         = "message"
	NotifyTypeNewLead         = "new_lead"
	NotifyTypeLeadUpdated     = "lead_updated"
	NotifyTypePropertyAdded   = "property_added"
	NotifyTypePropertyUpdated = "property_updated"
	NotifyTypePropertyShared  = "property_shared"
	NotifyTypeMeeting         = "meeting"
	NotifyTypeMeetingReminder = "meeting_reminder"
	NotifyTypeAgency          = "agency"
	NotifyTypeAgent           = "agent"
)

// NotifyFilterUnread is the pseudo type used to list unread notifications only
const NotifyFilterUnread = "unread"

// AttachmentLabel is the lastMessage preview for attachment-only messages
const AttachmentLabel = "📎 Attachment"

// LatestMessagesLimit is the number of messages returned by the latest feed
const LatestMessagesLimit = 5

// Conversation pair key prefix
const SingleConversationPrefix = "si_"

// Property code prefix
const PropertyCodePrefix = "PROP-"

// Redis key patterns (without prefix, use RedisKey() to get full key)
const (
	redisKeyToken = "token:%s:%d" // token:{user_id}:{platform_id}
)

// redisKeyPrefix is the global prefix for all Redis keys
var redisKeyPrefix = "realty:"

// InitRedisKeyPrefix initializes the Redis key prefix from config
func InitRedisKeyPrefix(prefix string) {
	if prefix != "" {
		redisKeyPrefix = prefix
	}
}

// GetRedisKeyPrefix returns the current Redis key prefix
func GetRedisKeyPrefix() string {
	return redisKeyPrefix
}

// RedisKeyToken returns the token hash key pattern with prefix
func RedisKeyToken() string { return redisKeyPrefix + redisKeyToken }
