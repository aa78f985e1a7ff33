package entity

// PushSubscription is a web-push endpoint registered by one device of a user
type PushSubscription struct {
	Id        uint64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserId    string `json:"user_id" gorm:"column:user_id;size:32;uniqueIndex:uk_user_device"`
	DeviceId  string `json:"device_id" gorm:"column:device_id;size:64;uniqueIndex:uk_user_device"`
	Role      string `json:"role" gorm:"column:role;size:16"`
	Platform  string `json:"platform" gorm:"column:platform;size:32"`
	Browser   string `json:"browser" gorm:"column:browser;size:32"`
	Endpoint  string `json:"endpoint" gorm:"column:endpoint;type:text"`
	P256dh    string `json:"-" gorm:"column:p256dh;size:255"`
	Auth      string `json:"-" gorm:"column:auth;size:255"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt int64  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for PushSubscription
func (PushSubscription) TableName() string {
	return "push_subscriptions"
}
