package entity

// User is an account able to sign in: admins, agents and customers
type User struct {
	Id        string `json:"id" gorm:"column:id;primaryKey;size:32"`
	Name      string `json:"name" gorm:"column:name;size:128"`
	Email     string `json:"email" gorm:"column:email;size:191;uniqueIndex"`
	Phone     string `json:"phone" gorm:"column:phone;size:32"`
	Password  string `json:"-" gorm:"column:password"`
	Role      string `json:"role" gorm:"column:role;size:16;index"`
	AgencyId  string `json:"agency_id" gorm:"column:agency_id;size:32;index"`
	Avatar    string `json:"avatar" gorm:"column:avatar"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt int64  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// UserInfo represents public user info (without password)
type UserInfo struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	AgencyId  string `json:"agency_id,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// ToUserInfo converts User to UserInfo
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		AgencyId:  u.AgencyId,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// Actor returns the request principal for this user
func (u *User) Actor() Actor {
	return Actor{UserId: u.Id, Role: u.Role, AgencyId: u.AgencyId}
}
