package model

import "time"

// User roles. Moderators may edit any course or lesson but cannot create
// or delete them; staff can manage user accounts.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleStaff     = "staff"
)

// User is a platform account. Authentication is by email, not username.
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Phone        *string    `gorm:"size:35" json:"phone,omitempty"`
	City         *string    `gorm:"size:100" json:"city,omitempty"`
	AvatarURL    *string    `gorm:"size:500" json:"avatar_url,omitempty"`
	Role         string     `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsModerator reports whether the user may edit content they do not own.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleStaff
}

// IsStaff reports whether the user may manage other accounts.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
