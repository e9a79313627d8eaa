package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string     `gorm:"uniqueIndex:uq_users_username;size:150;not null" json:"username"`
	Email       string     `gorm:"uniqueIndex:uq_users_email;size:254;not null" json:"email"`
	FirstName   string     `gorm:"size:150" json:"first_name"`
	LastName    string     `gorm:"size:150" json:"last_name"`
	Bio         string     `gorm:"type:text" json:"bio"`
	Role        Role       `gorm:"type:varchar(16);default:'user';not null" json:"role"` // writable only through the admin path
	IsStaff     bool       `gorm:"not null;default:false" json:"-"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"-"`
	IsActive    bool       `gorm:"not null;default:false" json:"-"` // false until the confirmation code is exchanged
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

// IsAdmin mirrors the admin predicate used by the access policy: the admin
// role or the staff flag.
func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin || user.IsStaff
}

func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}

func (User) TableName() string {
	return "users"
}
