package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner UserRole = "owner"
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `json:"name"`
	LastName  string         `json:"last_name"`
	Phone     string         `json:"phone"`
	Birthday  *time.Time     `json:"birthday,omitempty"`
	AvatarURL string         `json:"avatar_url"`
	Role      UserRole       `gorm:"type:varchar(20);default:'staff'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	TenantID  *string        `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
