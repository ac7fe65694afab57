package model

import (
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey"`
	Email     string         `gorm:"column:email;not null"`
	Password  string         `gorm:"column:password;not null"`
	Name      string         `gorm:"column:name"`
	LastName  string         `gorm:"column:last_name"`
	Phone     string         `gorm:"column:phone"`
	Birthday  *time.Time     `gorm:"column:birthday"`
	AvatarURL string         `gorm:"column:avatar_url"`
	Role      string         `gorm:"column:role"`
	IsActive  bool           `gorm:"column:is_active"`
	TenantID  *string        `gorm:"column:tenant_id;type:uuid"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (UserModel) TableName() string {
	return "users"
}
