package model

import (
	"time"

	"gorm.io/gorm"
)

type TenantModel struct {
	ID             string         `gorm:"column:id;type:uuid;primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	Slug           string         `gorm:"column:slug;not null"`
	Timezone       string         `gorm:"column:timezone"`
	Plan           string         `gorm:"column:plan"`
	PlanExpiresAt  *time.Time     `gorm:"column:plan_expires_at"`
	LogoURL        string         `gorm:"column:logo_url"`
	PrimaryColor   string         `gorm:"column:primary_color"`
	SecondaryColor string         `gorm:"column:secondary_color"`
	IsActive       bool           `gorm:"column:is_active"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (TenantModel) TableName() string {
	return "tenants"
}
