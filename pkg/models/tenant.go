package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantPlan string

const (
	PlanFree  TenantPlan = "free"
	PlanBasic TenantPlan = "basic"
	PlanPro   TenantPlan = "pro"
)

type Tenant struct {
	ID             string         `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`
	Timezone       string         `gorm:"type:varchar(64)" json:"timezone"` // IANA zone, empty means the platform default
	Plan           TenantPlan     `gorm:"type:varchar(20);default:'free'" json:"plan"`
	PlanExpiresAt  *time.Time     `json:"plan_expires_at,omitempty"`
	LogoURL        string         `json:"logo_url"`
	PrimaryColor   string         `gorm:"type:varchar(16)" json:"primary_color"`
	SecondaryColor string         `gorm:"type:varchar(16)" json:"secondary_color"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
