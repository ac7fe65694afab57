package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_customer_tenant_email" json:"tenant_id"`
	Name          string         `gorm:"not null" json:"name"`
	LastName      string         `json:"last_name"`
	Email         string         `gorm:"uniqueIndex:idx_customer_tenant_email" json:"email"`
	Phone         string         `json:"phone"`
	Birthday      *time.Time     `json:"birthday,omitempty"`
	Points        int            `gorm:"default:0" json:"points"`
	Stamps        int            `gorm:"default:0" json:"stamps"`
	LastCheckinAt *time.Time     `json:"last_checkin_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
