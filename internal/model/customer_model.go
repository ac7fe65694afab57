package model

import (
	"time"

	"gorm.io/gorm"
)

type CustomerModel struct {
	ID            string         `gorm:"column:id;type:uuid;primaryKey"`
	TenantID      string         `gorm:"column:tenant_id;type:uuid;not null"`
	Name          string         `gorm:"column:name;not null"`
	LastName      string         `gorm:"column:last_name"`
	Email         string         `gorm:"column:email"`
	Phone         string         `gorm:"column:phone"`
	Birthday      *time.Time     `gorm:"column:birthday"`
	Points        int            `gorm:"column:points"`
	Stamps        int            `gorm:"column:stamps"`
	LastCheckinAt *time.Time     `gorm:"column:last_checkin_at"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

type RewardModel struct {
	ID          string         `gorm:"column:id;type:uuid;primaryKey"`
	TenantID    string         `gorm:"column:tenant_id;type:uuid;not null"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description"`
	PointsCost  int            `gorm:"column:points_cost"`
	Active      bool           `gorm:"column:active"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (RewardModel) TableName() string {
	return "rewards"
}

type RedemptionModel struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey"`
	TenantID   string    `gorm:"column:tenant_id;type:uuid;not null"`
	CustomerID string    `gorm:"column:customer_id;type:uuid;not null"`
	RewardID   string    `gorm:"column:reward_id;type:uuid;not null"`
	Points     int       `gorm:"column:points"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (RedemptionModel) TableName() string {
	return "redemptions"
}
