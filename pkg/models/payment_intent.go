package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentProvider string

const (
	ProviderCulqi  PaymentProvider = "culqi"
	ProviderPayPal PaymentProvider = "paypal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentCharged PaymentStatus = "charged" // external charge succeeded, local plan update pending
	PaymentApplied PaymentStatus = "applied"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentIntent records the two-phase plan upgrade: the row is written as
// "charged" before the tenant's plan is touched, and flipped to "applied"
// after. The reconciler sweeps rows stuck in "charged".
type PaymentIntent struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Provider    PaymentProvider `gorm:"type:varchar(20);not null" json:"provider"`
	ProviderRef string          `gorm:"not null" json:"provider_ref"`
	Plan        TenantPlan      `gorm:"type:varchar(20);not null" json:"plan"`
	Amount      int             `gorm:"not null" json:"amount"` // minor units
	Currency    string          `gorm:"type:varchar(3);not null" json:"currency"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *PaymentIntent) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
