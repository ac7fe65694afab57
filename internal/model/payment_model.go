package model

import "time"

type PaymentIntentModel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	TenantID    string    `gorm:"column:tenant_id;type:uuid;not null"`
	Provider    string    `gorm:"column:provider;not null"`
	ProviderRef string    `gorm:"column:provider_ref;not null"`
	Plan        string    `gorm:"column:plan;not null"`
	Amount      int       `gorm:"column:amount"`
	Currency    string    `gorm:"column:currency"`
	Status      string    `gorm:"column:status;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (PaymentIntentModel) TableName() string {
	return "payment_intents"
}
