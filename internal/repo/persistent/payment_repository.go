package persistent

import (
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateIntent(intent *entity.PaymentIntent) error
	UpdateStatus(id, status string) error
	ListStuckCharged(olderThan time.Time) ([]*entity.PaymentIntent, error)
	GetByProviderRef(provider, providerRef string) (*entity.PaymentIntent, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateIntent(intent *entity.PaymentIntent) error {
	intentModel := &model.PaymentIntentModel{
		ID:          intent.ID,
		TenantID:    intent.TenantID,
		Provider:    intent.Provider,
		ProviderRef: intent.ProviderRef,
		Plan:        intent.Plan,
		Amount:      intent.Amount,
		Currency:    intent.Currency,
		Status:      intent.Status,
	}
	if intentModel.ID == "" {
		intentModel.ID = uuid.New().String()
	}
	if err := r.db.Create(intentModel).Error; err != nil {
		return err
	}
	*intent = *ToPaymentIntentEntity(intentModel)
	return nil
}

func (r *paymentRepository) UpdateStatus(id, status string) error {
	result := r.db.Model(&model.PaymentIntentModel{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListStuckCharged returns intents where the external charge succeeded but
// the local plan update never landed.
func (r *paymentRepository) ListStuckCharged(olderThan time.Time) ([]*entity.PaymentIntent, error) {
	var intentModels []model.PaymentIntentModel
	err := r.db.Where("status = ? AND updated_at < ?", "charged", olderThan).Find(&intentModels).Error
	if err != nil {
		return nil, err
	}

	intents := make([]*entity.PaymentIntent, len(intentModels))
	for i := range intentModels {
		intents[i] = ToPaymentIntentEntity(&intentModels[i])
	}
	return intents, nil
}

func (r *paymentRepository) GetByProviderRef(provider, providerRef string) (*entity.PaymentIntent, error) {
	var intentModel model.PaymentIntentModel
	if err := r.db.Where("provider = ? AND provider_ref = ?", provider, providerRef).First(&intentModel).Error; err != nil {
		return nil, err
	}
	return ToPaymentIntentEntity(&intentModel), nil
}
