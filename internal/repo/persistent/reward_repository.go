package persistent

import (
	"loyaltypro/internal/entity"
	"loyaltypro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(reward *entity.Reward) error
	GetByID(tenantID, id string) (*entity.Reward, error)
	List(tenantID string) ([]*entity.Reward, error)
	Update(reward *entity.Reward) error
	Delete(tenantID, id string) error
	CreateRedemption(redemption *entity.Redemption) error
	ListRedemptions(tenantID, customerID string, limit, offset int) ([]*entity.Redemption, error)
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(reward *entity.Reward) error {
	rewardModel := ToRewardModel(reward)
	if rewardModel.ID == "" {
		rewardModel.ID = uuid.New().String()
	}
	if err := r.db.Create(rewardModel).Error; err != nil {
		return err
	}
	*reward = *ToRewardEntity(rewardModel)
	return nil
}

func (r *rewardRepository) GetByID(tenantID, id string) (*entity.Reward, error) {
	var rewardModel model.RewardModel
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&rewardModel).Error; err != nil {
		return nil, err
	}
	return ToRewardEntity(&rewardModel), nil
}

func (r *rewardRepository) List(tenantID string) ([]*entity.Reward, error) {
	var rewardModels []model.RewardModel
	if err := r.db.Where("tenant_id = ?", tenantID).Order("points_cost ASC").Find(&rewardModels).Error; err != nil {
		return nil, err
	}

	rewards := make([]*entity.Reward, len(rewardModels))
	for i := range rewardModels {
		rewards[i] = ToRewardEntity(&rewardModels[i])
	}
	return rewards, nil
}

func (r *rewardRepository) Update(reward *entity.Reward) error {
	rewardModel := ToRewardModel(reward)
	return r.db.Save(rewardModel).Error
}

func (r *rewardRepository) Delete(tenantID, id string) error {
	result := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&model.RewardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *rewardRepository) CreateRedemption(redemption *entity.Redemption) error {
	redemptionModel := &model.RedemptionModel{
		ID:         redemption.ID,
		TenantID:   redemption.TenantID,
		CustomerID: redemption.CustomerID,
		RewardID:   redemption.RewardID,
		Points:     redemption.Points,
	}
	if redemptionModel.ID == "" {
		redemptionModel.ID = uuid.New().String()
	}
	if err := r.db.Create(redemptionModel).Error; err != nil {
		return err
	}
	*redemption = *ToRedemptionEntity(redemptionModel)
	return nil
}

func (r *rewardRepository) ListRedemptions(tenantID, customerID string, limit, offset int) ([]*entity.Redemption, error) {
	var redemptionModels []model.RedemptionModel
	query := r.db.Where("tenant_id = ?", tenantID).Order("created_at DESC")
	if customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&redemptionModels).Error; err != nil {
		return nil, err
	}

	redemptions := make([]*entity.Redemption, len(redemptionModels))
	for i := range redemptionModels {
		redemptions[i] = ToRedemptionEntity(&redemptionModels[i])
	}
	return redemptions, nil
}
