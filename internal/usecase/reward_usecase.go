package usecase

import (
	"errors"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/repo/persistent"
	"loyaltypro/pkg/logger"

	"gorm.io/gorm"
)

type RewardUpdate struct {
	Name        *string
	Description *string
	PointsCost  *int
	Active      *bool
}

type RewardUseCase interface {
	ListRewards(tenantID string) ([]*entity.Reward, error)
	CreateReward(reward *entity.Reward) error
	UpdateReward(tenantID, rewardID string, update RewardUpdate) (*entity.Reward, error)
	DeleteReward(tenantID, rewardID string) error
	ListRedemptions(tenantID, customerID string, limit, offset int) ([]*entity.Redemption, error)
}

type rewardUseCase struct {
	rewardRepo persistent.RewardRepository
	logger     *logger.Logger
}

func NewRewardUseCase(rewardRepo persistent.RewardRepository, logger *logger.Logger) RewardUseCase {
	return &rewardUseCase{rewardRepo: rewardRepo, logger: logger}
}

func (uc *rewardUseCase) ListRewards(tenantID string) ([]*entity.Reward, error) {
	return uc.rewardRepo.List(tenantID)
}

func (uc *rewardUseCase) CreateReward(reward *entity.Reward) error {
	if err := uc.rewardRepo.Create(reward); err != nil {
		uc.logger.Error("Failed to create reward: %v", err)
		return err
	}
	return nil
}

func (uc *rewardUseCase) UpdateReward(tenantID, rewardID string, update RewardUpdate) (*entity.Reward, error) {
	reward, err := uc.rewardRepo.GetByID(tenantID, rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		reward.Name = *update.Name
	}
	if update.Description != nil {
		reward.Description = *update.Description
	}
	if update.PointsCost != nil {
		reward.PointsCost = *update.PointsCost
	}
	if update.Active != nil {
		reward.Active = *update.Active
	}

	if err := uc.rewardRepo.Update(reward); err != nil {
		uc.logger.Error("Failed to update reward %s: %v", rewardID, err)
		return nil, err
	}
	return reward, nil
}

func (uc *rewardUseCase) DeleteReward(tenantID, rewardID string) error {
	if err := uc.rewardRepo.Delete(tenantID, rewardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRewardNotFound
		}
		return err
	}
	return nil
}

func (uc *rewardUseCase) ListRedemptions(tenantID, customerID string, limit, offset int) ([]*entity.Redemption, error) {
	return uc.rewardRepo.ListRedemptions(tenantID, customerID, limit, offset)
}
