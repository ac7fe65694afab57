package persistent

import (
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}
	tenantID := ""
	if m.TenantID != nil {
		tenantID = *m.TenantID
	}
	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		Name:      m.Name,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Birthday:  m.Birthday,
		AvatarURL: m.AvatarURL,
		Role:      m.Role,
		IsActive:  m.IsActive,
		TenantID:  tenantID,
		CreatedAt: m.CreatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	var tenantID *string
	if e.TenantID != "" {
		tenantID = &e.TenantID
	}
	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Password:  e.Password,
		Name:      e.Name,
		LastName:  e.LastName,
		Phone:     e.Phone,
		Birthday:  e.Birthday,
		AvatarURL: e.AvatarURL,
		Role:      e.Role,
		IsActive:  e.IsActive,
		TenantID:  tenantID,
		CreatedAt: e.CreatedAt,
	}
}

func ToTenantEntity(m *model.TenantModel) *entity.Tenant {
	if m == nil {
		return nil
	}
	return &entity.Tenant{
		ID:             m.ID,
		Name:           m.Name,
		Slug:           m.Slug,
		Timezone:       m.Timezone,
		Plan:           m.Plan,
		PlanExpiresAt:  m.PlanExpiresAt,
		LogoURL:        m.LogoURL,
		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

func ToTenantModel(e *entity.Tenant) *model.TenantModel {
	return &model.TenantModel{
		ID:             e.ID,
		Name:           e.Name,
		Slug:           e.Slug,
		Timezone:       e.Timezone,
		Plan:           e.Plan,
		PlanExpiresAt:  e.PlanExpiresAt,
		LogoURL:        e.LogoURL,
		PrimaryColor:   e.PrimaryColor,
		SecondaryColor: e.SecondaryColor,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
	}
}

func ToCustomerEntity(m *model.CustomerModel) *entity.Customer {
	if m == nil {
		return nil
	}
	return &entity.Customer{
		ID:            m.ID,
		TenantID:      m.TenantID,
		Name:          m.Name,
		LastName:      m.LastName,
		Email:         m.Email,
		Phone:         m.Phone,
		Birthday:      m.Birthday,
		Points:        m.Points,
		Stamps:        m.Stamps,
		LastCheckinAt: m.LastCheckinAt,
		CreatedAt:     m.CreatedAt,
	}
}

func ToCustomerModel(e *entity.Customer) *model.CustomerModel {
	return &model.CustomerModel{
		ID:            e.ID,
		TenantID:      e.TenantID,
		Name:          e.Name,
		LastName:      e.LastName,
		Email:         e.Email,
		Phone:         e.Phone,
		Birthday:      e.Birthday,
		Points:        e.Points,
		Stamps:        e.Stamps,
		LastCheckinAt: e.LastCheckinAt,
		CreatedAt:     e.CreatedAt,
	}
}

func ToRewardEntity(m *model.RewardModel) *entity.Reward {
	if m == nil {
		return nil
	}
	return &entity.Reward{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		PointsCost:  m.PointsCost,
		Active:      m.Active,
	}
}

func ToRewardModel(e *entity.Reward) *model.RewardModel {
	return &model.RewardModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		Name:        e.Name,
		Description: e.Description,
		PointsCost:  e.PointsCost,
		Active:      e.Active,
	}
}

func ToRedemptionEntity(m *model.RedemptionModel) *entity.Redemption {
	if m == nil {
		return nil
	}
	return &entity.Redemption{
		ID:         m.ID,
		TenantID:   m.TenantID,
		CustomerID: m.CustomerID,
		RewardID:   m.RewardID,
		Points:     m.Points,
		CreatedAt:  m.CreatedAt,
	}
}

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}
	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Message:   m.Message,
		Type:      m.Type,
		Link:      m.Link,
		Read:      m.Read,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToPaymentIntentEntity(m *model.PaymentIntentModel) *entity.PaymentIntent {
	if m == nil {
		return nil
	}
	return &entity.PaymentIntent{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Provider:    m.Provider,
		ProviderRef: m.ProviderRef,
		Plan:        m.Plan,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
}
