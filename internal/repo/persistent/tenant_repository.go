package persistent

import (
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/model"

	"gorm.io/gorm"
)

type TenantRepository interface {
	GetByID(id string) (*entity.Tenant, error)
	GetBySlug(slug string) (*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
	UpdatePlan(id, plan string, expiresAt *time.Time) error
}

type tenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetByID(id string) (*entity.Tenant, error) {
	var tenantModel model.TenantModel
	if err := r.db.Where("id = ?", id).First(&tenantModel).Error; err != nil {
		return nil, err
	}
	return ToTenantEntity(&tenantModel), nil
}

func (r *tenantRepository) GetBySlug(slug string) (*entity.Tenant, error) {
	var tenantModel model.TenantModel
	if err := r.db.Where("slug = ?", slug).First(&tenantModel).Error; err != nil {
		return nil, err
	}
	return ToTenantEntity(&tenantModel), nil
}

func (r *tenantRepository) Update(tenant *entity.Tenant) error {
	tenantModel := ToTenantModel(tenant)
	return r.db.Save(tenantModel).Error
}

func (r *tenantRepository) UpdatePlan(id, plan string, expiresAt *time.Time) error {
	return r.db.Model(&model.TenantModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"plan":            plan,
		"plan_expires_at": expiresAt,
	}).Error
}
