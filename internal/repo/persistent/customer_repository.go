package persistent

import (
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(tenantID, id string) (*entity.Customer, error)
	List(tenantID string, limit, offset int) ([]*entity.Customer, int64, error)
	Update(customer *entity.Customer) error
	Delete(tenantID, id string) error
	ApplyCheckin(tenantID, id string, points, stamps int, at time.Time) (*entity.Customer, error)
	DeductPoints(tenantID, id string, points int) (*entity.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *entity.Customer) error {
	customerModel := ToCustomerModel(customer)
	if customerModel.ID == "" {
		customerModel.ID = uuid.New().String()
	}
	if err := r.db.Create(customerModel).Error; err != nil {
		return err
	}
	*customer = *ToCustomerEntity(customerModel)
	return nil
}

func (r *customerRepository) GetByID(tenantID, id string) (*entity.Customer, error) {
	var customerModel model.CustomerModel
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&customerModel).Error; err != nil {
		return nil, err
	}
	return ToCustomerEntity(&customerModel), nil
}

func (r *customerRepository) List(tenantID string, limit, offset int) ([]*entity.Customer, int64, error) {
	var totalCount int64
	if err := r.db.Model(&model.CustomerModel{}).Where("tenant_id = ?", tenantID).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var customerModels []model.CustomerModel
	query := r.db.Where("tenant_id = ?", tenantID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]*entity.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = ToCustomerEntity(&customerModels[i])
	}
	return customers, totalCount, nil
}

func (r *customerRepository) Update(customer *entity.Customer) error {
	customerModel := ToCustomerModel(customer)
	return r.db.Save(customerModel).Error
}

func (r *customerRepository) Delete(tenantID, id string) error {
	result := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&model.CustomerModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApplyCheckin increments points and stamps atomically in the database so
// concurrent check-ins for the same customer cannot lose an update.
func (r *customerRepository) ApplyCheckin(tenantID, id string, points, stamps int, at time.Time) (*entity.Customer, error) {
	result := r.db.Model(&model.CustomerModel{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Updates(map[string]interface{}{
			"points":          gorm.Expr("points + ?", points),
			"stamps":          gorm.Expr("stamps + ?", stamps),
			"last_checkin_at": at,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(tenantID, id)
}

// DeductPoints subtracts points only when the balance covers them; zero rows
// affected means either a missing customer or an insufficient balance.
func (r *customerRepository) DeductPoints(tenantID, id string, points int) (*entity.Customer, error) {
	result := r.db.Model(&model.CustomerModel{}).
		Where("id = ? AND tenant_id = ? AND points >= ?", id, tenantID, points).
		Update("points", gorm.Expr("points - ?", points))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(tenantID, id)
}
