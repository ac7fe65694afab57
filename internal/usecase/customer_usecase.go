package usecase

import (
	"errors"
	"fmt"
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/repo/persistent"
	"loyaltypro/pkg/datefmt"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/metrics"

	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardInactive     = errors.New("reward is not active")
	ErrInsufficientPoints = errors.New("insufficient points")
)

type CustomerUpdate struct {
	Name     *string
	LastName *string
	Email    *string
	Phone    *string
	Birthday *time.Time
}

type CheckinResult struct {
	Customer *entity.Customer `json:"customer"`
	Message  string           `json:"message"`
}

type RedeemResult struct {
	Customer   *entity.Customer   `json:"customer"`
	Redemption *entity.Redemption `json:"redemption"`
}

type TaskPublisher interface {
	PublishNotificationTask(task map[string]interface{}) error
}

type CustomerUseCase interface {
	ListCustomers(tenantID string, limit, offset int) ([]*entity.Customer, int64, error)
	GetCustomer(tenantID, customerID string) (*entity.Customer, error)
	CreateCustomer(customer *entity.Customer) error
	UpdateCustomer(tenantID, customerID string, update CustomerUpdate) (*entity.Customer, error)
	DeleteCustomer(tenantID, customerID string) error
	Checkin(tenantID, customerID string, points, stamps int) (*CheckinResult, error)
	Redeem(tenantID, customerID, rewardID string) (*RedeemResult, error)
}

type customerUseCase struct {
	customerRepo persistent.CustomerRepository
	rewardRepo   persistent.RewardRepository
	tenantRepo   persistent.TenantRepository
	queueClient  TaskPublisher
	logger       *logger.Logger
}

func NewCustomerUseCase(
	customerRepo persistent.CustomerRepository,
	rewardRepo persistent.RewardRepository,
	tenantRepo persistent.TenantRepository,
	queueClient TaskPublisher,
	logger *logger.Logger,
) CustomerUseCase {
	return &customerUseCase{
		customerRepo: customerRepo,
		rewardRepo:   rewardRepo,
		tenantRepo:   tenantRepo,
		queueClient:  queueClient,
		logger:       logger,
	}
}

func (uc *customerUseCase) ListCustomers(tenantID string, limit, offset int) ([]*entity.Customer, int64, error) {
	return uc.customerRepo.List(tenantID, limit, offset)
}

func (uc *customerUseCase) GetCustomer(tenantID, customerID string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(tenantID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (uc *customerUseCase) CreateCustomer(customer *entity.Customer) error {
	if err := uc.customerRepo.Create(customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("customer with email %s already exists", customer.Email)
		}
		uc.logger.Error("Failed to create customer: %v", err)
		return err
	}
	return nil
}

func (uc *customerUseCase) UpdateCustomer(tenantID, customerID string, update CustomerUpdate) (*entity.Customer, error) {
	customer, err := uc.GetCustomer(tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		customer.Name = *update.Name
	}
	if update.LastName != nil {
		customer.LastName = *update.LastName
	}
	if update.Email != nil {
		customer.Email = *update.Email
	}
	if update.Phone != nil {
		customer.Phone = *update.Phone
	}
	if update.Birthday != nil {
		customer.Birthday = update.Birthday
	}

	if err := uc.customerRepo.Update(customer); err != nil {
		uc.logger.Error("Failed to update customer %s: %v", customerID, err)
		return nil, err
	}
	return customer, nil
}

func (uc *customerUseCase) DeleteCustomer(tenantID, customerID string) error {
	if err := uc.customerRepo.Delete(tenantID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// Checkin credits points and stamps to a customer and queues a notification
// task for the tenant's staff. The message carries the check-in time already
// rendered in the tenant's timezone so consumers do not need zone data.
func (uc *customerUseCase) Checkin(tenantID, customerID string, points, stamps int) (*CheckinResult, error) {
	now := time.Now().UTC()
	customer, err := uc.customerRepo.ApplyCheckin(tenantID, customerID, points, stamps, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("Failed to apply check-in for customer %s: %v", customerID, err)
		return nil, err
	}

	metrics.CheckinsProcessed.Inc()

	zone := uc.tenantZone(tenantID)
	localTime := datefmt.FormatInTimezone(now, "d 'de' MMMM, yyyy 'a las' HH:mm", zone)
	message := fmt.Sprintf("%s %s hizo check-in el %s (+%d puntos)", customer.Name, customer.LastName, localTime, points)

	uc.publishTask(map[string]interface{}{
		"type":          "checkin",
		"tenant_id":     tenantID,
		"customer_id":   customer.ID,
		"customer_name": fmt.Sprintf("%s %s", customer.Name, customer.LastName),
		"message":       message,
		"priority":      5,
	})

	return &CheckinResult{Customer: customer, Message: message}, nil
}

// Redeem exchanges points for a reward. The deduction is conditional on the
// balance at the database level, so two concurrent redemptions cannot spend
// the same points twice.
func (uc *customerUseCase) Redeem(tenantID, customerID, rewardID string) (*RedeemResult, error) {
	reward, err := uc.rewardRepo.GetByID(tenantID, rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if !reward.Active {
		return nil, ErrRewardInactive
	}

	customer, err := uc.customerRepo.DeductPoints(tenantID, customerID, reward.PointsCost)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Distinguish a missing customer from a short balance.
			if _, getErr := uc.customerRepo.GetByID(tenantID, customerID); getErr != nil {
				return nil, ErrCustomerNotFound
			}
			return nil, ErrInsufficientPoints
		}
		uc.logger.Error("Failed to deduct points for customer %s: %v", customerID, err)
		return nil, err
	}

	redemption := &entity.Redemption{
		TenantID:   tenantID,
		CustomerID: customerID,
		RewardID:   rewardID,
		Points:     reward.PointsCost,
	}
	if err := uc.rewardRepo.CreateRedemption(redemption); err != nil {
		uc.logger.Error("Failed to record redemption for customer %s: %v", customerID, err)
		return nil, err
	}

	uc.publishTask(map[string]interface{}{
		"type":          "redemption",
		"tenant_id":     tenantID,
		"customer_id":   customer.ID,
		"customer_name": fmt.Sprintf("%s %s", customer.Name, customer.LastName),
		"reward_name":   reward.Name,
		"points":        reward.PointsCost,
		"priority":      5,
	})

	return &RedeemResult{Customer: customer, Redemption: redemption}, nil
}

func (uc *customerUseCase) tenantZone(tenantID string) string {
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil || tenant.Timezone == "" {
		return datefmt.DefaultZone
	}
	return tenant.Timezone
}

// publishTask queues a notification task; delivery is best effort and a queue
// outage never fails the customer-facing operation.
func (uc *customerUseCase) publishTask(task map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Warn("Failed to publish %v task: %v", task["type"], err)
	}
}
