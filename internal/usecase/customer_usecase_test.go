package usecase

import (
	"testing"
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(customer *entity.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(tenantID, id string) (*entity.Customer, error) {
	args := m.Called(tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(tenantID string, limit, offset int) ([]*entity.Customer, int64, error) {
	args := m.Called(tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Update(customer *entity.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(tenantID, id string) error {
	args := m.Called(tenantID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) ApplyCheckin(tenantID, id string, points, stamps int, at time.Time) (*entity.Customer, error) {
	args := m.Called(tenantID, id, points, stamps, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) DeductPoints(tenantID, id string, points int) (*entity.Customer, error) {
	args := m.Called(tenantID, id, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) Create(reward *entity.Reward) error {
	args := m.Called(reward)
	return args.Error(0)
}

func (m *MockRewardRepository) GetByID(tenantID, id string) (*entity.Reward, error) {
	args := m.Called(tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Reward), args.Error(1)
}

func (m *MockRewardRepository) List(tenantID string) ([]*entity.Reward, error) {
	args := m.Called(tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Reward), args.Error(1)
}

func (m *MockRewardRepository) Update(reward *entity.Reward) error {
	args := m.Called(reward)
	return args.Error(0)
}

func (m *MockRewardRepository) Delete(tenantID, id string) error {
	args := m.Called(tenantID, id)
	return args.Error(0)
}

func (m *MockRewardRepository) CreateRedemption(redemption *entity.Redemption) error {
	args := m.Called(redemption)
	return args.Error(0)
}

func (m *MockRewardRepository) ListRedemptions(tenantID, customerID string, limit, offset int) ([]*entity.Redemption, error) {
	args := m.Called(tenantID, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Redemption), args.Error(1)
}

func TestCheckin_CreditsAndQueuesTask(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	queue := new(MockTaskPublisher)

	uc := NewCustomerUseCase(customerRepo, new(MockRewardRepository), tenantRepo, queue, logger.New())

	mockCustomer := &entity.Customer{
		ID:       "customer-1",
		TenantID: "tenant-1",
		Name:     "Maria",
		LastName: "Lopez",
		Points:   110,
		Stamps:   3,
	}
	customerRepo.On("ApplyCheckin", "tenant-1", "customer-1", 10, 1, mock.AnythingOfType("time.Time")).Return(mockCustomer, nil)
	tenantRepo.On("GetByID", "tenant-1").Return(&entity.Tenant{ID: "tenant-1", Timezone: "America/Lima"}, nil)
	queue.On("PublishNotificationTask", mock.MatchedBy(func(task map[string]interface{}) bool {
		return task["type"] == "checkin" && task["tenant_id"] == "tenant-1"
	})).Return(nil)

	result, err := uc.Checkin("tenant-1", "customer-1", 10, 1)

	assert.NoError(t, err)
	assert.Equal(t, 110, result.Customer.Points)
	assert.Contains(t, result.Message, "Maria Lopez hizo check-in el")
	assert.Contains(t, result.Message, "+10 puntos")

	customerRepo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestCheckin_NotFound(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	queue := new(MockTaskPublisher)

	uc := NewCustomerUseCase(customerRepo, new(MockRewardRepository), new(MockTenantRepository), queue, logger.New())

	customerRepo.On("ApplyCheckin", "tenant-1", "missing", 10, 1, mock.AnythingOfType("time.Time")).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Checkin("tenant-1", "missing", 10, 1)

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	queue.AssertNotCalled(t, "PublishNotificationTask")
}

func TestCheckin_QueueFailureDoesNotFailCheckin(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	queue := new(MockTaskPublisher)

	uc := NewCustomerUseCase(customerRepo, new(MockRewardRepository), tenantRepo, queue, logger.New())

	customerRepo.On("ApplyCheckin", "tenant-1", "customer-1", 5, 0, mock.AnythingOfType("time.Time")).Return(&entity.Customer{ID: "customer-1", Name: "Jose"}, nil)
	tenantRepo.On("GetByID", "tenant-1").Return(nil, gorm.ErrRecordNotFound)
	queue.On("PublishNotificationTask", mock.Anything).Return(assert.AnError)

	result, err := uc.Checkin("tenant-1", "customer-1", 5, 0)

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestRedeem_Success(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	rewardRepo := new(MockRewardRepository)
	queue := new(MockTaskPublisher)

	uc := NewCustomerUseCase(customerRepo, rewardRepo, new(MockTenantRepository), queue, logger.New())

	reward := &entity.Reward{ID: "reward-1", TenantID: "tenant-1", Name: "Cafe gratis", PointsCost: 100, Active: true}
	rewardRepo.On("GetByID", "tenant-1", "reward-1").Return(reward, nil)
	customerRepo.On("DeductPoints", "tenant-1", "customer-1", 100).Return(&entity.Customer{ID: "customer-1", Name: "Maria", Points: 10}, nil)
	rewardRepo.On("CreateRedemption", mock.MatchedBy(func(redemption *entity.Redemption) bool {
		return redemption.RewardID == "reward-1" && redemption.Points == 100
	})).Return(nil)
	queue.On("PublishNotificationTask", mock.MatchedBy(func(task map[string]interface{}) bool {
		return task["type"] == "redemption" && task["reward_name"] == "Cafe gratis"
	})).Return(nil)

	result, err := uc.Redeem("tenant-1", "customer-1", "reward-1")

	assert.NoError(t, err)
	assert.Equal(t, 10, result.Customer.Points)
	rewardRepo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestRedeem_InsufficientPoints(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	rewardRepo := new(MockRewardRepository)

	uc := NewCustomerUseCase(customerRepo, rewardRepo, new(MockTenantRepository), nil, logger.New())

	reward := &entity.Reward{ID: "reward-1", TenantID: "tenant-1", PointsCost: 500, Active: true}
	rewardRepo.On("GetByID", "tenant-1", "reward-1").Return(reward, nil)
	customerRepo.On("DeductPoints", "tenant-1", "customer-1", 500).Return(nil, gorm.ErrRecordNotFound)
	customerRepo.On("GetByID", "tenant-1", "customer-1").Return(&entity.Customer{ID: "customer-1", Points: 50}, nil)

	_, err := uc.Redeem("tenant-1", "customer-1", "reward-1")

	assert.ErrorIs(t, err, ErrInsufficientPoints)
	rewardRepo.AssertNotCalled(t, "CreateRedemption")
}

func TestRedeem_CustomerMissing(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	rewardRepo := new(MockRewardRepository)

	uc := NewCustomerUseCase(customerRepo, rewardRepo, new(MockTenantRepository), nil, logger.New())

	reward := &entity.Reward{ID: "reward-1", TenantID: "tenant-1", PointsCost: 100, Active: true}
	rewardRepo.On("GetByID", "tenant-1", "reward-1").Return(reward, nil)
	customerRepo.On("DeductPoints", "tenant-1", "ghost", 100).Return(nil, gorm.ErrRecordNotFound)
	customerRepo.On("GetByID", "tenant-1", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Redeem("tenant-1", "ghost", "reward-1")

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestRedeem_InactiveReward(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	rewardRepo := new(MockRewardRepository)

	uc := NewCustomerUseCase(customerRepo, rewardRepo, new(MockTenantRepository), nil, logger.New())

	reward := &entity.Reward{ID: "reward-1", TenantID: "tenant-1", PointsCost: 100, Active: false}
	rewardRepo.On("GetByID", "tenant-1", "reward-1").Return(reward, nil)

	_, err := uc.Redeem("tenant-1", "customer-1", "reward-1")

	assert.ErrorIs(t, err, ErrRewardInactive)
	customerRepo.AssertNotCalled(t, "DeductPoints")
}
