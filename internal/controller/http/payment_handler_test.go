package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/culqi"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/paypal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentUseCase is a mock implementation of PaymentUseCase
type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) ChargeCulqi(ctx context.Context, tenantID, plan, email, tokenID string) (*entity.PaymentIntent, error) {
	args := m.Called(tenantID, plan, email, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentIntent), args.Error(1)
}

func (m *MockPaymentUseCase) CreatePayPalOrder(ctx context.Context, tenantID, plan string) (*paypal.Order, error) {
	args := m.Called(tenantID, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.Order), args.Error(1)
}

func (m *MockPaymentUseCase) CapturePayPalOrder(ctx context.Context, tenantID, orderID string) (*entity.PaymentIntent, error) {
	args := m.Called(tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentIntent), args.Error(1)
}

func (m *MockPaymentUseCase) Reconcile() error {
	args := m.Called()
	return args.Error(0)
}

var _ usecase.PaymentUseCase = (*MockPaymentUseCase)(nil)

func TestChargeCulqi_Success(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	logger := logger.New()
	handler := NewPaymentHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/payments/culqi", withTenant("tenant-1", handler.ChargeCulqi))

	mockIntent := &entity.PaymentIntent{
		ID:       "intent-1",
		TenantID: "tenant-1",
		Provider: "culqi",
		Plan:     "basic",
		Amount:   4900,
		Currency: "PEN",
		Status:   "applied",
	}
	mockUseCase.On("ChargeCulqi", "tenant-1", "basic", "owner@cafe.pe", "tkn_test_123").Return(mockIntent, nil)

	body := `{"plan":"basic","email":"owner@cafe.pe","token_id":"tkn_test_123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/payments/culqi", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Payment accepted", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestChargeCulqi_FreePlan(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	logger := logger.New()
	handler := NewPaymentHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/payments/culqi", withTenant("tenant-1", handler.ChargeCulqi))

	mockUseCase.On("ChargeCulqi", "tenant-1", "free", "owner@cafe.pe", "tkn_test_123").Return(nil, usecase.ErrFreePlan)

	body := `{"plan":"free","email":"owner@cafe.pe","token_id":"tkn_test_123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/payments/culqi", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestChargeCulqi_CardRejected(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	logger := logger.New()
	handler := NewPaymentHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/payments/culqi", withTenant("tenant-1", handler.ChargeCulqi))

	apiErr := &culqi.APIError{StatusCode: 402, UserMessage: "Tarjeta rechazada"}
	mockUseCase.On("ChargeCulqi", "tenant-1", "pro", "owner@cafe.pe", "tkn_bad").Return(nil, apiErr)

	body := `{"plan":"pro","email":"owner@cafe.pe","token_id":"tkn_bad"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/payments/culqi", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Tarjeta rechazada", response["error"])

	mockUseCase.AssertExpectations(t)
}

func TestCreatePayPalOrder_Success(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	logger := logger.New()
	handler := NewPaymentHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/payments/paypal/orders", withTenant("tenant-1", handler.CreatePayPalOrder))

	mockOrder := &paypal.Order{ID: "ORDER-123", Status: "CREATED"}
	mockUseCase.On("CreatePayPalOrder", "tenant-1", "pro").Return(mockOrder, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/payments/paypal/orders", bytes.NewBufferString(`{"plan":"pro"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ORDER-123", response["order_id"])

	mockUseCase.AssertExpectations(t)
}

func TestCreatePayPalOrder_UnknownPlan(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	logger := logger.New()
	handler := NewPaymentHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/payments/paypal/orders", withTenant("tenant-1", handler.CreatePayPalOrder))

	mockUseCase.On("CreatePayPalOrder", "tenant-1", "platinum").Return(nil, usecase.ErrUnknownPlan)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/payments/paypal/orders", bytes.NewBufferString(`{"plan":"platinum"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCapturePayPalOrder_Success(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	logger := logger.New()
	handler := NewPaymentHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/payments/paypal/orders/:order_id/capture", withTenant("tenant-1", handler.CapturePayPalOrder))

	mockIntent := &entity.PaymentIntent{
		ID:       "intent-2",
		TenantID: "tenant-1",
		Provider: "paypal",
		Plan:     "pro",
		Status:   "applied",
	}
	mockUseCase.On("CapturePayPalOrder", "tenant-1", "ORDER-123").Return(mockIntent, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/payments/paypal/orders/ORDER-123/capture", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
