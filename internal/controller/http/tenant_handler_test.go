package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockTenantUseCase is a mock implementation of TenantUseCase
type MockTenantUseCase struct {
	mock.Mock
}

func (m *MockTenantUseCase) GetTenant(tenantID string) (*entity.Tenant, error) {
	args := m.Called(tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tenant), args.Error(1)
}

func (m *MockTenantUseCase) GetTenantBySlug(slug string) (*entity.Tenant, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tenant), args.Error(1)
}

func (m *MockTenantUseCase) UpdateTenant(tenantID string, update usecase.TenantUpdate) (*entity.Tenant, error) {
	args := m.Called(tenantID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tenant), args.Error(1)
}

func (m *MockTenantUseCase) UploadIcon(tenantID string, fileReader io.Reader, fileKey, contentType string) (*entity.Tenant, error) {
	args := m.Called(tenantID, fileReader, fileKey, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tenant), args.Error(1)
}

func (m *MockTenantUseCase) TenantZone(tenant *entity.Tenant) string {
	args := m.Called(tenant)
	return args.String(0)
}

func (m *MockTenantUseCase) LocalTime(tenant *entity.Tenant, value interface{}, pattern string) string {
	args := m.Called(tenant, value, pattern)
	return args.String(0)
}

var _ usecase.TenantUseCase = (*MockTenantUseCase)(nil)

func TestGetTenantBySlug_Success(t *testing.T) {
	mockUseCase := new(MockTenantUseCase)
	logger := logger.New()
	handler := NewTenantHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/tenants/slug/:slug", handler.GetTenantBySlug)

	mockTenant := &entity.Tenant{
		ID:           "tenant-1",
		Name:         "Cafe Central",
		Slug:         "cafe-central",
		Timezone:     "America/Lima",
		PrimaryColor: "#5C4033",
	}
	mockUseCase.On("GetTenantBySlug", "cafe-central").Return(mockTenant, nil)
	mockUseCase.On("TenantZone", mockTenant).Return("America/Lima")
	mockUseCase.On("LocalTime", mockTenant, mock.Anything, "").Return("15 feb 23:32")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/tenants/slug/cafe-central", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	tenant := response["tenant"].(map[string]interface{})
	assert.Equal(t, "cafe-central", tenant["slug"])
	assert.Equal(t, "15 feb 23:32", response["local_time"])

	mockUseCase.AssertExpectations(t)
}

func TestGetTenantBySlug_NotFound(t *testing.T) {
	mockUseCase := new(MockTenantUseCase)
	logger := logger.New()
	handler := NewTenantHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/tenants/slug/:slug", handler.GetTenantBySlug)

	mockUseCase.On("GetTenantBySlug", "ghost").Return(nil, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/tenants/slug/ghost", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateTenant_InvalidTimezone(t *testing.T) {
	mockUseCase := new(MockTenantUseCase)
	logger := logger.New()
	handler := NewTenantHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.PUT("/tenant", withTenant("tenant-1", handler.UpdateTenant))

	timezone := "America/Narnia"
	mockUseCase.On("UpdateTenant", "tenant-1", usecase.TenantUpdate{Timezone: &timezone}).Return(nil, usecase.ErrInvalidTimezone)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/tenant", bytes.NewBufferString(`{"timezone":"America/Narnia"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateTenant_Success(t *testing.T) {
	mockUseCase := new(MockTenantUseCase)
	logger := logger.New()
	handler := NewTenantHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.PUT("/tenant", withTenant("tenant-1", handler.UpdateTenant))

	timezone := "America/Mexico_City"
	mockTenant := &entity.Tenant{ID: "tenant-1", Timezone: timezone}
	mockUseCase.On("UpdateTenant", "tenant-1", usecase.TenantUpdate{Timezone: &timezone}).Return(mockTenant, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/tenant", bytes.NewBufferString(`{"timezone":"America/Mexico_City"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
