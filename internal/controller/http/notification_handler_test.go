package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationUseCase is a mock implementation of NotificationUseCase
type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) CreateNotification(userID, title, message, notificationType, link string) (*entity.Notification, error) {
	args := m.Called(userID, title, message, notificationType, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Notification), args.Error(1)
}

func (m *MockNotificationUseCase) NotifyBestEffort(userID, title, message, notificationType, link string) bool {
	args := m.Called(userID, title, message, notificationType, link)
	return args.Bool(0)
}

func (m *MockNotificationUseCase) GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, 0, args.Error(3)
	}
	return args.Get(0).([]entity.Notification), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}

func (m *MockNotificationUseCase) MarkRead(userID, notificationID string) error {
	args := m.Called(userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationUseCase) MarkAllRead(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockNotificationUseCase) HandleCheckinTask(task map[string]interface{}) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockNotificationUseCase) HandleRedemptionTask(task map[string]interface{}) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockNotificationUseCase) HandlePaymentTask(task map[string]interface{}) error {
	args := m.Called(task)
	return args.Error(0)
}

var _ usecase.NotificationUseCase = (*MockNotificationUseCase)(nil)

func withUser(userID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}

func TestSendNotification_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.POST("/notifications", withUser("admin-1", handler.SendNotification))

	mockNotification := &entity.Notification{
		ID:      "notification-1",
		UserID:  "user-123",
		Title:   "Bienvenido",
		Message: "Tu cuenta fue creada",
		Type:    "info",
	}
	mockUseCase.On("CreateNotification", "user-123", "Bienvenido", "Tu cuenta fue creada", "info", "").Return(mockNotification, nil)

	body := `{"user_id":"user-123","title":"Bienvenido","message":"Tu cuenta fue creada","type":"info"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSendNotification_UserNotFound(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.POST("/notifications", withUser("admin-1", handler.SendNotification))

	mockUseCase.On("CreateNotification", "ghost", "Hola", "Mensaje", "", "").Return(nil, usecase.ErrUserNotFound)

	body := `{"user_id":"ghost","title":"Hola","message":"Mensaje"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSendNotification_StoreUnavailable(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.POST("/notifications", withUser("admin-1", handler.SendNotification))

	mockUseCase.On("CreateNotification", "user-123", "Hola", "Mensaje", "", "").Return(nil, usecase.ErrStoreUnavailable)

	body := `{"user_id":"user-123","title":"Hola","message":"Mensaje"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.GET("/notifications", withUser("user-123", handler.GetNotifications))

	mockNotifications := []entity.Notification{
		{ID: "notification-1", UserID: "user-123", Title: "Check-in de Maria", Read: false},
		{ID: "notification-2", UserID: "user-123", Title: "Canje: Cafe gratis", Read: true},
	}
	mockUseCase.On("GetNotifications", "user-123", 50, 0).Return(mockNotifications, int64(2), int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["total"])
	assert.Equal(t, float64(1), response["unread"])

	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_Unauthorized(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.GET("/notifications", handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockUseCase.AssertNotCalled(t, "GetNotifications")
}

func TestMarkRead_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.PUT("/notifications/:id/read", withUser("user-123", handler.MarkRead))

	mockUseCase.On("MarkRead", "user-123", "notification-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/notification-1/read", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestMarkRead_NotFound(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.PUT("/notifications/:id/read", withUser("user-123", handler.MarkRead))

	mockUseCase.On("MarkRead", "user-123", "missing").Return(errors.New("notification not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/missing/read", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestMarkAllRead_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	logger := logger.New()
	handler := NewNotificationHandler(mockUseCase, nil, logger, nil)

	router := setupTestRouter()
	router.PUT("/notifications/read-all", withUser("user-123", handler.MarkAllRead))

	mockUseCase.On("MarkAllRead", "user-123").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/read-all", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
