package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		Password: "password",
		Role:     RoleOwner,
		IsActive: true,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Email:    "test@example.com",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestTenant_BeforeCreate(t *testing.T) {
	tenant := &Tenant{
		Name: "Cafe Aroma",
		Slug: "cafe-aroma",
		Plan: PlanFree,
	}

	err := tenant.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, tenant.ID)
}

func TestCustomer_BeforeCreate(t *testing.T) {
	customer := &Customer{
		TenantID: "tenant-123",
		Name:     "Maria",
		Email:    "maria@example.com",
	}

	err := customer.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, customer.ID)
}

func TestNotification_BeforeCreate(t *testing.T) {
	notification := &Notification{
		UserID:  "user-123",
		Title:   "Welcome",
		Message: "Your account is ready",
		Type:    NotificationInfo,
	}

	err := notification.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, notification.ID)
}

func TestPaymentIntent_BeforeCreate(t *testing.T) {
	intent := &PaymentIntent{
		TenantID:    "tenant-123",
		Provider:    ProviderCulqi,
		ProviderRef: "chr_test_123",
		Plan:        PlanPro,
		Amount:      9900,
		Currency:    "PEN",
		Status:      PaymentCharged,
	}

	err := intent.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, intent.ID)
}

func TestNotificationType_Constants(t *testing.T) {
	// Test that type constants are defined
	assert.Equal(t, NotificationType("info"), NotificationInfo)
	assert.Equal(t, NotificationType("success"), NotificationSuccess)
	assert.Equal(t, NotificationType("warning"), NotificationWarning)
	assert.Equal(t, NotificationType("error"), NotificationError)
}

func TestUserRole_Constants(t *testing.T) {
	// Test that role constants are defined
	assert.Equal(t, UserRole("owner"), RoleOwner)
	assert.Equal(t, UserRole("staff"), RoleStaff)
	assert.Equal(t, UserRole("admin"), RoleAdmin)
}

func TestPaymentStatus_Constants(t *testing.T) {
	assert.Equal(t, PaymentStatus("pending"), PaymentPending)
	assert.Equal(t, PaymentStatus("charged"), PaymentCharged)
	assert.Equal(t, PaymentStatus("applied"), PaymentApplied)
	assert.Equal(t, PaymentStatus("failed"), PaymentFailed)
}

func TestTenantPlan_Constants(t *testing.T) {
	assert.Equal(t, TenantPlan("free"), PlanFree)
	assert.Equal(t, TenantPlan("basic"), PlanBasic)
	assert.Equal(t, TenantPlan("pro"), PlanPro)
}
