package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerUseCase usecase.CustomerUseCase
	logger          *logger.Logger
}

func NewCustomerHandler(customerUseCase usecase.CustomerUseCase, logger *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerUseCase: customerUseCase,
		logger:          logger,
	}
}

type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required"`
	LastName string  `json:"last_name"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone"`
	Birthday *string `json:"birthday"` // YYYY-MM-DD
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Birthday *string `json:"birthday"`
}

type CheckinRequest struct {
	Points int `json:"points"`
	Stamps int `json:"stamps"`
}

type RedeemRequest struct {
	RewardID string `json:"reward_id" binding:"required"`
}

// ListCustomers godoc
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Router       /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	customers, totalCount, err := h.customerUseCase.ListCustomers(tenantID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
		"total":     totalCount,
		"offset":    offset,
	})
}

// GetCustomer godoc
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	customerID := c.Param("id")

	customer, err := h.customerUseCase.GetCustomer(tenantID, customerID)
	if err != nil {
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.logger.Error("Failed to get customer %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// CreateCustomer godoc
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        customer body CreateCustomerRequest true "Customer data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := &entity.Customer{
		TenantID: tenantID,
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Birthday must be YYYY-MM-DD"})
			return
		}
		customer.Birthday = &birthday
	}

	if err := h.customerUseCase.CreateCustomer(customer); err != nil {
		h.logger.Error("Failed to create customer: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer created",
		"customer": customer,
	})
}

// UpdateCustomer godoc
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer ID"
// @Param        customer body UpdateCustomerRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	customerID := c.Param("id")

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := usecase.CustomerUpdate{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Birthday must be YYYY-MM-DD"})
			return
		}
		update.Birthday = &birthday
	}

	customer, err := h.customerUseCase.UpdateCustomer(tenantID, customerID, update)
	if err != nil {
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.logger.Error("Failed to update customer %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer updated",
		"customer": customer,
	})
}

// DeleteCustomer godoc
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	customerID := c.Param("id")

	if err := h.customerUseCase.DeleteCustomer(tenantID, customerID); err != nil {
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.logger.Error("Failed to delete customer %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// Checkin godoc
// @Summary      Record a check-in
// @Description  Credit points and stamps to a customer visit
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer ID"
// @Param        checkin body CheckinRequest true "Points and stamps to credit"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id}/checkin [post]
func (h *CustomerHandler) Checkin(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	customerID := c.Param("id")

	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Points < 0 || req.Stamps < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Points and stamps must not be negative"})
		return
	}
	if req.Points == 0 && req.Stamps == 0 {
		req.Points = 10
		req.Stamps = 1
	}

	result, err := h.customerUseCase.Checkin(tenantID, customerID, req.Points, req.Stamps)
	if err != nil {
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.logger.Error("Failed to check in customer %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record check-in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  result.Message,
		"customer": result.Customer,
	})
}

// Redeem godoc
// @Summary      Redeem a reward
// @Description  Exchange customer points for a reward
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer ID"
// @Param        redeem body RedeemRequest true "Reward to redeem"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /customers/{id}/redeem [post]
func (h *CustomerHandler) Redeem(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	customerID := c.Param("id")

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.customerUseCase.Redeem(tenantID, customerID, req.RewardID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, usecase.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, usecase.ErrRewardInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reward is not active"})
		case errors.Is(err, usecase.ErrInsufficientPoints):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient points"})
		default:
			h.logger.Error("Failed to redeem reward for customer %s: %v", customerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Reward redeemed",
		"customer":   result.Customer,
		"redemption": result.Redemption,
	})
}
