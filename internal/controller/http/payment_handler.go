package http

import (
	"errors"
	"net/http"

	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/culqi"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/paypal"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         *logger.Logger
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

type CulqiChargeRequest struct {
	Plan    string `json:"plan" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	TokenID string `json:"token_id" binding:"required"`
}

type PayPalOrderRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// ChargeCulqi godoc
// @Summary      Charge a card via Culqi
// @Description  Charge the plan price in PEN against a Culqi card token and upgrade the tenant
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        charge body CulqiChargeRequest true "Plan and card token"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      402  {object}  map[string]string
// @Router       /payments/culqi [post]
func (h *PaymentHandler) ChargeCulqi(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CulqiChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.paymentUseCase.ChargeCulqi(c.Request.Context(), tenantID, req.Plan, req.Email, req.TokenID)
	if err != nil {
		var apiErr *culqi.APIError
		switch {
		case errors.Is(err, usecase.ErrFreePlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Free plan does not require payment"})
		case errors.Is(err, usecase.ErrUnknownPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		case errors.As(err, &apiErr):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": apiErr.Error()})
		default:
			h.logger.Error("Culqi charge failed for tenant %s: %v", tenantID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment accepted",
		"payment": intent,
	})
}

// CreatePayPalOrder godoc
// @Summary      Create a PayPal order
// @Description  Create a PayPal checkout order for a plan; capture it after buyer approval
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order body PayPalOrderRequest true "Plan to purchase"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /payments/paypal/orders [post]
func (h *PaymentHandler) CreatePayPalOrder(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req PayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.paymentUseCase.CreatePayPalOrder(c.Request.Context(), tenantID, req.Plan)
	if err != nil {
		var apiErr *paypal.APIError
		switch {
		case errors.Is(err, usecase.ErrFreePlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Free plan does not require payment"})
		case errors.Is(err, usecase.ErrUnknownPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		case errors.As(err, &apiErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
		default:
			h.logger.Error("PayPal order failed for tenant %s: %v", tenantID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
		"links":    order.Links,
	})
}

// CapturePayPalOrder godoc
// @Summary      Capture a PayPal order
// @Description  Capture an approved order and upgrade the tenant plan
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        order_id path string true "PayPal order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /payments/paypal/orders/{order_id}/capture [post]
func (h *PaymentHandler) CapturePayPalOrder(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	orderID := c.Param("order_id")

	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	intent, err := h.paymentUseCase.CapturePayPalOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		var apiErr *paypal.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
			return
		}
		h.logger.Error("PayPal capture failed for order %s: %v", orderID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or capture failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment captured",
		"payment": intent,
	})
}
