package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantHandler struct {
	tenantUseCase usecase.TenantUseCase
	logger        *logger.Logger
}

func NewTenantHandler(tenantUseCase usecase.TenantUseCase, logger *logger.Logger) *TenantHandler {
	return &TenantHandler{
		tenantUseCase: tenantUseCase,
		logger:        logger,
	}
}

type UpdateTenantRequest struct {
	Name           *string `json:"name"`
	Timezone       *string `json:"timezone"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
}

// GetTenantBySlug godoc
// @Summary      Public tenant lookup
// @Description  Branding and local time for the public check-in page
// @Tags         tenants
// @Produce      json
// @Param        slug path string true "Tenant slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /tenants/slug/{slug} [get]
func (h *TenantHandler) GetTenantBySlug(c *gin.Context) {
	slug := c.Param("slug")

	tenant, err := h.tenantUseCase.GetTenantBySlug(slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant": gin.H{
			"id":              tenant.ID,
			"name":            tenant.Name,
			"slug":            tenant.Slug,
			"logo_url":        tenant.LogoURL,
			"primary_color":   tenant.PrimaryColor,
			"secondary_color": tenant.SecondaryColor,
			"timezone":        h.tenantUseCase.TenantZone(tenant),
		},
		"local_time": h.tenantUseCase.LocalTime(tenant, time.Now().UTC(), ""),
	})
}

// GetTenant godoc
// @Summary      Get current tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /tenant [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tenant, err := h.tenantUseCase.GetTenant(tenantID)
	if err != nil {
		h.logger.Error("Failed to get tenant %s: %v", tenantID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant": tenant})
}

// UpdateTenant godoc
// @Summary      Update tenant settings
// @Description  Update name, timezone or branding colors
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenant body UpdateTenantRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /tenant [put]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, err := h.tenantUseCase.UpdateTenant(tenantID, usecase.TenantUpdate{
		Name:           req.Name,
		Timezone:       req.Timezone,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTimezone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown timezone"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		h.logger.Error("Failed to update tenant %s: %v", tenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tenant updated",
		"tenant":  tenant,
	})
}

// UploadIcon godoc
// @Summary      Upload tenant icon
// @Tags         tenants
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        icon formData file true "Icon image"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /tenant/icon [post]
func (h *TenantHandler) UploadIcon(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("icon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Icon file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read icon file"})
		return
	}
	defer file.Close()

	fileKey := fmt.Sprintf("%s/%s%s", tenantID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	tenant, err := h.tenantUseCase.UploadIcon(tenantID, file, fileKey, contentType)
	if err != nil {
		h.logger.Error("Failed to upload icon for tenant %s: %v", tenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload icon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Icon uploaded",
		"tenant":  tenant,
	})
}
