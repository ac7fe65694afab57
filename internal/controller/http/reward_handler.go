package http

import (
	"errors"
	"net/http"
	"strconv"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/logger"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewardUseCase usecase.RewardUseCase
	logger        *logger.Logger
}

func NewRewardHandler(rewardUseCase usecase.RewardUseCase, logger *logger.Logger) *RewardHandler {
	return &RewardHandler{
		rewardUseCase: rewardUseCase,
		logger:        logger,
	}
}

type CreateRewardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PointsCost  int    `json:"points_cost" binding:"required,gt=0"`
}

type UpdateRewardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PointsCost  *int    `json:"points_cost"`
	Active      *bool   `json:"active"`
}

// ListRewards godoc
// @Summary      List rewards
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /rewards [get]
func (h *RewardHandler) ListRewards(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rewards, err := h.rewardUseCase.ListRewards(tenantID)
	if err != nil {
		h.logger.Error("Failed to list rewards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rewards": rewards,
		"count":   len(rewards),
	})
}

// CreateReward godoc
// @Summary      Create a reward
// @Tags         rewards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reward body CreateRewardRequest true "Reward data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /rewards [post]
func (h *RewardHandler) CreateReward(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reward := &entity.Reward{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		Active:      true,
	}
	if err := h.rewardUseCase.CreateReward(reward); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reward created",
		"reward":  reward,
	})
}

// UpdateReward godoc
// @Summary      Update a reward
// @Tags         rewards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reward ID"
// @Param        reward body UpdateRewardRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /rewards/{id} [put]
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	rewardID := c.Param("id")

	var req UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PointsCost != nil && *req.PointsCost <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Points cost must be positive"})
		return
	}

	reward, err := h.rewardUseCase.UpdateReward(tenantID, rewardID, usecase.RewardUpdate{
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		Active:      req.Active,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			return
		}
		h.logger.Error("Failed to update reward %s: %v", rewardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward updated",
		"reward":  reward,
	})
}

// DeleteReward godoc
// @Summary      Delete a reward
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reward ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /rewards/{id} [delete]
func (h *RewardHandler) DeleteReward(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	rewardID := c.Param("id")

	if err := h.rewardUseCase.DeleteReward(tenantID, rewardID); err != nil {
		if errors.Is(err, usecase.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			return
		}
		h.logger.Error("Failed to delete reward %s: %v", rewardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted"})
}

// ListRedemptions godoc
// @Summary      List redemptions
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id query string false "Filter by customer"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Router       /redemptions [get]
func (h *RewardHandler) ListRedemptions(c *gin.Context) {
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

	redemptions, err := h.rewardUseCase.ListRedemptions(tenantID, c.Query("customer_id"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list redemptions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list redemptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"redemptions": redemptions,
		"count":       len(redemptions),
		"offset":      offset,
	})
}
