package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/repo/persistent"
	"loyaltypro/pkg/datefmt"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/storage"

	"github.com/redis/go-redis/v9"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

type TenantUpdate struct {
	Name           *string
	Timezone       *string
	PrimaryColor   *string
	SecondaryColor *string
}

type TenantUseCase interface {
	GetTenant(tenantID string) (*entity.Tenant, error)
	GetTenantBySlug(slug string) (*entity.Tenant, error)
	UpdateTenant(tenantID string, update TenantUpdate) (*entity.Tenant, error)
	UploadIcon(tenantID string, fileReader io.Reader, fileKey, contentType string) (*entity.Tenant, error)
	TenantZone(tenant *entity.Tenant) string
	LocalTime(tenant *entity.Tenant, value interface{}, pattern string) string
}

type tenantUseCase struct {
	tenantRepo    persistent.TenantRepository
	redisClient   *redis.Client
	storageClient *storage.Client
	iconsBucket   string
	defaultZone   string
	logger        *logger.Logger
}

func NewTenantUseCase(
	tenantRepo persistent.TenantRepository,
	redisClient *redis.Client,
	storageClient *storage.Client,
	iconsBucket string,
	defaultZone string,
	logger *logger.Logger,
) TenantUseCase {
	if defaultZone == "" {
		defaultZone = datefmt.DefaultZone
	}
	return &tenantUseCase{
		tenantRepo:    tenantRepo,
		redisClient:   redisClient,
		storageClient: storageClient,
		iconsBucket:   iconsBucket,
		defaultZone:   defaultZone,
		logger:        logger,
	}
}

func (uc *tenantUseCase) GetTenant(tenantID string) (*entity.Tenant, error) {
	return uc.tenantRepo.GetByID(tenantID)
}

// GetTenantBySlug serves the public check-in page lookup. The result is
// cached briefly in Redis since the same slug is hit by every customer scan.
func (uc *tenantUseCase) GetTenantBySlug(slug string) (*entity.Tenant, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("tenant:slug:%s", slug)

	if uc.redisClient != nil {
		cached, err := uc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var tenant entity.Tenant
			if err := json.Unmarshal([]byte(cached), &tenant); err == nil {
				return &tenant, nil
			}
		}
	}

	tenant, err := uc.tenantRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		if tenantJSON, err := json.Marshal(tenant); err == nil {
			uc.redisClient.Set(ctx, cacheKey, tenantJSON, 5*time.Minute)
		}
	}

	return tenant, nil
}

func (uc *tenantUseCase) UpdateTenant(tenantID string, update TenantUpdate) (*entity.Tenant, error) {
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		tenant.Name = *update.Name
	}
	if update.Timezone != nil {
		if *update.Timezone != "" {
			if _, err := time.LoadLocation(*update.Timezone); err != nil {
				return nil, ErrInvalidTimezone
			}
		}
		tenant.Timezone = *update.Timezone
	}
	if update.PrimaryColor != nil {
		tenant.PrimaryColor = *update.PrimaryColor
	}
	if update.SecondaryColor != nil {
		tenant.SecondaryColor = *update.SecondaryColor
	}

	if err := uc.tenantRepo.Update(tenant); err != nil {
		uc.logger.Error("Failed to update tenant %s: %v", tenantID, err)
		return nil, fmt.Errorf("failed to update tenant")
	}

	uc.invalidateSlugCache(tenant.Slug)
	return tenant, nil
}

func (uc *tenantUseCase) UploadIcon(tenantID string, fileReader io.Reader, fileKey, contentType string) (*entity.Tenant, error) {
	logoURL, err := uc.storageClient.UploadFile(uc.iconsBucket, fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload tenant icon: %v", err)
		return nil, fmt.Errorf("failed to upload icon")
	}

	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}

	tenant.LogoURL = logoURL
	if err := uc.tenantRepo.Update(tenant); err != nil {
		uc.logger.Error("Failed to save tenant icon URL: %v", err)
		return nil, fmt.Errorf("failed to update tenant")
	}

	uc.invalidateSlugCache(tenant.Slug)
	return tenant, nil
}

// TenantZone resolves the tenant's IANA zone, falling back to the platform
// default when none is configured.
func (uc *tenantUseCase) TenantZone(tenant *entity.Tenant) string {
	if tenant == nil || tenant.Timezone == "" {
		return uc.defaultZone
	}
	return tenant.Timezone
}

// LocalTime renders a stored UTC timestamp in the tenant's wall clock.
func (uc *tenantUseCase) LocalTime(tenant *entity.Tenant, value interface{}, pattern string) string {
	return datefmt.FormatInTimezone(value, pattern, uc.TenantZone(tenant))
}

func (uc *tenantUseCase) invalidateSlugCache(slug string) {
	if uc.redisClient == nil || slug == "" {
		return
	}
	if err := uc.redisClient.Del(context.Background(), fmt.Sprintf("tenant:slug:%s", slug)).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate tenant cache for slug %s: %v", slug, err)
	}
}
