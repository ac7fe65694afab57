package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/repo/persistent"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Notification creation failure kinds. Callers that care (tests, admin
// tooling) can branch on these; fire-and-forget call sites go through
// NotifyBestEffort instead.
var (
	ErrUserNotFound     = errors.New("user does not exist")
	ErrStoreUnavailable = errors.New("notification store unavailable")
)

type NotificationUseCase interface {
	CreateNotification(userID, title, message, notificationType, link string) (*entity.Notification, error)
	NotifyBestEffort(userID, title, message, notificationType, link string) bool
	GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, int64, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
	HandleCheckinTask(task map[string]interface{}) error
	HandleRedemptionTask(task map[string]interface{}) error
	HandlePaymentTask(task map[string]interface{}) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	userRepo         persistent.UserRepository
	redisClient      *redis.Client
	logger           *logger.Logger
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	userRepo persistent.UserRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		redisClient:      redisClient,
		logger:           logger,
	}
}

// CreateNotification persists one notification row for the user and fans it
// out to the realtime channel. The type defaults to "info". The returned
// error distinguishes a missing user from a store failure.
func (uc *notificationUseCase) CreateNotification(userID, title, message, notificationType, link string) (*entity.Notification, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}
	if notificationType == "" {
		notificationType = string(entity.NotificationTypeInfo)
	}

	exists, err := uc.userRepo.Exists(userID)
	if err != nil {
		metrics.NotificationsFailed.Inc()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
		Link:    link,
	}

	if err := uc.notificationRepo.Create(notification); err != nil {
		metrics.NotificationsFailed.Inc()
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	metrics.IncrementNotificationCreated(notificationType)

	// Realtime delivery is best-effort; the row is the source of truth
	if err := uc.publishRealtime(notification); err != nil {
		uc.logger.Warn("Failed to publish notification %s to realtime channel: %v", notification.ID, err)
	}

	return notification, nil
}

// NotifyBestEffort persists a notification and reports success as a bare
// boolean. Failures are logged and swallowed, so callers must treat false
// as "not delivered" without knowing why.
func (uc *notificationUseCase) NotifyBestEffort(userID, title, message, notificationType, link string) bool {
	_, err := uc.CreateNotification(userID, title, message, notificationType, link)
	if err != nil {
		uc.logger.Error("Failed to create notification for user %s: %v", userID, err)
		return false
	}
	return true
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, int64, error) {
	notifications, totalCount, err := uc.notificationRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	unreadCount, err := uc.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return notifications, totalCount, unreadCount, nil
}

func (uc *notificationUseCase) MarkRead(userID, notificationID string) error {
	return uc.notificationRepo.MarkRead(userID, notificationID)
}

func (uc *notificationUseCase) MarkAllRead(userID string) error {
	return uc.notificationRepo.MarkAllRead(userID)
}

// HandleCheckinTask notifies every staff user of the tenant about a
// customer check-in.
func (uc *notificationUseCase) HandleCheckinTask(task map[string]interface{}) error {
	tenantID, _ := task["tenant_id"].(string)
	customerName, _ := task["customer_name"].(string)
	message, _ := task["message"].(string)

	if tenantID == "" {
		return fmt.Errorf("invalid checkin task: missing tenant_id")
	}
	if customerName == "" {
		customerName = "Un cliente"
	}

	title := fmt.Sprintf("Check-in de %s", customerName)
	return uc.notifyTenantUsers(tenantID, title, message, string(entity.NotificationTypeInfo))
}

// HandleRedemptionTask notifies tenant staff that a reward was redeemed.
func (uc *notificationUseCase) HandleRedemptionTask(task map[string]interface{}) error {
	tenantID, _ := task["tenant_id"].(string)
	rewardName, _ := task["reward_name"].(string)
	message, _ := task["message"].(string)

	if tenantID == "" || rewardName == "" {
		return fmt.Errorf("invalid redemption task: missing tenant_id or reward_name")
	}

	title := fmt.Sprintf("Canje: %s", rewardName)
	return uc.notifyTenantUsers(tenantID, title, message, string(entity.NotificationTypeSuccess))
}

// HandlePaymentTask notifies tenant staff that a plan payment was applied.
func (uc *notificationUseCase) HandlePaymentTask(task map[string]interface{}) error {
	tenantID, _ := task["tenant_id"].(string)
	plan, _ := task["plan"].(string)
	message, _ := task["message"].(string)

	if tenantID == "" || plan == "" {
		return fmt.Errorf("invalid payment task: missing tenant_id or plan")
	}

	title := fmt.Sprintf("Plan %s activado", plan)
	return uc.notifyTenantUsers(tenantID, title, message, string(entity.NotificationTypeSuccess))
}

func (uc *notificationUseCase) notifyTenantUsers(tenantID, title, message, notificationType string) error {
	users, err := uc.userRepo.ListByTenant(tenantID)
	if err != nil {
		return fmt.Errorf("failed to list tenant users: %w", err)
	}

	if len(users) == 0 {
		uc.logger.Info("No users found for tenant %s, skipping notifications", tenantID)
		return nil
	}

	sent := 0
	for _, user := range users {
		if !uc.NotifyBestEffort(user.ID, title, message, notificationType, "") {
			continue
		}
		sent++
	}

	uc.logger.Info("Notified %d/%d users of tenant %s: %s", sent, len(users), tenantID, title)
	return nil
}

// publishRealtime pushes the notification onto the user's Redis list (a
// bounded recent-items cache) and publishes it on the pub/sub channel the
// websocket handler forwards from.
func (uc *notificationUseCase) publishRealtime(notification *entity.Notification) error {
	if uc.redisClient == nil {
		return nil
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx := context.Background()
	key := fmt.Sprintf("notifications:%s", notification.UserID)
	if err := uc.redisClient.LPush(ctx, key, notificationJSON).Err(); err != nil {
		return fmt.Errorf("failed to push notification to redis: %w", err)
	}
	uc.redisClient.LTrim(ctx, key, 0, 99)
	uc.redisClient.Expire(ctx, key, 30*24*time.Hour)

	if err := uc.redisClient.Publish(ctx, key, notificationJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
