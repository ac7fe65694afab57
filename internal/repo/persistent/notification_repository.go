package persistent

import (
	"loyaltypro/internal/entity"
	"loyaltypro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByUser(userID string, limit, offset int) ([]entity.Notification, int64, error)
	CountUnread(userID string) (int64, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *entity.Notification) error {
	notificationModel := &model.NotificationModel{
		ID:      notification.ID,
		UserID:  notification.UserID,
		Title:   notification.Title,
		Message: notification.Message,
		Type:    notification.Type,
		Link:    notification.Link,
		Read:    notification.Read,
	}
	if notificationModel.ID == "" {
		notificationModel.ID = uuid.New().String()
	}
	if err := r.db.Create(notificationModel).Error; err != nil {
		return err
	}
	*notification = *ToNotificationEntity(notificationModel)
	return nil
}

func (r *notificationRepository) ListByUser(userID string, limit, offset int) ([]entity.Notification, int64, error) {
	var totalCount int64
	if err := r.db.Model(&model.NotificationModel{}).Where("user_id = ?", userID).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var notificationModels []model.NotificationModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]entity.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = *ToNotificationEntity(&notificationModels[i])
	}
	return notifications, totalCount, nil
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).Where("user_id = ? AND read = ?", userID, false).Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(userID, id string) error {
	result := r.db.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID string) error {
	return r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
