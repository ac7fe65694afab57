package main

import (
	"flag"
	"fmt"

	"loyaltypro/internal/repo/persistent"
	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/cache"
	"loyaltypro/pkg/config"
	"loyaltypro/pkg/database"
	"loyaltypro/pkg/logger"
)

// Creates a notification for a user and, when Redis is reachable,
// publishes it on the user's channel so an open websocket picks it up.
func main() {
	var (
		userID  = flag.String("user", "", "target user ID (required)")
		title   = flag.String("title", "Notificación de prueba", "notification title")
		message = flag.String("message", "Esto es una prueba del sistema de notificaciones.", "notification message")
		kind    = flag.String("type", "info", "notification type (info, success, warning, error)")
	)
	flag.Parse()

	if *userID == "" {
		panic("user flag is required")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, notification will not be pushed live: %v", err)
		redisClient = nil
	}

	notificationUseCase := usecase.NewNotificationUseCase(
		persistent.NewNotificationRepository(db),
		persistent.NewUserRepository(db),
		redisClient,
		log,
	)

	notification, err := notificationUseCase.CreateNotification(*userID, *title, *message, *kind, "")
	if err != nil {
		log.Error("Failed to create notification: %v", err)
		panic(err)
	}

	log.Info("Created notification %s for user %s", notification.ID, *userID)
}
