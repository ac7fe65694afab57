package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"loyaltypro/pkg/cache"
	"loyaltypro/pkg/config"
	"loyaltypro/pkg/database"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/queue"
	"loyaltypro/pkg/storage"
)

// Probes every backing service and exits non-zero if any is down.
// Meant for compose healthchecks and deploy smoke tests.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	failed := false

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Postgres: FAIL (%v)", err)
		failed = true
	} else {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = sqlDB.PingContext(ctx)
			cancel()
		}
		if err != nil {
			log.Error("Postgres: FAIL (%v)", err)
			failed = true
		} else {
			log.Info("Postgres: OK")
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Redis: FAIL (%v)", err)
		failed = true
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Error("Redis: FAIL (%v)", err)
			failed = true
		} else {
			log.Info("Redis: OK")
		}
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("RabbitMQ: FAIL (%v)", err)
		failed = true
	} else {
		length, err := queueClient.GetQueueLength()
		if err != nil {
			log.Error("RabbitMQ: FAIL (%v)", err)
			failed = true
		} else {
			log.Info("RabbitMQ: OK (%d tasks queued)", length)
		}
		queueClient.Close()
	}

	storageClient, err := storage.NewClient(cfg)
	if err != nil {
		log.Error("Storage: FAIL (%v)", err)
		failed = true
	} else {
		buckets, err := storageClient.ListBuckets()
		if err != nil {
			log.Error("Storage: FAIL (%v)", err)
			failed = true
		} else {
			log.Info("Storage: OK (%d buckets)", len(buckets))
		}
	}

	if failed {
		os.Exit(1)
	}
	log.Info("All connections OK")
}
