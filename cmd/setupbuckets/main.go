package main

import (
	"fmt"

	"loyaltypro/pkg/config"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	client, err := storage.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create storage client: %v", err)
		panic(err)
	}

	// Icons and avatars are served directly by the frontend, so both
	// buckets get a public read policy.
	buckets := []string{cfg.IconsBucket, cfg.AvatarsBucket}
	for _, bucket := range buckets {
		if err := client.EnsureBucket(bucket, true); err != nil {
			log.Error("Failed to ensure bucket %s: %v", bucket, err)
			panic(err)
		}
		log.Info("Bucket ready: %s", bucket)
	}

	existing, err := client.ListBuckets()
	if err != nil {
		log.Warn("Failed to list buckets: %v", err)
		return
	}
	for _, info := range existing {
		log.Info("Found bucket: %s (public=%v)", info.Name, info.Public)
	}
}
