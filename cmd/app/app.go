package app

import (
	"context"
	"log"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
	"socialfeed/internal/storage"
)

// App builds the repositories and services for the configured storage
// driver. The returned DB is nil for the memory driver.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	var (
		db   *database.DB
		repo *repository.Repository
	)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		var err error
		db, err = database.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Не удалось подключиться к БД: %v", err)
		}
		repo = repository.NewRepository(db.DB)
	case config.DriverMemory:
		log.Println("Используется хранилище в памяти")
		repo = repository.NewMemoryRepository()
	default:
		log.Fatalf("Неизвестный STORAGE_DRIVER: %s", cfg.StorageDriver)
	}

	services := service.NewService(repo, cfg, connectMinIO(cfg))

	return db, repo, services
}

// connectMinIO returns nil when no endpoint is configured, media uploads
// then answer with 503.
func connectMinIO(cfg *config.Config) storage.Storage {
	if cfg.MinIO.Endpoint == "" {
		log.Println("MINIO_ENDPOINT не задан, загрузка медиа отключена")
		return nil
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := minioClient.EnsureBucket(ctx); err != nil {
		log.Printf("Предупреждение: %v", err)
	}

	return minioClient
}
