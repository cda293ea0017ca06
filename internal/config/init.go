package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

func InitContext() (*appcontext.Context, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Warn("No .env file found, using environment variables")
	}

	logger, err := InitLogger()
	if err != nil {
		return nil, err
	}

	db, err := InitDB()
	if err != nil {
		return nil, err
	}

	ctx := &appcontext.Context{
		DB:             db,
		Logger:         logger,
		AllowedOrigins: allowedOrigins(),
	}

	// Search indexing and export uploads are optional collaborators. The
	// engine runs without them; write paths just skip the side channel.
	if host := os.Getenv("MEILISEARCH_HOST"); host != "" {
		client, err := InitMeilisearch(host)
		if err != nil {
			return nil, err
		}
		ctx.MeilisearchClient = client
	} else {
		logger.Warn("MEILISEARCH_HOST not set, record search indexing disabled")
	}

	if bucket := os.Getenv("GCS_BUCKET_NAME"); bucket != "" {
		gcsClient, err := InitGCSClient()
		if err != nil {
			return nil, err
		}
		ctx.GCSClient = gcsClient
		ctx.GCSBucketName = bucket
	} else {
		logger.Warn("GCS_BUCKET_NAME not set, export uploads disabled")
	}

	return ctx, nil
}

// allowedOrigins resolves the CORS allow list. Outside production every
// origin is allowed.
func allowedOrigins() []string {
	if os.Getenv("ENVIRONMENT") != "production" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = db.AutoMigrate(&entity.Dataset{}, &entity.DatasetRecord{}, &entity.AuditLog{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func InitLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func InitGCSClient() (*storage.Client, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
	}
	return client, nil
}

func InitMeilisearch(host string) (*meilisearch.Client, error) {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: os.Getenv("MEILISEARCH_API_KEY"),
	})

	_, err := client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        "records",
		PrimaryKey: "id",
	})
	if err != nil {
		// If the error is because the index already exists, that's fine
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	}

	task, err := client.Index("records").UpdateFilterableAttributes(&[]string{
		"dataset_id",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update filterable attributes: %w", err)
	}

	_, err = client.WaitForTask(task.TaskUID)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for filterable attributes update: %w", err)
	}

	return client, nil
}
