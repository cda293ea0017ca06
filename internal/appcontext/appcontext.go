package appcontext

import (
	"cloud.google.com/go/storage"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Context carries the shared collaborators of the service. GCSClient and
// MeilisearchClient are optional; a nil client disables export uploads and
// search indexing respectively.
type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	// AllowedOrigins restricts CORS in production. Empty means allow all.
	AllowedOrigins []string

	GCSClient     *storage.Client
	GCSBucketName string

	MeilisearchClient *meilisearch.Client
}
