package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/dataset"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/http/middleware"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware(ctx.AllowedOrigins))

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	v1 := h.engine.Group("/api/v1")
	h.setupDatasetRoutes(v1)
}

func (h *APIService) setupDatasetRoutes(group *gin.RouterGroup) {
	datasets := group.Group("/datasets")
	datasets.Use(middleware.JWTAuthMiddleware())

	datasets.POST("", CreateDataset(h.context))
	datasets.GET("", ListDatasets(h.context))
	datasets.GET("/:datasetID", GetDataset(h.context))
	datasets.PUT("/:datasetID", UpdateDataset(h.context))
	datasets.DELETE("/:datasetID", DeleteDataset(h.context))

	datasets.GET("/:datasetID/records", QueryRecords(h.context))
	datasets.POST("/:datasetID/records", CreateRecord(h.context))
	datasets.POST("/:datasetID/records/batch", BatchCreateRecords(h.context))
	datasets.GET("/:datasetID/records/:recordID", GetRecord(h.context))
	datasets.PUT("/:datasetID/records/:recordID", UpdateRecord(h.context))
	datasets.DELETE("/:datasetID/records/:recordID", DeleteRecord(h.context))

	datasets.GET("/:datasetID/analytics", GetDatasetAnalytics(h.context))
	datasets.GET("/:datasetID/audit", ListAuditLogs(h.context))
	datasets.POST("/:datasetID/export", ExportDataset(h.context))
}

// handleServiceError translates engine errors into the HTTP taxonomy. Store
// failures are logged and masked behind the generic message.
func handleServiceError(ctx *appcontext.Context, c *gin.Context, err error, genericMsg string) {
	var validationErr *dataset.ValidationError
	var batchErr *dataset.BatchValidationError

	switch {
	case errors.Is(err, dataset.ErrDatasetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Dataset not found"})
	case errors.Is(err, dataset.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Record not found"})
	case errors.Is(err, dataset.ErrRecordNotInDataset):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Record does not belong to this dataset"})
	case errors.Is(err, dataset.ErrMissingName):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required field: name"})
	case errors.Is(err, dataset.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing or empty records array"})
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported export format"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":       false,
			"error":         "Missing required fields",
			"missingFields": validationErr.MissingFields,
		})
	case errors.As(err, &batchErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":          false,
			"error":            "Batch validation failed",
			"validationErrors": batchErr.Items,
		})
	default:
		ctx.Logger.Error(genericMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": genericMsg})
	}
}
