package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/dataset"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/utils"
)

// datasetID parses the dataset path parameter. An id that is not a UUID
// cannot resolve, so it is reported the same way as an unknown dataset.
func datasetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("datasetID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Dataset not found"})
		return uuid.Nil, false
	}
	return id, true
}

func callerID(ctx *appcontext.Context, c *gin.Context) (string, bool) {
	userID, err := utils.GetUserIDFromClaims(c)
	if err != nil {
		ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

func CreateDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}

		var input dataset.CreateDatasetInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		svc := dataset.NewService(ctx)
		ds, err := svc.CreateDataset(input, userID)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to create dataset")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": ds})
	}
}

func ListDatasets(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerID(ctx, c); !ok {
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				limit = parsed
			}
		}

		svc := dataset.NewService(ctx)
		datasets, err := svc.ListDatasets(entity.DatasetStatus(c.Query("status")), limit)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to list datasets")
			return
		}
		if datasets == nil {
			datasets = []entity.Dataset{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": datasets})
	}
}

func GetDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerID(ctx, c); !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		svc := dataset.NewService(ctx)
		ds, err := svc.GetDataset(id)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to fetch dataset")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": ds})
	}
}

func UpdateDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		var input dataset.UpdateDatasetInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		svc := dataset.NewService(ctx)
		ds, err := svc.UpdateDataset(id, input, userID)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to update dataset")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": ds})
	}
}

func DeleteDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		svc := dataset.NewService(ctx)
		if err := svc.DeleteDataset(id, userID); err != nil {
			handleServiceError(ctx, c, err, "Failed to delete dataset")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Dataset deleted successfully"})
	}
}
