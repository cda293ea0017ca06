package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/dataset"
)

func ExportDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		format := dataset.ExportFormat(c.DefaultQuery("format", string(dataset.ExportFormatJSON)))

		svc := dataset.NewService(ctx)
		result, err := svc.ExportRecords(c.Request.Context(), id, format, userID)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to export records")
			return
		}

		response := gin.H{"success": true, "data": result}
		if result.FileURL == "" {
			// No object storage configured; hand the artifact back inline.
			response["content"] = string(result.Content)
		}

		c.JSON(http.StatusCreated, response)
	}
}
