package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/dataset"
)

func GetDatasetAnalytics(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerID(ctx, c); !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		svc := dataset.NewService(ctx)
		analytics, err := svc.Analyze(id)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to fetch analytics")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": analytics})
	}
}
