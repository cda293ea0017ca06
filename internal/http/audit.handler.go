package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/dataset"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

func ListAuditLogs(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerID(ctx, c); !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				limit = parsed
			}
		}

		svc := dataset.NewService(ctx)
		logs, err := svc.ListAuditLogs(id, limit)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to fetch audit logs")
			return
		}
		if logs == nil {
			logs = []entity.AuditLog{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": logs})
	}
}
