package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/dataset"
)

func recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("recordID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Record not found"})
		return uuid.Nil, false
	}
	return id, true
}

func QueryRecords(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerID(ctx, c); !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		params := dataset.QueryParams{
			DatasetID: id,
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy"),
			SortOrder: c.Query("sortOrder"),
		}
		if raw := c.Query("page"); raw != "" {
			if page, err := strconv.Atoi(raw); err == nil {
				params.Page = page
			}
		}
		if raw := c.Query("pageSize"); raw != "" {
			if pageSize, err := strconv.Atoi(raw); err == nil {
				params.PageSize = pageSize
			}
		}

		svc := dataset.NewService(ctx)
		result, err := svc.QueryRecords(params)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to fetch records")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Records,
			"pagination": gin.H{
				"page":       result.Page,
				"pageSize":   result.PageSize,
				"total":      result.Total,
				"totalPages": result.TotalPages,
			},
		})
	}
}

func CreateRecord(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		var body struct {
			Data   map[string]interface{} `json:"data"`
			Source string                 `json:"source"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}
		if body.Data == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required field: data"})
			return
		}

		svc := dataset.NewService(ctx)
		record, err := svc.CreateRecord(id, body.Data, body.Source, userID)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to create record")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
	}
}

func BatchCreateRecords(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}
		id, ok := datasetID(c)
		if !ok {
			return
		}

		var body struct {
			Records []dataset.BatchRecordInput `json:"records"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		svc := dataset.NewService(ctx)
		records, err := svc.BatchCreateRecords(id, body.Records, userID)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to create records")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    records,
			"count":   len(records),
		})
	}
}

func GetRecord(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerID(ctx, c); !ok {
			return
		}
		dsID, ok := datasetID(c)
		if !ok {
			return
		}
		recID, ok := recordID(c)
		if !ok {
			return
		}

		svc := dataset.NewService(ctx)
		record, err := svc.GetDatasetRecord(dsID, recID)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to fetch record")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
	}
}

func UpdateRecord(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}
		dsID, ok := datasetID(c)
		if !ok {
			return
		}
		recID, ok := recordID(c)
		if !ok {
			return
		}

		var body struct {
			Data map[string]interface{} `json:"data"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}
		if body.Data == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required field: data"})
			return
		}

		svc := dataset.NewService(ctx)
		// Ownership is resolved before any mutation is attempted.
		if _, err := svc.GetDatasetRecord(dsID, recID); err != nil {
			handleServiceError(ctx, c, err, "Failed to fetch record")
			return
		}

		record, err := svc.UpdateRecord(recID, body.Data, userID)
		if err != nil {
			handleServiceError(ctx, c, err, "Failed to update record")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
	}
}

func DeleteRecord(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(ctx, c)
		if !ok {
			return
		}
		dsID, ok := datasetID(c)
		if !ok {
			return
		}
		recID, ok := recordID(c)
		if !ok {
			return
		}

		svc := dataset.NewService(ctx)
		if _, err := svc.GetDatasetRecord(dsID, recID); err != nil {
			handleServiceError(ctx, c, err, "Failed to fetch record")
			return
		}

		if err := svc.DeleteRecord(recID, userID); err != nil {
			handleServiceError(ctx, c, err, "Failed to delete record")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Record deleted successfully"})
	}
}
