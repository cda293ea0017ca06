package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
)

var ErrUnsupportedFormat = fmt.Errorf("unsupported export format")

// ExportResult describes a produced export artifact. FileURL is set only when
// the artifact was uploaded to object storage; Content always carries the
// serialized bytes.
type ExportResult struct {
	Format      ExportFormat `json:"format"`
	RecordCount int          `json:"recordCount"`
	FileSize    int          `json:"fileSize"`
	ObjectPath  string       `json:"objectPath,omitempty"`
	FileURL     string       `json:"fileUrl,omitempty"`
	Content     []byte       `json:"-"`
}

// ExportRecords serializes a dataset's active records as JSON or CSV. CSV
// columns follow schema order, prefixed by the record id and suffixed by the
// creation timestamp. When a bucket is configured the artifact is uploaded
// under the dataset's exports prefix.
func (s *Service) ExportRecords(ctx context.Context, datasetID uuid.UUID, format ExportFormat, userID string) (*ExportResult, error) {
	ds, err := s.GetDataset(datasetID)
	if err != nil {
		return nil, err
	}

	var records []entity.DatasetRecord
	err = s.ctx.DB.
		Where("dataset_id = ? AND status = ?", datasetID, entity.RecordStatusActive).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	var content []byte
	switch format {
	case ExportFormatJSON:
		content, err = json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
	case ExportFormatCSV:
		content, err = recordsToCSV(ds.Schema.Data(), records)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	result := &ExportResult{
		Format:      format,
		RecordCount: len(records),
		FileSize:    len(content),
		Content:     content,
	}

	if s.ctx.GCSClient != nil && s.ctx.GCSBucketName != "" {
		objectPath := fmt.Sprintf("datasets/%s/exports/%d.%s", datasetID, time.Now().UTC().Unix(), format)

		w := s.ctx.GCSClient.Bucket(s.ctx.GCSBucketName).Object(objectPath).NewWriter(ctx)
		if err := writeObject(w, content); err != nil {
			return nil, fmt.Errorf("failed to upload export to GCS: %w", err)
		}

		result.ObjectPath = objectPath
		result.FileURL = "https://storage.googleapis.com/" + s.ctx.GCSBucketName + "/" + objectPath
	}

	s.logAudit(datasetID, nil, entity.AuditActionExport, userID, map[string]interface{}{
		"format":      string(format),
		"recordCount": result.RecordCount,
	})

	return result, nil
}

// writeObject streams content into an object writer. The writer is closed on
// every path; an aborted write would otherwise leave the upload session open.
func writeObject(w io.WriteCloser, content []byte) error {
	if _, err := w.Write(content); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func recordsToCSV(schema entity.SchemaDefinition, records []entity.DatasetRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(schema.Fields)+2)
	header = append(header, "id")
	for _, field := range schema.Fields {
		header = append(header, field.Name)
	}
	header = append(header, "createdAt")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, record := range records {
		row := make([]string, 0, len(header))
		row = append(row, record.ID.String())
		for _, field := range schema.Fields {
			row = append(row, stringValue(record.Data[field.Name]))
		}
		row = append(row, record.CreatedAt.UTC().Format(time.RFC3339))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
