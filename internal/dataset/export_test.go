package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

func TestExportRecords_JSON(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false,
		entity.FieldDefinition{Name: "name", Type: entity.FieldTypeString},
	)
	seedRecords(t, svc, ds,
		map[string]interface{}{"name": "Ada"},
		map[string]interface{}{"name": "Grace"},
	)

	result, err := svc.ExportRecords(context.Background(), ds.ID, ExportFormatJSON, "user_123")
	require.NoError(t, err)

	assert.Equal(t, ExportFormatJSON, result.Format)
	assert.Equal(t, 2, result.RecordCount)
	assert.Equal(t, len(result.Content), result.FileSize)
	assert.Empty(t, result.FileURL) // no bucket configured

	var records []entity.DatasetRecord
	require.NoError(t, json.Unmarshal(result.Content, &records))
	assert.Len(t, records, 2)
}

func TestExportRecords_CSVFollowsSchemaOrder(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false,
		entity.FieldDefinition{Name: "name", Type: entity.FieldTypeString},
		entity.FieldDefinition{Name: "age", Type: entity.FieldTypeNumber},
	)
	record, err := svc.CreateRecord(ds.ID, map[string]interface{}{"age": 34, "name": "Ada"}, "", "user_123")
	require.NoError(t, err)

	result, err := svc.ExportRecords(context.Background(), ds.ID, ExportFormatCSV, "user_123")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(result.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"id", "name", "age", "createdAt"}, rows[0])
	assert.Equal(t, record.ID.String(), rows[1][0])
	assert.Equal(t, "Ada", rows[1][1])
	assert.Equal(t, "34", rows[1][2])
}

func TestExportRecords_SkipsDeletedRecords(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false)

	record, err := svc.CreateRecord(ds.ID, map[string]interface{}{"n": 1}, "", "user_123")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRecord(record.ID, "user_123"))

	result, err := svc.ExportRecords(context.Background(), ds.ID, ExportFormatJSON, "user_123")
	require.NoError(t, err)
	assert.Equal(t, 0, result.RecordCount)
}

func TestExportRecords_UnsupportedFormat(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false)

	_, err := svc.ExportRecords(context.Background(), ds.ID, ExportFormat("xlsx"), "user_123")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

type fakeObjectWriter struct {
	writeErr error
	closeErr error
	written  int
	closed   bool
}

func (w *fakeObjectWriter) Write(p []byte) (int, error) {
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	w.written += len(p)
	return len(p), nil
}

func (w *fakeObjectWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func TestWriteObject_ClosesWriterOnWriteFailure(t *testing.T) {
	w := &fakeObjectWriter{writeErr: errors.New("stream reset")}

	err := writeObject(w, []byte("payload"))
	assert.ErrorContains(t, err, "stream reset")
	assert.True(t, w.closed)
}

func TestWriteObject_ReportsCloseFailure(t *testing.T) {
	w := &fakeObjectWriter{closeErr: errors.New("finalize failed")}

	err := writeObject(w, []byte("payload"))
	assert.ErrorContains(t, err, "finalize failed")
	assert.Equal(t, len("payload"), w.written)
}

func TestWriteObject_Success(t *testing.T) {
	w := &fakeObjectWriter{}

	require.NoError(t, writeObject(w, []byte("payload")))
	assert.True(t, w.closed)
	assert.Equal(t, len("payload"), w.written)
}
