package dataset

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

func auditEntries(t *testing.T, svc *Service, datasetID uuid.UUID, action entity.AuditAction) []entity.AuditLog {
	t.Helper()

	logs, err := svc.ListAuditLogs(datasetID, 0)
	require.NoError(t, err)

	var matched []entity.AuditLog
	for _, log := range logs {
		if log.Action == action {
			matched = append(matched, log)
		}
	}
	return matched
}

func TestAuditLog_DatasetLifecycle(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false)

	created := auditEntries(t, svc, ds.ID, entity.AuditActionCreate)
	require.Len(t, created, 1)
	assert.Nil(t, created[0].RecordID)
	assert.Equal(t, "user_123", created[0].ActorID)
	after := created[0].Details["after"].(map[string]interface{})
	assert.Equal(t, "chw-outreach", after["name"])

	newName := "chw-outreach-2025"
	_, err := svc.UpdateDataset(ds.ID, UpdateDatasetInput{Name: &newName}, "user_456")
	require.NoError(t, err)

	updated := auditEntries(t, svc, ds.ID, entity.AuditActionUpdate)
	require.Len(t, updated, 1)
	assert.Equal(t, "user_456", updated[0].ActorID)
	before := updated[0].Details["before"].(map[string]interface{})
	assert.Equal(t, "chw-outreach", before["name"])
	after = updated[0].Details["after"].(map[string]interface{})
	assert.Equal(t, newName, after["name"])

	require.NoError(t, svc.DeleteDataset(ds.ID, "user_123"))
	deleted := auditEntries(t, svc, ds.ID, entity.AuditActionDelete)
	require.Len(t, deleted, 1)
	assert.Nil(t, deleted[0].RecordID)
}

func TestAuditLog_RecordLifecycle(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false)

	record, err := svc.CreateRecord(ds.ID, map[string]interface{}{"name": "Ada"}, "web", "user_123")
	require.NoError(t, err)

	created := auditEntries(t, svc, ds.ID, entity.AuditActionCreate)
	require.Len(t, created, 2)
	var recordEntry *entity.AuditLog
	for i := range created {
		if created[i].RecordID != nil {
			recordEntry = &created[i]
		}
	}
	require.NotNil(t, recordEntry)
	assert.Equal(t, record.ID, *recordEntry.RecordID)
	after := recordEntry.Details["after"].(map[string]interface{})
	assert.Equal(t, "Ada", after["name"])

	_, err = svc.UpdateRecord(record.ID, map[string]interface{}{"name": "Grace"}, "user_456")
	require.NoError(t, err)

	updated := auditEntries(t, svc, ds.ID, entity.AuditActionUpdate)
	require.Len(t, updated, 1)
	require.NotNil(t, updated[0].RecordID)
	assert.Equal(t, record.ID, *updated[0].RecordID)
	before := updated[0].Details["before"].(map[string]interface{})
	assert.Equal(t, "Ada", before["name"])
	after = updated[0].Details["after"].(map[string]interface{})
	assert.Equal(t, "Grace", after["name"])

	require.NoError(t, svc.DeleteRecord(record.ID, "user_123"))
	deleted := auditEntries(t, svc, ds.ID, entity.AuditActionDelete)
	require.Len(t, deleted, 1)
	require.NotNil(t, deleted[0].RecordID)
	assert.Equal(t, record.ID, *deleted[0].RecordID)
}

func TestAuditLog_BatchCreate(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false)

	_, err := svc.BatchCreateRecords(ds.ID, []BatchRecordInput{
		{Data: map[string]interface{}{"name": "Ada"}},
		{Data: map[string]interface{}{"name": "Grace"}},
	}, "user_123")
	require.NoError(t, err)

	created := auditEntries(t, svc, ds.ID, entity.AuditActionCreate)
	require.Len(t, created, 2)
	var batchEntry *entity.AuditLog
	for i := range created {
		if created[i].RecordID == nil && created[i].Details["after"] != nil {
			if after, ok := created[i].Details["after"].(map[string]interface{}); ok {
				if _, hasCount := after["count"]; hasCount {
					batchEntry = &created[i]
				}
			}
		}
	}
	require.NotNil(t, batchEntry)
	after := batchEntry.Details["after"].(map[string]interface{})
	assert.EqualValues(t, 2, after["count"])
}

func TestAuditLog_Export(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false)

	_, err := svc.ExportRecords(context.Background(), ds.ID, ExportFormatJSON, "user_123")
	require.NoError(t, err)

	exported := auditEntries(t, svc, ds.ID, entity.AuditActionExport)
	require.Len(t, exported, 1)
	assert.Equal(t, "json", exported[0].Details["format"])
}

func TestListAuditLogs_Limit(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateRecord(ds.ID, map[string]interface{}{"n": i}, "", "user_123")
		require.NoError(t, err)
	}

	logs, err := svc.ListAuditLogs(ds.ID, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestListAuditLogs_UnknownDataset(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ListAuditLogs(uuid.New(), 0)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}
