package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/codestudio_arena/service/exporter/common"
	"github.com/to404hanga/codestudio_arena/service/exporter/factory"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Attempt{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedAttempts(t *testing.T, svc AttemptService, base time.Time) {
	t.Helper()
	ctx := context.Background()
	attempts := []model.Attempt{
		{EventID: "evt1", ProblemID: "p1", Type: model.ResultTypeRun, Language: "cpp", Code: "a", Status: "FAILED", Passed: 1, Total: 2, CreatedAt: base},
		{EventID: "evt1", ProblemID: "p1", Type: model.ResultTypeSubmit, Language: "cpp", Code: "b", Status: "ACCEPTED", Passed: 3, Total: 3, Accepted: true, CreatedAt: base.Add(time.Minute)},
		{EventID: "evt1", ProblemID: "p2", Type: model.ResultTypeSubmit, Language: "python", Code: "c", Status: "WRONG_ANSWER", Passed: 0, Total: 3, CreatedAt: base.Add(2 * time.Minute)},
		{EventID: "evt2", ProblemID: "p9", Type: model.ResultTypeRun, Language: "java", Code: "d", Status: "PASSED", Passed: 1, Total: 1, Accepted: true, CreatedAt: base},
	}
	for i := range attempts {
		require.NoError(t, svc.Record(ctx, &attempts[i]))
		assert.NotZero(t, attempts[i].ID)
	}
}

func TestAttemptServiceRecordAndList(t *testing.T) {
	svc := NewAttemptService(newTestDB(t), loggerv2.NewZapLogger(zap.NewNop()))
	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	seedAttempts(t, svc, base)

	list, total, err := svc.GetAttemptList(context.Background(), "evt1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ProblemID)
	assert.Equal(t, model.ResultTypeSubmit, list[1].Type)

	list, total, err = svc.GetAttemptList(context.Background(), "evt1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 1)
	assert.Equal(t, model.ResultTypeRun, list[0].Type)
}

func TestAttemptServiceRecordFillsCreatedAt(t *testing.T) {
	svc := NewAttemptService(newTestDB(t), loggerv2.NewZapLogger(zap.NewNop()))
	attempt := &model.Attempt{EventID: "evt1", ProblemID: "p1", Type: model.ResultTypeRun}
	require.NoError(t, svc.Record(context.Background(), attempt))
	assert.False(t, attempt.CreatedAt.IsZero())
}

func TestAttemptServiceCleanFailedAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db, loggerv2.NewZapLogger(zap.NewNop()))
	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	seedAttempts(t, svc, base)

	// 截止时间之后的 WA 不受影响
	cleaned, err := svc.CleanFailedAttempts(context.Background(), base.Add(90*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleaned)

	var attempts []model.Attempt
	require.NoError(t, db.Order("id ASC").Find(&attempts).Error)
	require.Len(t, attempts, 4)
	assert.Equal(t, CleanedCodePlaceholder, attempts[0].Code)
	assert.Equal(t, "b", attempts[1].Code)
	assert.Equal(t, "c", attempts[2].Code)
	assert.Equal(t, "d", attempts[3].Code)

	// 已清理的记录不重复计数
	cleaned, err = svc.CleanFailedAttempts(context.Background(), base.Add(90*time.Second))
	require.NoError(t, err)
	assert.Zero(t, cleaned)
}

func TestAttemptServiceExportCSV(t *testing.T) {
	svc := NewAttemptService(newTestDB(t), loggerv2.NewZapLogger(zap.NewNop()))
	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	seedAttempts(t, svc, base)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportAttempts(context.Background(), "evt1", factory.CSVAttemptExporter, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, common.AttemptHeaders, records[0])
	assert.Equal(t, []string{"2026-10-16 10:00:00", "p1", "run", "cpp", "FAILED", "1", "2"}, records[1])
	assert.Equal(t, "WRONG_ANSWER", records[3][4])
}

func TestAttemptServiceExportXLSX(t *testing.T) {
	svc := NewAttemptService(newTestDB(t), loggerv2.NewZapLogger(zap.NewNop()))
	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	seedAttempts(t, svc, base)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportAttempts(context.Background(), "evt1", factory.XLSXAttemptExporter, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, common.AttemptHeaders, rows[0])
	assert.Equal(t, "p2", rows[3][1])
	assert.Equal(t, "3", rows[3][6])
}

func TestAttemptServiceExportUnsupported(t *testing.T) {
	svc := NewAttemptService(newTestDB(t), loggerv2.NewZapLogger(zap.NewNop()))
	var buf bytes.Buffer
	err := svc.ExportAttempts(context.Background(), "evt1", factory.AttemptExporterType("pdf"), &buf)
	assert.Error(t, err)
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "weekly-contest-42-attempts-20261016100000.xlsx",
		factory.FileName("Weekly Contest #42", factory.XLSXAttemptExporter, now))
	assert.Equal(t, "contest-attempts-20261016100000.csv",
		factory.FileName("", factory.CSVAttemptExporter, now))
}
