package cleaner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/codestudio_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestAttemptCleaner(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Attempt{}))

	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	svc := service.NewAttemptService(db, loggerv2.NewZapLogger(zap.NewNop()))
	ctx := context.Background()
	require.NoError(t, svc.Record(ctx, &model.Attempt{EventID: "e", ProblemID: "p", Code: "old", CreatedAt: now.AddDate(0, 0, -10)}))
	require.NoError(t, svc.Record(ctx, &model.Attempt{EventID: "e", ProblemID: "p", Code: "recent", CreatedAt: now.AddDate(0, 0, -1)}))

	c := NewAttemptCleaner(svc, loggerv2.NewZapLogger(zap.NewNop()), 7*24*time.Hour)
	c.now = func() time.Time { return now }
	require.NoError(t, c.RunCleanup(ctx))

	var attempts []model.Attempt
	require.NoError(t, db.Order("id ASC").Find(&attempts).Error)
	require.Len(t, attempts, 2)
	assert.Equal(t, service.CleanedCodePlaceholder, attempts[0].Code)
	assert.Equal(t, "recent", attempts[1].Code)
}

type fakePruner struct {
	before time.Time
	n      int64
	err    error
}

func (f *fakePruner) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return f.n, f.err
}

func TestDraftCleaner(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	p := &fakePruner{n: 3}
	c := NewDraftCleaner(p, loggerv2.NewZapLogger(zap.NewNop()), 30)
	c.now = func() time.Time { return now }

	stats, err := c.cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Deleted)
	assert.Equal(t, now.AddDate(0, 0, -30), p.before)

	p.err = errors.New("db down")
	assert.Error(t, c.RunCleanup(context.Background()))
}
