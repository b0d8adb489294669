package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdelrazek97/form-app/database/dbtest"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *CronManager {
	db := dbtest.New(t)
	return NewCronManager(db, services.NewReportService(db), zap.NewNop())
}

func TestCleanupExpiredTokensJob(t *testing.T) {
	m := newManager(t)
	user := model.User{Username: "mona", Password: "x", Role: model.RoleUser}
	require.NoError(t, m.db.Create(&user).Error)
	require.NoError(t, m.db.Create(&model.JWTTokenBlacklist{
		Token: "expired", UserID: user.ID, Reason: "logout", ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)
	require.NoError(t, m.db.Create(&model.JWTTokenBlacklist{
		Token: "live", UserID: user.ID, Reason: "logout", ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	m.Run("cleanup_token_blacklist", m.CleanupExpiredTokens)

	var remaining []model.JWTTokenBlacklist
	require.NoError(t, m.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].Token)

	var entry model.CronJobLog
	require.NoError(t, m.db.Where("job_name = ?", "cleanup_token_blacklist").First(&entry).Error)
	assert.Equal(t, StatusCompleted, entry.Status)
	assert.Equal(t, "removed 1 expired tokens, 1 still revoked", entry.Message)
	assert.NotNil(t, entry.CompletedAt)
}

func TestFailedJobIsRecorded(t *testing.T) {
	m := newManager(t)

	m.Run("broken", func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	})

	var entry model.CronJobLog
	require.NoError(t, m.db.Where("job_name = ?", "broken").First(&entry).Error)
	assert.Equal(t, StatusFailed, entry.Status)
	assert.Equal(t, "boom", entry.ErrorMsg)
}

func TestKPISnapshotJob(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.db.Create(&model.User{Username: "admin", Password: "x", Role: model.RoleAdmin}).Error)

	msg, err := m.LogKPISnapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, msg, "over 0 faculty")
}

func TestCleanupJobLogs(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.db.Create(&model.CronJobLog{
		JobName: "old", Status: StatusCompleted, StartedAt: time.Now().Add(-60 * 24 * time.Hour),
	}).Error)
	require.NoError(t, m.db.Create(&model.CronJobLog{
		JobName: "recent", Status: StatusCompleted, StartedAt: time.Now(),
	}).Error)

	msg, err := m.CleanupJobLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "removed 1 job logs", msg)
}

func TestStartRegistersJobs(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.Start())
	defer m.Stop()

	assert.Len(t, m.cron.Entries(), 3)
}
