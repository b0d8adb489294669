package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdelrazek97/form-app/model"
	"go.uber.org/zap"
)

// jobLogRetention is how long cron_job_logs rows are kept
const jobLogRetention = 30 * 24 * time.Hour

// CleanupExpiredTokens deletes revoked session tokens that have expired anyway
func (m *CronManager) CleanupExpiredTokens(ctx context.Context) (string, error) {
	removed, err := m.blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to cleanup token blacklist: %w", err)
	}
	active, err := m.blacklist.ActiveCount(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count revoked tokens: %w", err)
	}
	return fmt.Sprintf("removed %d expired tokens, %d still revoked", removed, active), nil
}

// LogKPISnapshot computes the KPI summary and writes it to the log
func (m *CronManager) LogKPISnapshot(ctx context.Context) (string, error) {
	report, err := m.reports.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to compute KPI snapshot: %w", err)
	}

	fields := []zap.Field{
		zap.Int64("users", report.Users),
		zap.Int64("faculty", report.Faculty),
	}
	for _, ind := range report.Indicators {
		fields = append(fields, zap.Int64(ind.Key, ind.Count))
		if ind.HasPercent {
			fields = append(fields, zap.Int(ind.Key+"_percent", ind.Percent))
		}
	}
	m.log.Info("kpi snapshot", fields...)

	return fmt.Sprintf("%d indicators over %d faculty", len(report.Indicators), report.Faculty), nil
}

// CleanupJobLogs drops job history older than the retention window
func (m *CronManager) CleanupJobLogs(ctx context.Context) (string, error) {
	cutoff := time.Now().Add(-jobLogRetention)
	result := m.db.WithContext(ctx).Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		return "", fmt.Errorf("failed to cleanup job logs: %w", result.Error)
	}
	return fmt.Sprintf("removed %d job logs", result.RowsAffected), nil
}
