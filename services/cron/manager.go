package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Job status values stored in cron_job_logs
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Schedules use the six field format with seconds
const (
	BlacklistCleanupSchedule = "0 0 * * * *"
	KPISnapshotSchedule      = "0 0 6 * * *"
	LogRetentionSchedule     = "0 30 2 * * *"
)

// CronManager manages all scheduled jobs
type CronManager struct {
	cron      *cron.Cron
	db        *gorm.DB
	blacklist *auth.BlacklistService
	reports   *services.ReportService
	log       *zap.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, reports *services.ReportService, log *zap.Logger) *CronManager {
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		db:        db,
		blacklist: auth.NewBlacklistService(db),
		reports:   reports,
		log:       log.Named("cron"),
	}
}

// Start registers every job and starts the scheduler
func (m *CronManager) Start() error {
	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()
	m.log.Info("cron jobs started", zap.Int("jobs", len(m.cron.Entries())))
	return nil
}

// Stop waits for running jobs to finish
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron jobs stopped")
}

func (m *CronManager) registerJobs() error {
	jobs := []struct {
		name     string
		schedule string
		run      func(ctx context.Context) (string, error)
	}{
		{"cleanup_token_blacklist", BlacklistCleanupSchedule, m.CleanupExpiredTokens},
		{"kpi_snapshot", KPISnapshotSchedule, m.LogKPISnapshot},
		{"cleanup_job_logs", LogRetentionSchedule, m.CleanupJobLogs},
	}

	for _, job := range jobs {
		job := job
		if _, err := m.cron.AddFunc(job.schedule, func() { m.Run(job.name, job.run) }); err != nil {
			return fmt.Errorf("failed to register %s: %w", job.name, err)
		}
	}
	return nil
}

// Run executes one job and records it in cron_job_logs
func (m *CronManager) Run(name string, run func(ctx context.Context) (string, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	entry := m.logJobStart(name)
	message, err := run(ctx)
	if err != nil {
		m.logJobError(entry, err)
		return
	}
	m.logJobComplete(entry, message)
}

func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	m.log.Info("job started", zap.String("job", jobName))

	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	if err := m.db.Create(entry).Error; err != nil {
		m.log.Warn("failed to record job start", zap.String("job", jobName), zap.Error(err))
	}
	return entry
}

func (m *CronManager) logJobComplete(entry *model.CronJobLog, message string) {
	m.log.Info("job completed", zap.String("job", entry.JobName), zap.String("message", message))
	m.finish(entry, map[string]interface{}{
		"status":  StatusCompleted,
		"message": message,
	})
}

func (m *CronManager) logJobError(entry *model.CronJobLog, err error) {
	m.log.Error("job failed", zap.String("job", entry.JobName), zap.Error(err))
	m.finish(entry, map[string]interface{}{
		"status":    StatusFailed,
		"error_msg": err.Error(),
	})
}

func (m *CronManager) finish(entry *model.CronJobLog, updates map[string]interface{}) {
	if entry.ID == 0 {
		return
	}
	now := time.Now()
	updates["completed_at"] = now
	updates["duration"] = now.Sub(entry.StartedAt).Milliseconds()
	if err := m.db.Model(entry).Updates(updates).Error; err != nil {
		m.log.Warn("failed to record job result", zap.String("job", entry.JobName), zap.Error(err))
	}
}
