package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher re-reads the dashboard snapshot.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// DashboardRefreshJob polls the backend on a cron schedule.
type DashboardRefreshJob struct {
	refresher Refresher
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewDashboardRefreshJob accepts any standard cron spec or descriptor such as
// "@every 60s". Each run is bounded by timeout.
func NewDashboardRefreshJob(refresher Refresher, schedule string, timeout time.Duration, logger *zap.Logger) *DashboardRefreshJob {
	logger = logger.With(zap.String("component", "dashboard_refresh_job"))
	return &DashboardRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		timeout:   timeout,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
			cron.Recover(cron.DiscardLogger),
		)),
		logger: logger,
	}
}

func (j *DashboardRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("dashboard refresh job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one refresh.
func (j *DashboardRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.refresher.Refresh(ctx); err != nil {
		j.logger.Error("dashboard refresh failed", zap.Error(err))
	}
}

// Stop waits for a running refresh to finish.
func (j *DashboardRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("dashboard refresh job stopped")
}
