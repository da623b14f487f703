package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const refreshTimeout = 30 * time.Second

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	dashboardRefreshJob *DashboardRefreshJob
}

func NewJobManager(refresher Refresher, refreshSchedule string, logger *zap.Logger) *JobManager {
	return &JobManager{
		dashboardRefreshJob: NewDashboardRefreshJob(refresher, refreshSchedule, refreshTimeout, logger),
	}
}

// StartAll returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dashboardRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start dashboard refresh job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.dashboardRefreshJob.Stop()
}
