// Package jobs provides scheduled background tasks for the discount platform.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(refresher, "@every 60s", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// DashboardRefreshJob polls the backend and replaces the dashboard snapshot. It is
// the fallback producer next to the change feed, so a lost notification is picked up
// on the next tick at the latest.
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Runs never overlap: a tick
// that fires while the previous run is still going is skipped.
package jobs
