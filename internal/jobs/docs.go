// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are cron based (github.com/robfig/cron/v3, with a seconds field) and are
// started and stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(awaitingDriverJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// AwaitingDriverJob scans for accepted orders that no driver has claimed within a
// threshold and publishes an order.awaiting_driver notification for each. It never
// changes an order; canceling a stale order stays a human decision.
package jobs
