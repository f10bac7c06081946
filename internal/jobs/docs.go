// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ReconciliationJob runs the task reconciler over every scheduled work order
// on a cron schedule with a seconds field (RECONCILE_SCHEDULE, default
// DefaultReconcileSchedule). In the steady state it writes nothing.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the job keeps its schedule. Orders that failed
// are retried on the next run.
package jobs
