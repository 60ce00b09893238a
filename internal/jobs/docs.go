// Package jobs provides scheduled background tasks for the fulfillment
// service, built on github.com/robfig/cron/v3.
//
// OrderAdvanceJob sweeps every store each tick and advances every order that
// has not reached Complete. Outcomes such as "no courier free" or
// "insufficient stock, retry later" are not errors; the next tick simply
// tries again. Ticks never overlap: a tick that finds the previous sweep
// still running is skipped.
//
//	jobManager := jobs.NewJobManager(advancePendingHandler, jobs.EverySecond, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
