// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order lifecycle requires.
//
// # Available Jobs
//
// 1. PaymentTimeoutJob - Runs every minute to cancel orders whose payment
// confirmation never arrived within the configured timeout.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(staleOrdersHandler, transitionHandler, timeout, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An order picked up by the scan that was paid or cancelled concurrently is
// not an error; the transition handler reports it as not handled and the job
// moves on. Storage errors are logged per order so one failure does not stop
// the sweep.
package jobs
