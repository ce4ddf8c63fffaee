// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs run on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to publish pending domain events from the outbox to Kafka
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, batchSize, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty outbox is the normal idle state and is not logged. Every other
// failure is logged and retried on the next tick; a tick still running when
// the next one fires is skipped.
package jobs
