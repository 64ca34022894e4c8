package cron

import (
	"log"
	"time"

	"core/services"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron         *cron.Cron
	housekeeping *services.HousekeepingService
}

func NewScheduler(housekeeping *services.HousekeepingService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:         c,
		housekeeping: housekeeping,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Sweep stale enrollment requests at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runHousekeeping)
	if err != nil {
		log.Printf("Error scheduling housekeeping job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runHousekeeping rejects pending enrollment requests left on matches whose
// deadline already passed.
func (s *Scheduler) runHousekeeping() {
	log.Println("Running enrollment housekeeping job...")

	now := time.Now()

	staleCount, err := s.housekeeping.StalePendingCount(now)
	if err != nil {
		log.Printf("Error checking stale enrollment count: %v", err)
		return
	}

	if staleCount == 0 {
		log.Println("No stale enrollment requests to expire")
		return
	}

	log.Printf("Found %d stale enrollment requests to expire", staleCount)

	swept, err := s.housekeeping.ExpireStaleEnrollments(now)
	if err != nil {
		log.Printf("Error during enrollment housekeeping: %v", err)
		return
	}

	log.Printf("Enrollment housekeeping completed, %d requests expired", swept)
}

// RunNow manually triggers the housekeeping job (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering enrollment housekeeping job...")
	s.runHousekeeping()
}
