// Package scheduler runs the report pipeline once a day at a fixed UTC time.
package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler fires the report job daily at the configured "HH:MM" UTC time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	at        string
	job       func()
	logger    *slog.Logger
}

// New creates a Scheduler for the given daily run time.
func New(at string, job func(), logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		at:        at,
		job:       job,
		logger:    logger,
	}
}

// Start registers the daily job and starts the scheduler in the background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.at).Do(s.job); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("daily report scheduled", "at_utc", s.at)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
