package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/bloom"
)

// Scheduler periodically refreshes the global bloom map cache so map requests
// are served warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *bloom.Service
	interval  time.Duration
}

// New creates a Scheduler around the bloom service.
func New(service *bloom.Service, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
// The first refresh runs immediately so the cache is warm from startup.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(func() {
		log.Println("scheduler: refreshing global bloom map")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		s.service.RefreshGlobalMap(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
