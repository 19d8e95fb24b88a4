package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Warmer computes a city's summary for its cache side effects.
type Warmer interface {
	Warm(ctx context.Context, city string) error
}

// Scheduler periodically re-computes the default city's summary so the
// geocode and weather cache entries stay hot between dashboard loads.
type Scheduler struct {
	scheduler *gocron.Scheduler
	warmer    Warmer
	city      string
	interval  time.Duration

	Logger *zap.SugaredLogger
}

func New(city string, interval time.Duration, warmer Warmer, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		warmer:    warmer,
		city:      city,
		interval:  interval,
		Logger:    logger,
	}
}

func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.Logger.Infow("cache warmer disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.warmer.Warm(ctx, s.city); err != nil {
			s.Logger.Warnw("cache warm failed", "city", s.city, "error", err.Error())
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
