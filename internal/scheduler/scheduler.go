package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/spantrek/backend/internal/progression"
	"github.com/spantrek/backend/pkg/logger"
)

// Scheduler runs the recurring maintenance jobs. Currently just the
// midnight daily challenge refresh; the lazy path in the progression
// service covers anything it misses.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       *progression.Service
	log       zerolog.Logger
}

func New(svc *progression.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		log:       logger.With("scheduler"),
	}
}

// Start registers the jobs and runs them in the background.
func (s *Scheduler) Start() {
	if _, err := s.scheduler.Every(1).Day().At("00:00").Do(s.svc.RegenerateAllDailyChallenges); err != nil {
		s.log.Error().Err(err).Msg("failed to schedule daily challenge refresh")
		return
	}
	s.scheduler.StartAsync()
	s.log.Info().Msg("daily challenge refresh scheduled for 00:00 UTC")
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
