package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Regenerator rebuilds the trailing series window.
type Regenerator interface {
	Regenerate(reason string)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron    *cron.Cron
	Session Regenerator
	Log     *logrus.Logger
}

// NewScheduler creates a Scheduler whose specs are read in loc.
func NewScheduler(sess Regenerator, loc *time.Location, logger *logrus.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Session: sess,
		Log:     logger,
	}
}

// RegisterAll registers the regeneration task. An empty spec disables it.
func (s *Scheduler) RegisterAll(regenerateCron string) error {
	if regenerateCron == "" {
		s.Log.Info("regeneration schedule disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(regenerateCron, s.regenerateTask); err != nil {
		return fmt.Errorf("register regenerate task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.WithField("jobs", len(s.Cron.Entries())).Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunRegenerateNow executes the regeneration task immediately.
func (s *Scheduler) RunRegenerateNow() {
	s.regenerateTask()
}

func (s *Scheduler) regenerateTask() {
	s.Log.Info("running regenerate task")
	s.Session.Regenerate("scheduled")
}
