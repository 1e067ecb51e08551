package worker

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is a sweeper the scheduler can run on a cron spec.
type Job interface {
	RunOnce(ctx context.Context) error
}

// Scheduler runs registered jobs on cron schedules in the background.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), logger: logger}
}

// Add schedules a job. The spec uses the standard five-field cron format.
func (s *Scheduler) Add(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job.RunOnce(context.Background()); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
		}
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
