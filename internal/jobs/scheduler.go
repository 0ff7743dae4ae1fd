// Package jobs runs the background work of the server: cache warming,
// scheduled imports and the email digest.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DigestSender sends the periodic email digest.
type DigestSender interface {
	SendDigest(ctx context.Context) error
}

// Scheduler runs cron-scheduled imports and digests.
type Scheduler struct {
	cron     *cron.Cron
	importer *Importer
	digest   DigestSender
	dir      string
}

// NewScheduler creates a scheduler. importer or digest may be nil to leave
// the matching job out.
func NewScheduler(importer *Importer, dir string, digest DigestSender) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		importer: importer,
		digest:   digest,
		dir:      dir,
	}
}

// SetupJobs registers the import and digest jobs. An empty schedule skips its job.
func (s *Scheduler) SetupJobs(importSchedule, digestSchedule string) error {
	if importSchedule != "" && s.importer != nil {
		if _, err := s.cron.AddFunc(importSchedule, s.runImport); err != nil {
			return err
		}
		slog.Info("scheduled keyword import", "schedule", importSchedule, "dir", s.dir)
	}
	if digestSchedule != "" && s.digest != nil {
		if _, err := s.cron.AddFunc(digestSchedule, s.runDigest); err != nil {
			return err
		}
		slog.Info("scheduled email digest", "schedule", digestSchedule)
	}
	return nil
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) runImport() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	n, errs := s.importer.ImportDir(ctx, s.dir)
	if len(errs) > 0 {
		slog.Error("scheduled import finished with errors", "imported", n, "error", errors.Join(errs...))
		return
	}
	slog.Info("scheduled import finished", "imported", n)
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.digest.SendDigest(ctx); err != nil {
		slog.Error("failed to send digest", "error", err)
		return
	}
	slog.Info("digest sent")
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
