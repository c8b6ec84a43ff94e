// Package schedule owns the fixed list of daily publication times. Each
// configured wall-clock time gets one recurring timer; every fire triggers a
// full generate-and-publish pipeline run independently of the other slots.
package schedule

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"influencer-pipeline/monitoring"
	"influencer-pipeline/types"
)

// Runner executes one full generate-and-publish pipeline run.
type Runner interface {
	CreateAndPublish(ctx context.Context) (types.PublishOutcome, error)
}

// Recorder persists the outcome of a scheduled publish.
type Recorder interface {
	Record(outcome types.PublishOutcome) error
}

// Scheduler installs one recurring daily timer per configured HH:MM time.
type Scheduler struct {
	log      *logrus.Logger
	times    []string
	runner   Runner
	recorder Recorder
	metrics  *monitoring.Metrics

	mu   sync.Mutex
	cron *cron.Cron
	now  func() time.Time
}

// New creates a stopped Scheduler for the given local wall-clock times.
func New(times []string, runner Runner, recorder Recorder, logger *logrus.Logger, metrics *monitoring.Metrics) *Scheduler {
	return &Scheduler{
		log:      logger,
		times:    times,
		runner:   runner,
		recorder: recorder,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Start installs one recurring timer per configured time. Calling it while
// timers are already installed first cancels all existing timers, so a
// re-start never produces duplicate firing. Duplicate configured times
// produce duplicate independent timers.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}

	c := cron.New()
	for _, t := range s.times {
		hour, minute, err := parseClock(t)
		if err != nil {
			return fmt.Errorf("schedule time %q: %w", t, err)
		}
		slot := t
		spec := fmt.Sprintf("%d %d * * *", minute, hour)
		if _, err := c.AddFunc(spec, func() { s.runSlot(slot) }); err != nil {
			return fmt.Errorf("schedule time %q: %w", t, err)
		}
		s.log.WithField("time", t).Info("Scheduled daily publication")
	}
	c.Start()
	s.cron = c

	s.log.WithField("count", len(s.times)).Info("Content scheduler started")
	return nil
}

// Stop cancels all installed timers. The scheduler stays inert until Start
// is called again.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	s.log.Info("Content scheduler stopped")
}

// ActiveTimers returns the number of currently installed timers.
func (s *Scheduler) ActiveTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

// runSlot is one scheduled fire. A failed run is logged and swallowed: it
// does not cancel, reschedule, or retry anything.
func (s *Scheduler) runSlot(slot string) {
	s.log.WithField("time", slot).Info("Executing scheduled publication")

	outcome, err := s.runner.CreateAndPublish(context.Background())
	if err != nil {
		s.log.WithError(err).WithField("time", slot).Error("Scheduled publication failed")
		s.metrics.ScheduledRun("error")
		return
	}

	if err := s.recorder.Record(outcome); err != nil {
		s.log.WithError(err).Error("Failed to record publish history")
	}
	s.metrics.ScheduledRun("success")
	s.log.WithField("content_id", outcome.ContentID).Info("Scheduled publication succeeded")
}

// UpcomingSchedule computes, for each configured time, its next future
// occurrence (today if not yet passed, else tomorrow), sorted ascending.
// It is read-only and works whether or not the scheduler is running.
func (s *Scheduler) UpcomingSchedule() []types.ScheduleEntry {
	now := s.now()
	entries := make([]types.ScheduleEntry, 0, len(s.times))

	for _, t := range s.times {
		hour, minute, err := parseClock(t)
		if err != nil {
			s.log.WithField("time", t).Warn("Skipping malformed schedule time")
			continue
		}
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if next.Before(now) {
			next = next.AddDate(0, 0, 1)
		}
		entries = append(entries, types.ScheduleEntry{
			ScheduledTime: t,
			ScheduledDate: next,
			TimeUntil:     int(math.Round(next.Sub(now).Minutes())),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ScheduledDate.Before(entries[j].ScheduledDate)
	})
	return entries
}

// parseClock parses a local wall-clock "HH:MM" string.
func parseClock(t string) (hour, minute int, err error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour %q", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute %q", parts[1])
	}
	return hour, minute, nil
}
