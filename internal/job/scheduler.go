package job

import (
	"context"
	"fmt"
	"time"

	"github.com/mbeoliero/kit/log"
	"github.com/robfig/cron/v3"

	"github.com/mbeoliero/realty/internal/config"
)

// MeetingJobs is the meeting logic run on a schedule
type MeetingJobs interface {
	ExpirePast(ctx context.Context, now time.Time) (int64, error)
	RemindBetween(ctx context.Context, from, to time.Time, lead string) (int, error)
}

// Reminder lead texts
const (
	TodayLead = "Reminder: meeting today"
	SoonLead  = "Reminder: meeting in one hour"
)

// Scheduler runs the periodic meeting jobs
type Scheduler struct {
	cron     *cron.Cron
	meetings MeetingJobs
	loc      *time.Location
	now      func() time.Time
}

// NewScheduler registers the meeting jobs with the configured specs
func NewScheduler(cfg config.JobsConfig, meetings MeetingJobs, loc *time.Location) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		meetings: meetings,
		loc:      loc,
		now:      time.Now,
	}

	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context)
	}{
		{"meeting_status_update", cfg.StatusUpdateSpec, s.UpdateStatuses},
		{"meeting_reminder_daily", cfg.ReminderDailySpec, s.RemindToday},
		{"meeting_reminder_interval", cfg.ReminderIntervalSpec, s.RemindSoon},
	}
	for _, j := range jobs {
		run := j.run
		if _, err := s.cron.AddFunc(j.spec, func() { run(context.Background()) }); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", j.name, j.spec, err)
		}
	}
	return s, nil
}

// Start starts the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("job scheduler started: jobs=%d", len(s.cron.Entries()))
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Info("job scheduler stopped")
	case <-ctx.Done():
		log.Warn("job scheduler stop timed out: %v", ctx.Err())
	}
}

// UpdateStatuses moves meetings that are long over to past
func (s *Scheduler) UpdateStatuses(ctx context.Context) {
	n, err := s.meetings.ExpirePast(ctx, s.now())
	if err != nil {
		log.CtxError(ctx, "meeting status update failed: %v", err)
		return
	}
	log.CtxDebug(ctx, "meeting status update done: expired=%d", n)
}

// RemindToday reminds about the meetings left today
func (s *Scheduler) RemindToday(ctx context.Context) {
	now := s.now().In(s.loc)
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, s.loc)
	s.remind(ctx, now, endOfDay, TodayLead)
}

// RemindSoon reminds about the meetings starting in (50m, 60m]
func (s *Scheduler) RemindSoon(ctx context.Context) {
	now := s.now()
	s.remind(ctx, now.Add(50*time.Minute), now.Add(time.Hour), SoonLead)
}

func (s *Scheduler) remind(ctx context.Context, from, to time.Time, lead string) {
	n, err := s.meetings.RemindBetween(ctx, from, to, lead)
	if err != nil {
		log.CtxError(ctx, "meeting reminder failed: lead=%s, error=%v", lead, err)
		return
	}
	if n > 0 {
		log.CtxInfo(ctx, "meeting reminders sent: lead=%s, count=%d", lead, n)
	}
}
