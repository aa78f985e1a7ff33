package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/internal/config"
)

type mockMeetings struct {
	mock.Mock
}

func (m *mockMeetings) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMeetings) RemindBetween(ctx context.Context, from, to time.Time, lead string) (int, error) {
	args := m.Called(ctx, from, to, lead)
	return args.Int(0), args.Error(1)
}

var specs = config.JobsConfig{
	StatusUpdateSpec:     "*/15 * * * *",
	ReminderDailySpec:    "0 10 * * *",
	ReminderIntervalSpec: "*/10 * * * *",
}

func newTestScheduler(t *testing.T, meetings MeetingJobs, now time.Time) *Scheduler {
	t.Helper()
	s, err := NewScheduler(specs, meetings, time.UTC)
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler(specs, &mockMeetings{}, time.UTC)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 3)

	bad := specs
	bad.ReminderDailySpec = "every day"
	_, err = NewScheduler(bad, &mockMeetings{}, time.UTC)
	assert.ErrorContains(t, err, "meeting_reminder_daily")
}

func TestScheduler_Windows(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("status update passes the clock", func(t *testing.T) {
		m := &mockMeetings{}
		m.On("ExpirePast", ctx, now).Return(int64(2), nil).Once()
		newTestScheduler(t, m, now).UpdateStatuses(ctx)
		m.AssertExpectations(t)
	})

	t.Run("daily reminder covers the rest of the day", func(t *testing.T) {
		m := &mockMeetings{}
		end := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
		m.On("RemindBetween", ctx, now, end, TodayLead).Return(1, nil).Once()
		newTestScheduler(t, m, now).RemindToday(ctx)
		m.AssertExpectations(t)
	})

	t.Run("interval reminder covers the next hour's last ten minutes", func(t *testing.T) {
		m := &mockMeetings{}
		m.On("RemindBetween", ctx, now.Add(50*time.Minute), now.Add(time.Hour), SoonLead).Return(0, nil).Once()
		newTestScheduler(t, m, now).RemindSoon(ctx)
		m.AssertExpectations(t)
	})

	t.Run("failures are logged not raised", func(t *testing.T) {
		m := &mockMeetings{}
		m.On("ExpirePast", ctx, now).Return(int64(0), errors.New("mongo down")).Once()
		m.On("RemindBetween", ctx, mock.Anything, mock.Anything, SoonLead).Return(0, errors.New("mongo down")).Once()
		s := newTestScheduler(t, m, now)
		assert.NotPanics(t, func() {
			s.UpdateStatuses(ctx)
			s.RemindSoon(ctx)
		})
		m.AssertExpectations(t)
	})
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(t, &mockMeetings{}, time.Now())
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
