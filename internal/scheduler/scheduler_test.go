package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRegenerator struct {
	calls  atomic.Int32
	reason atomic.Value
}

func (c *countingRegenerator) Regenerate(reason string) {
	c.calls.Add(1)
	c.reason.Store(reason)
}

func newTestScheduler() (*Scheduler, *countingRegenerator) {
	logger, _ := test.NewNullLogger()
	reg := &countingRegenerator{}
	return NewScheduler(reg, time.UTC, logger), reg
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler()
	require.NoError(t, s.RegisterAll("0 0 0 * * *"))
	assert.Len(t, s.Cron.Entries(), 1)

	next := s.Cron.Entries()[0].Schedule.Next(time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC))
	assert.True(t, next.Equal(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)), next.String())
}

func TestRegisterAll_Disabled(t *testing.T) {
	s, _ := newTestScheduler()
	require.NoError(t, s.RegisterAll(""))
	assert.Empty(t, s.Cron.Entries())
}

func TestRegisterAll_BadSpec(t *testing.T) {
	s, _ := newTestScheduler()
	err := s.RegisterAll("every midnight")
	assert.ErrorContains(t, err, "register regenerate task")
}

func TestRunRegenerateNow(t *testing.T) {
	s, reg := newTestScheduler()
	s.RunRegenerateNow()
	assert.Equal(t, int32(1), reg.calls.Load())
	assert.Equal(t, "scheduled", reg.reason.Load())
}

func TestStartStop(t *testing.T) {
	s, reg := newTestScheduler()
	require.NoError(t, s.RegisterAll("* * * * * *"))
	s.Start()
	assert.Eventually(t, func() bool { return reg.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}
