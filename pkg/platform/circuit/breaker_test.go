package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// outcome is what a provider call came back with, as the orchestrator feeds it.
type outcome string

const (
	timeout  outcome = "timeout"
	outage   outcome = "503"
	verified outcome = "verified"
	rejected outcome = "rejected"
)

// feed records outcomes and counts the transitions they caused.
func feed(b *Breaker, outcomes ...outcome) (opened, closed int) {
	for _, o := range outcomes {
		var change StateChange
		switch o {
		case timeout, outage:
			_, change = b.RecordFailure()
		default:
			_, change = b.RecordSuccess()
		}
		if change.Opened {
			opened++
		}
		if change.Closed {
			closed++
		}
	}
	return opened, closed
}

func TestBreakerFollowsProviderOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		outcomes   []outcome
		wantState  State
		wantOpened int
		wantClosed int
	}{
		{
			name:      "fresh provider is closed",
			wantState: StateClosed,
		},
		{
			name:      "failures under the threshold keep it closed",
			opts:      []Option{WithFailureThreshold(3)},
			outcomes:  []outcome{timeout, outage},
			wantState: StateClosed,
		},
		{
			name:       "consecutive timeouts open it once",
			opts:       []Option{WithFailureThreshold(3)},
			outcomes:   []outcome{timeout, timeout, outage, timeout},
			wantState:  StateOpen,
			wantOpened: 1,
		},
		{
			name:      "a definitive answer resets the failure run",
			opts:      []Option{WithFailureThreshold(3)},
			outcomes:  []outcome{timeout, outage, rejected, timeout, outage},
			wantState: StateClosed,
		},
		{
			name:       "recovery needs the success threshold",
			opts:       []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			outcomes:   []outcome{outage, verified},
			wantState:  StateOpen,
			wantOpened: 1,
		},
		{
			name:       "recovered provider closes",
			opts:       []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			outcomes:   []outcome{outage, verified, rejected},
			wantState:  StateClosed,
			wantOpened: 1,
			wantClosed: 1,
		},
		{
			name:       "a relapse restarts the recovery count",
			opts:       []Option{WithFailureThreshold(1), WithSuccessThreshold(3)},
			outcomes:   []outcome{timeout, verified, verified, timeout, verified, verified},
			wantState:  StateOpen,
			wantOpened: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("FINANALYZ", tt.opts...)

			opened, closed := feed(b, tt.outcomes...)

			assert.Equal(t, tt.wantState, b.State())
			assert.Equal(t, tt.wantOpened, opened)
			assert.Equal(t, tt.wantClosed, closed)
		})
	}
}

func TestBreakerFallbackSignal(t *testing.T) {
	b := New("ZOOP", WithFailureThreshold(2))

	useFallback, _ := b.RecordFailure()
	assert.False(t, useFallback)
	useFallback, _ = b.RecordFailure()
	assert.True(t, useFallback)

	usePrimary, _ := b.RecordSuccess()
	assert.False(t, usePrimary, "one answer from an open provider is not enough")
}

func TestBreakerCooldownAdmitsOneProbe(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := New("DIGITAP",
		WithFailureThreshold(2),
		WithSuccessThreshold(1),
		WithCooldown(30*time.Second),
		WithClock(func() time.Time { return now }),
	)
	require.True(t, b.Allow())

	feed(b, timeout, timeout)
	assert.False(t, b.Allow())

	now = now.Add(29 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	require.True(t, b.Allow())

	feed(b, outage)
	assert.False(t, b.Allow(), "a failed probe restarts the cooldown")

	now = now.Add(30 * time.Second)
	require.True(t, b.Allow())
	_, closed := feed(b, verified)
	assert.Equal(t, 1, closed)
	assert.Equal(t, "closed", b.State().String())
}
