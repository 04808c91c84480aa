package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

func TestSimulatedEveryFiresEachInterval(t *testing.T) {
	t.Parallel()
	s := NewSimulated(epoch)
	var seen []time.Duration
	s.Every(100*time.Millisecond, func() { seen = append(seen, s.Now().Sub(epoch)) })

	s.Advance(350 * time.Millisecond)

	require.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, seen)
	require.Equal(t, epoch.Add(350*time.Millisecond), s.Now())
}

func TestSimulatedAfterFiresOnce(t *testing.T) {
	t.Parallel()
	s := NewSimulated(epoch)
	calls := 0
	s.After(time.Second, func() { calls++ })

	s.Advance(999 * time.Millisecond)
	require.Equal(t, 0, calls)
	s.Advance(time.Millisecond)
	require.Equal(t, 1, calls)
	s.Advance(time.Hour)
	require.Equal(t, 1, calls)
	require.Equal(t, 0, s.Pending())
}

func TestSimulatedTiesRunInRegistrationOrder(t *testing.T) {
	t.Parallel()
	s := NewSimulated(epoch)
	var order []string
	s.After(time.Second, func() { order = append(order, "a") })
	s.Every(time.Second, func() { order = append(order, "b") })
	s.After(time.Second, func() { order = append(order, "c") })

	s.Advance(time.Second)
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSimulatedCallbackCanCancelItself(t *testing.T) {
	t.Parallel()
	s := NewSimulated(epoch)
	calls := 0
	var h Handle
	h = s.Every(time.Second, func() {
		calls++
		if calls == 2 {
			h.Cancel()
		}
	})

	s.Advance(10 * time.Second)
	require.Equal(t, 2, calls)
	h.Cancel()
	require.Equal(t, 0, s.Pending())
}

func TestSimulatedCallbackCanRegister(t *testing.T) {
	t.Parallel()
	s := NewSimulated(epoch)
	var fired time.Time
	s.After(time.Second, func() {
		s.After(500*time.Millisecond, func() { fired = s.Now() })
	})

	s.Advance(2 * time.Second)
	require.Equal(t, epoch.Add(1500*time.Millisecond), fired)
}

func TestSimulatedSetSkipsWithoutFiring(t *testing.T) {
	t.Parallel()
	s := NewSimulated(epoch)
	calls := 0
	s.Every(time.Second, func() { calls++ })

	s.Set(epoch.Add(time.Hour))
	require.Equal(t, 0, calls)

	s.Advance(time.Second)
	require.Equal(t, 1, calls)
}

func TestStopCancelsAndClears(t *testing.T) {
	t.Parallel()
	s := NewSimulated(epoch)
	h := s.Every(time.Second, func() {})
	require.Nil(t, Stop(h))
	require.Nil(t, Stop(nil))
	require.Equal(t, 0, s.Pending())
}
