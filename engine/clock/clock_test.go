package clock

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTockReportsDeltaAndElapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(WithTimeSource(ft.now))

	ft.advance(16 * time.Millisecond)
	tick := c.Tock()
	if !approx(float64(tick.Delta), 0.016) {
		t.Errorf("Delta = %v, want 0.016", tick.Delta)
	}
	if !approx(tick.Elapsed, 0.016) {
		t.Errorf("Elapsed = %v, want 0.016", tick.Elapsed)
	}
	if tick.Frame != 1 {
		t.Errorf("Frame = %d, want 1", tick.Frame)
	}

	ft.advance(34 * time.Millisecond)
	tick = c.Tock()
	if !approx(float64(tick.Delta), 0.034) {
		t.Errorf("Delta = %v, want 0.034", tick.Delta)
	}
	if !approx(tick.Elapsed, 0.05) {
		t.Errorf("Elapsed = %v, want 0.05", tick.Elapsed)
	}
}

func TestTockMonotonic(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(WithTimeSource(ft.now))

	steps := []time.Duration{5 * time.Millisecond, 0, -20 * time.Millisecond, 40 * time.Millisecond, time.Microsecond}
	var prev Tick
	for i, step := range steps {
		ft.advance(step)
		tick := c.Tock()
		if tick.Delta < 0 {
			t.Errorf("step %d: Delta = %v, want >= 0", i, tick.Delta)
		}
		if tick.Elapsed < prev.Elapsed {
			t.Errorf("step %d: Elapsed = %v went backwards from %v", i, tick.Elapsed, prev.Elapsed)
		}
		prev = tick
	}
}

func TestTockRealTime(t *testing.T) {
	c := NewClock()
	var prev Tick
	for i := 0; i < 100; i++ {
		tick := c.Tock()
		if tick.Delta < 0 || tick.Elapsed < prev.Elapsed {
			t.Fatalf("tick %d not monotonic: %+v after %+v", i, tick, prev)
		}
		prev = tick
	}
}

func TestMaxDelta(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(WithTimeSource(ft.now), WithMaxDelta(100*time.Millisecond))

	ft.advance(5 * time.Second)
	tick := c.Tock()
	if !approx(float64(tick.Delta), 0.1) {
		t.Errorf("Delta = %v, want 0.1", tick.Delta)
	}
	if !approx(tick.Elapsed, 5) {
		t.Errorf("Elapsed = %v, want 5", tick.Elapsed)
	}
}
