package state

import (
	"slices"
	"testing"

	"github.com/Carmen-Shannon/fever/common"
	"github.com/Carmen-Shannon/fever/engine/clock"
	"github.com/Carmen-Shannon/fever/engine/input"
)

func TestStateSystemRunsUpdatersInOrder(t *testing.T) {
	var calls []string
	record := func(name string) Updater {
		return UpdaterFunc(func(tick clock.Tick, in *input.InputState) {
			calls = append(calls, name)
		})
	}
	s := NewStateSystem(record("a"), nil, record("b"))
	s.Add(record("c"))
	s.Add(nil)

	s.Update(clock.Tick{Frame: 1}, &input.InputState{})
	s.Update(clock.Tick{Frame: 2, Delta: 0.5, Elapsed: 1}, &input.InputState{})

	want := []string{"a", "b", "c", "a", "b", "c"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if s.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", s.Ticks())
	}
	if got := s.LastTick(); got.Frame != 2 || got.Delta != 0.5 || got.Elapsed != 1 {
		t.Errorf("LastTick() = %+v", got)
	}
}

func TestUpdaterSeesInputSnapshot(t *testing.T) {
	in := input.NewInputSystem()
	in.UpdateKeyboard(common.KeySpace, common.ActionPress)

	var down, held bool
	s := NewStateSystem(UpdaterFunc(func(tick clock.Tick, st *input.InputState) {
		down = st.Keys.IsDown(common.KeySpace)
		held = st.Keys.IsHeld(common.KeySpace)
	}))
	s.Update(clock.Tick{}, in.CurrentState())

	if !down || !held {
		t.Errorf("IsDown = %v, IsHeld = %v, want both true", down, held)
	}
}

func TestEmptyStateSystem(t *testing.T) {
	s := NewStateSystem()
	s.Update(clock.Tick{Frame: 7}, nil)
	if s.Ticks() != 1 || s.LastTick().Frame != 7 {
		t.Errorf("Ticks() = %d, LastTick() = %+v", s.Ticks(), s.LastTick())
	}
}
