// Package state runs the simulation step once per frame.
package state

import (
	"github.com/Carmen-Shannon/fever/engine/clock"
	"github.com/Carmen-Shannon/fever/engine/input"
)

// Updater advances simulation state by one tick. The input state is read-only and
// only valid for the duration of the call.
type Updater interface {
	Update(tick clock.Tick, in *input.InputState)
}

// UpdaterFunc adapts a function to an Updater.
type UpdaterFunc func(tick clock.Tick, in *input.InputState)

func (f UpdaterFunc) Update(tick clock.Tick, in *input.InputState) {
	f(tick, in)
}

// StateSystem runs its updaters in registration order. It is itself an Updater.
type StateSystem struct {
	updaters []Updater
	ticks    uint64
	last     clock.Tick
}

var _ Updater = &StateSystem{}

// NewStateSystem creates a StateSystem running updaters in order. Nil updaters are skipped.
//
// Parameters:
//   - updaters: the initial updaters
//
// Returns:
//   - *StateSystem: the state system
func NewStateSystem(updaters ...Updater) *StateSystem {
	s := &StateSystem{}
	for _, u := range updaters {
		s.Add(u)
	}
	return s
}

// Add appends u to the update order.
//
// Parameters:
//   - u: the updater; nil is ignored
func (s *StateSystem) Add(u Updater) {
	if u == nil {
		return
	}
	s.updaters = append(s.updaters, u)
}

// Update runs every updater with tick and in.
func (s *StateSystem) Update(tick clock.Tick, in *input.InputState) {
	s.ticks++
	s.last = tick
	for _, u := range s.updaters {
		u.Update(tick, in)
	}
}

// Ticks returns how many times Update has run.
func (s *StateSystem) Ticks() uint64 {
	return s.ticks
}

// LastTick returns the tick passed to the most recent Update.
func (s *StateSystem) LastTick() clock.Tick {
	return s.last
}
