package profiler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/profile"
)

// Mode selects the pprof profile written by a Session.
type Mode string

const (
	ModeOff Mode = "off"
	ModeCPU Mode = "cpu"
	ModeMem Mode = "mem"
)

// ParseMode parses a profile mode name. The empty string is ModeOff.
//
// Parameters:
//   - s: off, cpu or mem
//
// Returns:
//   - Mode: the mode
//   - error: an error for unknown names
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeOff:
		return ModeOff, nil
	case ModeCPU, ModeMem:
		return m, nil
	default:
		return ModeOff, fmt.Errorf("unknown profile mode %q", s)
	}
}

// Session is a running pprof profile. The zero value and a nil *Session are stopped sessions.
type Session struct {
	mode Mode
	stop interface{ Stop() }
}

// StartSession starts a pprof profile writing to dir. ModeOff returns a session whose Stop does nothing.
//
// Parameters:
//   - mode: the profile to record
//   - dir: the output directory; empty uses a temporary directory
//
// Returns:
//   - *Session: the running session
func StartSession(mode Mode, dir string) *Session {
	s := &Session{mode: mode}

	var opts []func(*profile.Profile)
	switch mode {
	case ModeCPU:
		opts = append(opts, profile.CPUProfile)
	case ModeMem:
		opts = append(opts, profile.MemProfile)
	default:
		return s
	}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}
	opts = append(opts, profile.Quiet, profile.NoShutdownHook)

	s.stop = profile.Start(opts...)
	slog.Info("Profiling started", slog.String("mode", string(mode)), slog.String("dir", dir))
	return s
}

// Mode returns the session's profile mode.
func (s *Session) Mode() Mode {
	if s == nil {
		return ModeOff
	}
	return s.mode
}

// Stop flushes and closes the profile. Safe to call more than once.
func (s *Session) Stop() {
	if s == nil || s.stop == nil {
		return
	}
	s.stop.Stop()
	s.stop = nil
	slog.Info("Profiling stopped", slog.String("mode", string(s.mode)))
}
