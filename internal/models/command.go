package models

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidDuration     = errors.New("invalid duration: minutes must be > 0")
	ErrDurationUnsupported = errors.New("timed on is not supported for power")
)

// Command is one outbound state-change instruction.
type Command struct {
	Subsystem       Subsystem `json:"subsystem"`
	On              bool      `json:"on"`
	DurationMinutes int       `json:"duration_minutes,omitempty"` // only meaningful when On
}

// Path renders the device command path, e.g. command/hw/on/90 or command/ch/off.
func (c Command) Path() string {
	p := "command/" + string(c.Subsystem)
	if !c.On {
		return p + "/off"
	}
	p += "/on"
	if c.DurationMinutes > 0 {
		p += "/" + strconv.Itoa(c.DurationMinutes)
	}
	return p
}

func (c Command) String() string { return c.Path() }

// Intent is a typed user interaction emitted by the UI layer.
type Intent interface {
	Command() (Command, error)
}

// ToggleSubsystem is a raw toggle flip. It never carries a duration.
type ToggleSubsystem struct {
	Subsystem Subsystem
	On        bool
}

func (t ToggleSubsystem) Command() (Command, error) {
	if _, err := ParseSubsystem(string(t.Subsystem)); err != nil {
		return Command{}, err
	}
	return Command{Subsystem: t.Subsystem, On: t.On}, nil
}

// SetSubsystemOnFor is a "turn on for N minutes" press.
type SetSubsystemOnFor struct {
	Subsystem Subsystem
	Minutes   int
}

func (s SetSubsystemOnFor) Command() (Command, error) {
	if _, err := ParseSubsystem(string(s.Subsystem)); err != nil {
		return Command{}, err
	}
	if !s.Subsystem.SupportsOffTime() {
		return Command{}, ErrDurationUnsupported
	}
	if s.Minutes <= 0 {
		return Command{}, fmt.Errorf("%w (got %d)", ErrInvalidDuration, s.Minutes)
	}
	return Command{Subsystem: s.Subsystem, On: true, DurationMinutes: s.Minutes}, nil
}
