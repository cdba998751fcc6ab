package models

import (
	"errors"
	"strings"
	"time"
)

// Subsystem identifies one controllable device function.
type Subsystem string

const (
	Power    Subsystem = "power"
	Heating  Subsystem = "ch"
	HotWater Subsystem = "hw"
)

// ErrUnknownSubsystem is returned when a subsystem identifier is not one of power, ch or hw.
var ErrUnknownSubsystem = errors.New("unknown subsystem: must be power, ch or hw")

// Subsystems lists every subsystem in display order.
var Subsystems = []Subsystem{Power, Heating, HotWater}

// ParseSubsystem accepts the URL part used by the device ("power", "ch", "hw").
// "psu" is accepted as an alias for power, which older firmware used.
func ParseSubsystem(s string) (Subsystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "power", "psu":
		return Power, nil
	case "ch":
		return Heating, nil
	case "hw":
		return HotWater, nil
	default:
		return "", ErrUnknownSubsystem
	}
}

// SupportsOffTime reports whether the device schedules an automatic off for this subsystem.
func (s Subsystem) SupportsOffTime() bool {
	return s == Heating || s == HotWater
}

func (s Subsystem) String() string { return string(s) }

// SubsystemState is the last applied poll result for a subsystem.
type SubsystemState struct {
	On        bool       `json:"on"`
	OffTime   *time.Time `json:"off_time,omitempty"` // ch/hw only
	Seq       uint64     `json:"seq"`                // sequence of the fetch that produced this state
	UpdatedAt time.Time  `json:"updated_at"`
}

// Polled reports whether any poll result has been applied yet.
func (s SubsystemState) Polled() bool { return s.Seq > 0 }

// StatusReport is the decoded body of GET status/<part>.
type StatusReport struct {
	State   bool
	OffTime *time.Time
}
