package models

import (
	"fmt"
	"time"
)

// TankReading holds the three hot-water tank sensor temperatures in °C.
type TankReading struct {
	Top float64 `json:"top"`
	Mid float64 `json:"mid"`
	Btm float64 `json:"btm"`
}

// RGB is a display color. Green is carried for completeness; the colorizer keeps it 0.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String renders the CSS form, e.g. rgb(255,0,0).
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Snapshot is a consistent copy of the application state at one instant.
type Snapshot struct {
	Subsystems    map[Subsystem]SubsystemState
	Tank          *TankReading // nil until the first successful tank poll
	TankUpdatedAt time.Time
	Testing       bool
}
