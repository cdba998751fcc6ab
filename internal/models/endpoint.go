package models

// Endpoint maps a subsystem to its status path and the UI elements it drives.
type Endpoint struct {
	Subsystem        Subsystem
	StatusPath       string
	ToggleElementID  string
	OffTimeElementID string // empty when the subsystem has no scheduled off
}

// DefaultEndpoints returns the fixed descriptor table in display order.
// A fresh slice is returned on every call so callers cannot mutate the table.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Subsystem: Power, StatusPath: "status/power", ToggleElementID: "mainpowerbut"},
		{Subsystem: Heating, StatusPath: "status/ch", ToggleElementID: "chbut", OffTimeElementID: "chofftime"},
		{Subsystem: HotWater, StatusPath: "status/hw", ToggleElementID: "hwbut", OffTimeElementID: "hwofftime"},
	}
}

// TankTemperaturePath is the device path for tank sensor readings.
const TankTemperaturePath = "tank-temperature"
