package models

// OffTimeUnknown is shown when no scheduled-off timestamp is known.
const OffTimeUnknown = "Unknown"

// View is the bound UI state pushed to the browser.
type View struct {
	Controls        []ControlView    `json:"controls"`
	Tank            []GradientStop   `json:"tank"`
	DurationOptions []DurationOption `json:"duration_options"`
	Testing         bool             `json:"testing"`
}

// ControlView is one toggle and, for ch/hw, its off-time label.
type ControlView struct {
	Subsystem        Subsystem `json:"subsystem"`
	ElementID        string    `json:"element_id"`
	Checked          bool      `json:"checked"`
	OffTimeElementID string    `json:"off_time_element_id,omitempty"`
	OffTime          string    `json:"off_time,omitempty"`
}

// GradientStop is one stop of the tank SVG gradient. Offset 0 is the bottom of the tank.
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// DurationOption is one choice in the "turn on for" dropdown.
type DurationOption struct {
	Minutes int    `json:"minutes"`
	Label   string `json:"label"`
}

// Control returns the control view for s, if present.
func (v View) Control(s Subsystem) (ControlView, bool) {
	for _, c := range v.Controls {
		if c.Subsystem == s {
			return c, true
		}
	}
	return ControlView{}, false
}
