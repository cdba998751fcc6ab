package service

import (
	"strconv"
	"time"

	"heating_panel/internal/models"
)

// DefaultOffTimeLayout mirrors the browser's Date string form.
const DefaultOffTimeLayout = "Mon Jan 02 2006 15:04:05 MST"

// DefaultDurations are the "turn on for" choices, in minutes.
var DefaultDurations = []int{30, 90, 120, 180}

// Gradient stops shown before the first tank reading arrives.
var defaultTankStops = []models.GradientStop{
	{Offset: 0, Color: "rgb(0,0,255)"},
	{Offset: 0.5, Color: "rgb(255,0,255)"},
	{Offset: 1, Color: "rgb(255,0,0)"},
}

type BindOptions struct {
	Location      *time.Location // nil means time.Local
	OffTimeLayout string
	Durations     []int
}

// BindView projects a state snapshot onto the UI. It has no side effects.
func BindView(snap models.Snapshot, endpoints []models.Endpoint, opts BindOptions) models.View {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	layout := opts.OffTimeLayout
	if layout == "" {
		layout = DefaultOffTimeLayout
	}
	durations := opts.Durations
	if len(durations) == 0 {
		durations = DefaultDurations
	}

	v := models.View{
		Controls:        make([]models.ControlView, 0, len(endpoints)),
		Tank:            bindTank(snap.Tank),
		DurationOptions: make([]models.DurationOption, 0, len(durations)),
		Testing:         snap.Testing,
	}
	for _, ep := range endpoints {
		st := snap.Subsystems[ep.Subsystem]
		cv := models.ControlView{
			Subsystem: ep.Subsystem,
			ElementID: ep.ToggleElementID,
			Checked:   st.On,
		}
		if ep.OffTimeElementID != "" {
			cv.OffTimeElementID = ep.OffTimeElementID
			cv.OffTime = formatOffTime(st.OffTime, loc, layout)
		}
		v.Controls = append(v.Controls, cv)
	}
	for _, m := range durations {
		v.DurationOptions = append(v.DurationOptions, models.DurationOption{Minutes: m, Label: durationLabel(m)})
	}
	return v
}

// bindTank orders stops bottom to top, matching the SVG gradient.
func bindTank(r *models.TankReading) []models.GradientStop {
	stops := make([]models.GradientStop, len(defaultTankStops))
	copy(stops, defaultTankStops)
	if r == nil {
		return stops
	}
	stops[0].Color = Colorize(r.Btm).String()
	stops[1].Color = Colorize(r.Mid).String()
	stops[2].Color = Colorize(r.Top).String()
	return stops
}

func formatOffTime(t *time.Time, loc *time.Location, layout string) string {
	if t == nil || t.IsZero() {
		return models.OffTimeUnknown
	}
	return t.In(loc).Format(layout)
}

func durationLabel(minutes int) string {
	switch {
	case minutes == 60:
		return "1 hour"
	case minutes > 60 && minutes%60 == 0:
		return strconv.Itoa(minutes/60) + " hours"
	default:
		return strconv.Itoa(minutes) + " mins"
	}
}
