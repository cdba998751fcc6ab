package service

import (
	"context"
	"testing"
	"time"

	"heating_panel/internal/models"
	"heating_panel/internal/repository"
)

func TestBindView_UnknownOffTime(t *testing.T) {
	snap := models.Snapshot{Subsystems: map[models.Subsystem]models.SubsystemState{
		models.HotWater: {On: true, Seq: 1},
	}}
	v := BindView(snap, models.DefaultEndpoints(), BindOptions{})

	hw, ok := v.Control(models.HotWater)
	if !ok {
		t.Fatalf("hot water control missing")
	}
	if !hw.Checked || hw.OffTime != models.OffTimeUnknown || hw.OffTimeElementID != "hwofftime" {
		t.Fatalf("unexpected hw control: %+v", hw)
	}
	ch, _ := v.Control(models.Heating)
	if ch.Checked || ch.OffTime != models.OffTimeUnknown {
		t.Fatalf("never-polled control must be unchecked and Unknown: %+v", ch)
	}
	pw, _ := v.Control(models.Power)
	if pw.OffTime != "" || pw.OffTimeElementID != "" || pw.ElementID != "mainpowerbut" {
		t.Fatalf("power has no off time label: %+v", pw)
	}
}

func TestBindView_ControlsFollowDescriptorOrder(t *testing.T) {
	v := BindView(models.Snapshot{}, models.DefaultEndpoints(), BindOptions{})
	want := []string{"mainpowerbut", "chbut", "hwbut"}
	if len(v.Controls) != len(want) {
		t.Fatalf("controls: want %d, got %d", len(want), len(v.Controls))
	}
	for i, id := range want {
		if v.Controls[i].ElementID != id {
			t.Errorf("controls[%d]: want %q, got %q", i, id, v.Controls[i].ElementID)
		}
	}
}

func TestBindView_DefaultTankStops(t *testing.T) {
	v := BindView(models.Snapshot{}, models.DefaultEndpoints(), BindOptions{})
	want := []string{"rgb(0,0,255)", "rgb(255,0,255)", "rgb(255,0,0)"}
	for i, c := range want {
		if v.Tank[i].Color != c {
			t.Errorf("stop %d: want %q, got %q", i, c, v.Tank[i].Color)
		}
	}
	// binding must not alias the package defaults
	v.Tank[0].Color = "mutated"
	if again := BindView(models.Snapshot{}, nil, BindOptions{}); again.Tank[0].Color != "rgb(0,0,255)" {
		t.Fatalf("default stops were mutated through a view")
	}
}

func TestBindView_DurationOptions(t *testing.T) {
	v := BindView(models.Snapshot{}, nil, BindOptions{})
	want := []models.DurationOption{
		{Minutes: 30, Label: "30 mins"},
		{Minutes: 90, Label: "90 mins"},
		{Minutes: 120, Label: "2 hours"},
		{Minutes: 180, Label: "3 hours"},
	}
	if len(v.DurationOptions) != len(want) {
		t.Fatalf("want %d options, got %d", len(want), len(v.DurationOptions))
	}
	for i := range want {
		if v.DurationOptions[i] != want[i] {
			t.Errorf("option %d: want %+v, got %+v", i, want[i], v.DurationOptions[i])
		}
	}
	if got := durationLabel(60); got != "1 hour" {
		t.Errorf("durationLabel(60) = %q", got)
	}
}

func TestBindView_OffTimeLayoutAndLocation(t *testing.T) {
	off := time.Unix(1700000000, 0)
	snap := models.Snapshot{Subsystems: map[models.Subsystem]models.SubsystemState{
		models.Heating: {On: true, OffTime: &off, Seq: 1},
	}}
	loc := time.FixedZone("CET", 3600)
	v := BindView(snap, models.DefaultEndpoints(), BindOptions{Location: loc, OffTimeLayout: time.RFC3339})
	ch, _ := v.Control(models.Heating)
	if ch.OffTime != "2023-11-14T23:13:20+01:00" {
		t.Fatalf("off time = %q", ch.OffTime)
	}
}

// End to end: device responses through the poller and store into the bound view.
func TestPollAndBind_EndToEnd(t *testing.T) {
	dev := newFakeDevice()
	off := time.Unix(1700000000, 0)
	dev.status[models.Heating] = func(context.Context, int) (models.StatusReport, error) {
		return models.StatusReport{State: true, OffTime: &off}, nil
	}
	dev.tank = func(context.Context) (models.TankReading, error) {
		return models.TankReading{Top: 55, Mid: 40, Btm: 20}, nil
	}

	store := repository.NewMemoryState(false, nil)
	eps := models.DefaultEndpoints()
	p := NewPollerService(dev, store, eps, Options{})
	mon := NewMonitoringService(store, eps, BindOptions{Location: time.UTC})

	p.PollStatuses(context.Background())
	p.PollTank(context.Background())
	v := mon.View()

	ch, _ := v.Control(models.Heating)
	if !ch.Checked {
		t.Fatalf("heating must be checked")
	}
	if want := "Tue Nov 14 2023 22:13:20 UTC"; ch.OffTime != want {
		t.Fatalf("heating off time: want %q, got %q", want, ch.OffTime)
	}

	bottom, middle, top := v.Tank[0], v.Tank[1], v.Tank[2]
	if top.Offset != 1 || top.Color != "rgb(255,0,0)" {
		t.Errorf("top stop: %+v", top)
	}
	if bottom.Offset != 0 || bottom.Color != "rgb(0,0,255)" {
		t.Errorf("bottom stop: %+v", bottom)
	}
	if middle.Offset != 0.5 || middle.Color != "rgb(146,0,109)" {
		t.Errorf("middle stop: %+v", middle)
	}
}
