package service

import (
	"math"

	"heating_panel/internal/models"
)

// Tank color scale bounds, °C.
const (
	ColdC = 20.0
	HotC  = 55.0
)

// Colorize maps a tank temperature onto a blue (cold) to red (hot) scale.
// Readings outside [ColdC, HotC] saturate; NaN is treated as cold.
func Colorize(tempC float64) models.RGB {
	t := tempC
	if math.IsNaN(t) || t < ColdC {
		t = ColdC
	}
	if t > HotC {
		t = HotC
	}
	scaled := (t - ColdC) * 255 / (HotC - ColdC)
	return models.RGB{
		R: uint8(math.Round(scaled)),
		G: 0,
		B: uint8(math.Round(255 - scaled)),
	}
}
