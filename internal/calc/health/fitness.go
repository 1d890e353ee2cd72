package health

import (
	"fmt"
	"math"

	"github.com/bobmcallan/abacus/internal/calc"
)

// HeartRateZone is one training zone in beats per minute.
type HeartRateZone struct {
	Zone   int    `json:"zone"`
	Name   string `json:"name"`
	MinBPM int    `json:"min_bpm"`
	MaxBPM int    `json:"max_bpm"`
}

// HeartRateResult is the output of the heart rate zone calculator.
type HeartRateResult struct {
	MaxHeartRate int             `json:"max_heart_rate"`
	Method       string          `json:"method"`
	Zones        []HeartRateZone `json:"zones"`
}

var zoneNames = []string{"Recovery", "Endurance", "Aerobic", "Threshold", "Maximum"}

// HeartRateZones derives five zones from 220 − age. With a resting rate the
// Karvonen heart-rate-reserve method is used.
func HeartRateZones(age, restingHR int) (*HeartRateResult, error) {
	if age < 5 || age > 110 {
		return nil, calc.Invalid("age", "must be between 5 and 110")
	}
	if restingHR < 0 || restingHR > 150 {
		return nil, calc.Invalid("resting_heart_rate", "must be between 0 and 150")
	}
	maxHR := 220 - age
	if restingHR >= maxHR {
		return nil, calc.Invalid("resting_heart_rate", "must be below the maximum heart rate of %d", maxHR)
	}

	res := &HeartRateResult{MaxHeartRate: maxHR, Method: "percent_max"}
	at := func(pct float64) int {
		return int(math.Round(float64(maxHR) * pct))
	}
	if restingHR > 0 {
		res.Method = "karvonen"
		reserve := float64(maxHR - restingHR)
		at = func(pct float64) int {
			return int(math.Round(reserve*pct)) + restingHR
		}
	}
	for i, name := range zoneNames {
		lo := 0.5 + 0.1*float64(i)
		res.Zones = append(res.Zones, HeartRateZone{
			Zone:   i + 1,
			Name:   name,
			MinBPM: at(lo),
			MaxBPM: at(lo + 0.1),
		})
	}
	return res, nil
}

// PaceResult is the output of the pace calculator.
type PaceResult struct {
	PacePerKmSeconds   float64 `json:"pace_per_km_seconds"`
	PacePerKm          string  `json:"pace_per_km"`
	PacePerMileSeconds float64 `json:"pace_per_mile_seconds"`
	PacePerMile        string  `json:"pace_per_mile"`
	SpeedKmh           float64 `json:"speed_kmh"`
	SpeedMph           float64 `json:"speed_mph"`
}

const kmPerMile = 1.609344

// Pace converts a distance and elapsed time into pace and speed.
func Pace(distanceKm, seconds float64) (*PaceResult, error) {
	if err := calc.First(
		calc.Positive("distance", distanceKm),
		calc.Positive("time_seconds", seconds),
	); err != nil {
		return nil, err
	}
	perKm := seconds / distanceKm
	perMile := perKm * kmPerMile
	kmh := distanceKm / (seconds / 3600)
	return &PaceResult{
		PacePerKmSeconds:   perKm,
		PacePerKm:          FormatClock(perKm),
		PacePerMileSeconds: perMile,
		PacePerMile:        FormatClock(perMile),
		SpeedKmh:           kmh,
		SpeedMph:           kmh / kmPerMile,
	}, nil
}

// FormatClock renders seconds as m:ss, or h:mm:ss past an hour.
func FormatClock(seconds float64) string {
	total := int(math.Round(seconds))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
