package main

import (
	"log"
	"math"
)

// Unit and profile enums. These are closed sets: the PATCH handler validates
// against them so the engine never sees an unknown value.
const (
	unitKg   = "kg"
	unitLb   = "lb"
	unitCm   = "cm"
	unitFtIn = "ft_in" // height stored as total inches
)

const (
	lbPerKg   = 2.20462
	cmPerIn   = 2.54
	sexMale   = "male"
	sexFemale = "female"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// Single source of truth for valid activity levels — also used for input
// validation in patchSettings.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"very":      1.725,
	"extra":     1.9,
}

// validSexes mirrors activityMultipliers for the sex enum.
var validSexes = map[string]bool{sexMale: true, sexFemale: true}

// standardTDEE computes the Mifflin–St Jeor TDEE for the given smoothed
// weight, in the profile's explicit units. Units are never inferred from the
// magnitude of the stored values; the enum on settings is authoritative.
// A zero or tiny weight yields a degenerate but non-failing value (BMR is
// clamped at zero), so callers with no history still get a number back.
func standardTDEE(weight float64, s userSettings) float64 {
	weightKg := weight
	if s.WeightUnit == unitLb {
		weightKg = weight / lbPerKg
	}
	heightCm := s.Height
	if s.HeightUnit == unitFtIn {
		heightCm = s.Height * cmPerIn
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(s.Age)
	if s.Sex == sexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	bmr = math.Max(bmr, 0)

	mult, found := activityMultipliers[s.ActivityLevel]
	if !found {
		// The PATCH boundary validates the enum, so this only fires on a
		// corrupted row. Log it rather than silently mis-scoring.
		log.Printf("[standardTDEE] unknown activity level %q, falling back to sedentary", s.ActivityLevel)
		mult = activityMultipliers["sedentary"]
	}
	return bmr * mult
}
