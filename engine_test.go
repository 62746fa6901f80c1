package main

import (
	"math"
	"testing"
	"time"
)

/* ─── Test helpers ───────────────────────────────────────────────────── */

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

// testSettings returns the default settings used across engine tests:
// metric units, 30-year-old male, sedentary, weight/calorie alpha 0.1 in
// [0.01, 0.3], 7-day trend window, no goal rate.
func testSettings() userSettings {
	return userSettings{
		Height:             170,
		HeightUnit:         unitCm,
		Age:                30,
		Sex:                sexMale,
		ActivityLevel:      "sedentary",
		WeightUnit:         unitKg,
		WeightAlpha:        0.1,
		WeightAlphaMin:     0.01,
		WeightAlphaMax:     0.3,
		CalorieAlpha:       0.1,
		CalorieAlphaMin:    0.01,
		CalorieAlphaMax:    0.3,
		TrendSmoothingDays: 7,
	}
}

// day returns a DateOnly i days after a fixed base date.
func day(i int) DateOnly {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return DateOnly{base.AddDate(0, 0, i)}
}

// constantHistory builds n days with the same weight and calories.
func constantHistory(n int, weight float64, calories int) []logEntry {
	entries := make([]logEntry, n)
	for i := range entries {
		entries[i] = logEntry{Date: day(i), Weight: fp(weight), PreviousDayCalories: ip(calories)}
	}
	return entries
}

// sparseHistory builds n observations spaced stride calendar days apart,
// each with the same weight and calories.
func sparseHistory(n, stride int, weight float64, calories int) []logEntry {
	entries := make([]logEntry, n)
	for i := range entries {
		entries[i] = logEntry{Date: day(i * stride), Weight: fp(weight), PreviousDayCalories: ip(calories)}
	}
	return entries
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

/* ─── Tunable constants ──────────────────────────────────────────────── */

// TestTunableConstants pins the adaptation thresholds. These are behavioral
// contracts with logged user data, not free parameters — a changed band shifts
// every historical chart, so a change here must be deliberate.
func TestTunableConstants(t *testing.T) {
	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"alphaStep", alphaStep, 0.01},
		{"weightErrCalmPct", weightErrCalmPct, 0.25},
		{"weightErrNoisyPct", weightErrNoisyPct, 0.75},
		{"calorieCVSteady", calorieCVSteady, 0.20},
		{"calorieCVNoisy", calorieCVNoisy, 0.35},
		{"missingPctLow", missingPctLow, 15},
		{"missingPctHigh", missingPctHigh, 30},
		{"outlierDailyFraction", outlierDailyFraction, 0.05},
		{"tdeePlausibleMin", tdeePlausibleMin, 500},
		{"tdeePlausibleMax", tdeePlausibleMax, 7000},
		{"minDaysForTrend", minDaysForTrend, 5},
		{"coldStartDays", coldStartDays, 21},
		{"blendDecay", blendDecay, 0.85},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

/* ─── Trailing window ────────────────────────────────────────────────── */

func TestWindow_MeanAndFull(t *testing.T) {
	w := newWindow(3)
	if w.full() {
		t.Fatal("empty window reported full")
	}
	w.push(1)
	w.push(2)
	if !almostEqual(w.mean(), 1.5) {
		t.Errorf("mean = %v, want 1.5", w.mean())
	}
	w.push(3)
	if !w.full() {
		t.Fatal("window with capacity samples not reported full")
	}
	// Oldest value (1) falls out.
	w.push(4)
	if !almostEqual(w.mean(), 3) {
		t.Errorf("mean after wrap = %v, want 3", w.mean())
	}
}

func TestWindow_StddevSampleDenominator(t *testing.T) {
	w := newWindow(4)
	for _, v := range []float64{2, 4, 4, 6} {
		w.push(v)
	}
	// mean 4, squared deviations 4+0+0+4, n-1=3 => sqrt(8/3)
	want := math.Sqrt(8.0 / 3.0)
	if !almostEqual(w.stddev(), want) {
		t.Errorf("stddev = %v, want %v", w.stddev(), want)
	}
}

func TestWindow_MeanLast(t *testing.T) {
	w := newWindow(5)
	for _, v := range []float64{1, 2, 3, 4, 5, 6} {
		w.push(v) // window now holds 2..6
	}
	if !almostEqual(w.meanLast(3), 5) {
		t.Errorf("meanLast(3) = %v, want 5", w.meanLast(3))
	}
	if !almostEqual(w.meanLast(10), 4) {
		t.Errorf("meanLast(10) = %v, want 4 (all available)", w.meanLast(10))
	}
}

/* ─── Degenerate histories ───────────────────────────────────────────── */

// TestComputeStatus_EmptyHistory verifies the neutral result: all smoothed
// metrics zero, standard TDEE computed off zero weight (documented degenerate
// value), and no panic.
func TestComputeStatus_EmptyHistory(t *testing.T) {
	s := testSettings()
	r := computeStatus(nil, s)

	if r.TrueWeight != 0 || r.WeightTrendPerWeek != 0 || r.AverageCalories != 0 {
		t.Errorf("smoothed fields not neutral: %+v", r)
	}
	wantStandard := standardTDEE(0, s)
	if !almostEqual(r.EstimatedTdeeStandard, wantStandard) {
		t.Errorf("EstimatedTdeeStandard = %v, want %v", r.EstimatedTdeeStandard, wantStandard)
	}
	if !almostEqual(r.EstimatedTdeeAlgo, wantStandard) {
		t.Errorf("EstimatedTdeeAlgo = %v, want standard fallback %v", r.EstimatedTdeeAlgo, wantStandard)
	}
	if r.TdeeBlendFactorUsed != 1.0 {
		t.Errorf("TdeeBlendFactorUsed = %v, want 1.0", r.TdeeBlendFactorUsed)
	}
	if r.CurrentAlphaWeight != s.WeightAlpha || r.CurrentAlphaCalorie != s.CalorieAlpha {
		t.Errorf("alphas should stay at their configured values on empty history")
	}
}

func TestComputeStatus_SingleEntry(t *testing.T) {
	history := []logEntry{{Date: day(0), Weight: fp(80), PreviousDayCalories: ip(2500)}}
	r := computeStatus(history, testSettings())

	if r.TrueWeight != 80 {
		t.Errorf("TrueWeight = %v, want 80", r.TrueWeight)
	}
	if r.AverageCalories != 2500 {
		t.Errorf("AverageCalories = %v, want 2500", r.AverageCalories)
	}
	if r.WeightTrendPerWeek != 0 {
		t.Errorf("WeightTrendPerWeek = %v, want 0", r.WeightTrendPerWeek)
	}
}

// TestComputeStatus_ConstantWeight verifies that a flat series stays flat for
// every prefix: the EMA of a constant is the constant, and all deltas are zero.
func TestComputeStatus_ConstantWeight(t *testing.T) {
	history := constantHistory(30, 70, 2000)
	for n := 1; n <= len(history); n++ {
		r := computeStatus(history[:n], testSettings())
		if !almostEqual(r.TrueWeight, 70) {
			t.Fatalf("prefix %d: TrueWeight = %v, want 70", n, r.TrueWeight)
		}
		if !almostEqual(r.WeightTrendPerWeek, 0) {
			t.Fatalf("prefix %d: WeightTrendPerWeek = %v, want 0", n, r.WeightTrendPerWeek)
		}
	}
}

/* ─── Smoothing arithmetic ───────────────────────────────────────────── */

// TestComputeStatus_TwoEntries pins the exact EMA and trend arithmetic for a
// two-day history at alpha 0.1, before the error window can adapt anything:
// ema1 = 81*0.1 + 80*0.9 = 80.1, trend/day = mean(0, 0.1) = 0.05.
func TestComputeStatus_TwoEntries(t *testing.T) {
	history := []logEntry{
		{Date: day(0), Weight: fp(80)},
		{Date: day(1), Weight: fp(81)},
	}
	r := computeStatus(history, testSettings())

	if !almostEqual(r.TrueWeight, 80.1) {
		t.Errorf("TrueWeight = %v, want 80.1", r.TrueWeight)
	}
	if !almostEqual(r.WeightTrendPerWeek, 0.35) {
		t.Errorf("WeightTrendPerWeek = %v, want 0.35", r.WeightTrendPerWeek)
	}
	if r.CurrentAlphaWeight != 0.1 {
		t.Errorf("CurrentAlphaWeight = %v, want unchanged 0.1 (window not full)", r.CurrentAlphaWeight)
	}
}

// TestComputeStatus_MissingDayCarryForward verifies that a null day carries
// the EMA forward untouched and contributes no adaptation sample.
func TestComputeStatus_MissingDayCarryForward(t *testing.T) {
	withGap := []logEntry{
		{Date: day(0), Weight: fp(80)},
		{Date: day(1)}, // nothing logged
		{Date: day(2), Weight: fp(81)},
	}
	s := testSettings()

	// Prefix ending on the gap day: unchanged from the prior day.
	r := computeStatus(withGap[:2], s)
	if r.TrueWeight != 80 {
		t.Errorf("TrueWeight after missing day = %v, want 80", r.TrueWeight)
	}
	if r.CurrentAlphaWeight != s.WeightAlpha {
		t.Errorf("CurrentAlphaWeight = %v, want unchanged %v", r.CurrentAlphaWeight, s.WeightAlpha)
	}

	// The full series smooths exactly as if the gap day were not there.
	contiguous := []logEntry{
		{Date: day(0), Weight: fp(80)},
		{Date: day(1), Weight: fp(81)},
	}
	if got, want := computeStatus(withGap, s).TrueWeight, computeStatus(contiguous, s).TrueWeight; !almostEqual(got, want) {
		t.Errorf("TrueWeight with gap = %v, want %v", got, want)
	}
}

// TestComputeStatus_OutlierDamping verifies that a one-day jump over 5% of
// bodyweight is zeroed in the trend while the EMA still absorbs it.
func TestComputeStatus_OutlierDamping(t *testing.T) {
	history := []logEntry{
		{Date: day(0), Weight: fp(80)},
		{Date: day(1), Weight: fp(200)}, // ema -> 92, delta 12 = 15% of 80
	}
	r := computeStatus(history, testSettings())

	if !almostEqual(r.TrueWeight, 92) {
		t.Errorf("TrueWeight = %v, want 92 (EMA still incorporates the jump)", r.TrueWeight)
	}
	if !almostEqual(r.WeightTrendPerWeek, 0) {
		t.Errorf("WeightTrendPerWeek = %v, want 0 (outlier damped)", r.WeightTrendPerWeek)
	}
}

/* ─── Alpha adaptation ───────────────────────────────────────────────── */

func TestComputeStatus_WeightAlphaAdaptsUpOnCalmData(t *testing.T) {
	// Constant weight: every prediction error is 0, well under the calm band,
	// so the alpha climbs 0.01/day once the window fills, up to the cap.
	r := computeStatus(constantHistory(45, 70, 2000), testSettings())
	if r.CurrentAlphaWeight != testSettings().WeightAlphaMax {
		t.Errorf("CurrentAlphaWeight = %v, want cap %v", r.CurrentAlphaWeight, testSettings().WeightAlphaMax)
	}
}

func TestComputeStatus_WeightAlphaAdaptsDownOnNoisyData(t *testing.T) {
	// Alternating 70/90 keeps the mean relative error far above the noisy
	// band, so the alpha walks down to the floor.
	history := make([]logEntry, 45)
	for i := range history {
		w := 70.0
		if i%2 == 1 {
			w = 90.0
		}
		history[i] = logEntry{Date: day(i), Weight: fp(w)}
	}
	r := computeStatus(history, testSettings())
	if r.CurrentAlphaWeight != testSettings().WeightAlphaMin {
		t.Errorf("CurrentAlphaWeight = %v, want floor %v", r.CurrentAlphaWeight, testSettings().WeightAlphaMin)
	}
}

func TestComputeStatus_CalorieAlphaAdaptsUpOnSteadyIntake(t *testing.T) {
	// Constant intake, nothing missing: CV 0 and missing 0%, so the calorie
	// alpha climbs to its cap.
	r := computeStatus(constantHistory(45, 70, 2000), testSettings())
	if r.CurrentAlphaCalorie != testSettings().CalorieAlphaMax {
		t.Errorf("CurrentAlphaCalorie = %v, want cap %v", r.CurrentAlphaCalorie, testSettings().CalorieAlphaMax)
	}
}

func TestComputeStatus_CalorieAlphaAdaptsDownOnVolatileIntake(t *testing.T) {
	// Alternating 1000/3000: CV ≈ 0.5, over the noisy band.
	history := make([]logEntry, 45)
	for i := range history {
		cal := 1000
		if i%2 == 1 {
			cal = 3000
		}
		history[i] = logEntry{Date: day(i), Weight: fp(70), PreviousDayCalories: ip(cal)}
	}
	r := computeStatus(history, testSettings())
	if r.CurrentAlphaCalorie != testSettings().CalorieAlphaMin {
		t.Errorf("CurrentAlphaCalorie = %v, want floor %v", r.CurrentAlphaCalorie, testSettings().CalorieAlphaMin)
	}
}

func TestComputeStatus_CalorieAlphaAdaptsDownOnMissingDays(t *testing.T) {
	// Every other day unlogged: 50% missing, over the high band, even though
	// the logged values themselves are perfectly steady.
	history := make([]logEntry, 60)
	for i := range history {
		history[i] = logEntry{Date: day(i), Weight: fp(70)}
		if i%2 == 0 {
			history[i].PreviousDayCalories = ip(2000)
		}
	}
	r := computeStatus(history, testSettings())
	if r.CurrentAlphaCalorie != testSettings().CalorieAlphaMin {
		t.Errorf("CurrentAlphaCalorie = %v, want floor %v", r.CurrentAlphaCalorie, testSettings().CalorieAlphaMin)
	}
}

// TestComputeStatus_AlphasStayWithinBounds fuzzes a jagged series and checks
// the adapted alphas never escape their configured bands, at any prefix.
func TestComputeStatus_AlphasStayWithinBounds(t *testing.T) {
	s := testSettings()
	history := make([]logEntry, 80)
	for i := range history {
		w := 70 + float64(i%13)*1.7 - float64(i%5)*2.3
		cal := 1500 + (i%11)*230
		history[i] = logEntry{Date: day(i), Weight: fp(w), PreviousDayCalories: ip(cal)}
		if i%7 == 3 {
			history[i].Weight = nil
		}
		if i%9 == 5 {
			history[i].PreviousDayCalories = nil
		}
	}
	for n := 1; n <= len(history); n++ {
		r := computeStatus(history[:n], s)
		if r.CurrentAlphaWeight < s.WeightAlphaMin || r.CurrentAlphaWeight > s.WeightAlphaMax {
			t.Fatalf("prefix %d: CurrentAlphaWeight %v outside [%v, %v]",
				n, r.CurrentAlphaWeight, s.WeightAlphaMin, s.WeightAlphaMax)
		}
		if r.CurrentAlphaCalorie < s.CalorieAlphaMin || r.CurrentAlphaCalorie > s.CalorieAlphaMax {
			t.Fatalf("prefix %d: CurrentAlphaCalorie %v outside [%v, %v]",
				n, r.CurrentAlphaCalorie, s.CalorieAlphaMin, s.CalorieAlphaMax)
		}
	}
}

/* ─── Calendar densification ─────────────────────────────────────────── */

// TestDensifyHistory_FillsCalendarGaps: weekly weigh-ins over two weeks come
// back as fifteen entries, one per calendar day, with the unlogged days empty.
func TestDensifyHistory_FillsCalendarGaps(t *testing.T) {
	got := densifyHistory(sparseHistory(3, 7, 70, 2000))
	if len(got) != 15 {
		t.Fatalf("len = %d, want 15", len(got))
	}
	for i, e := range got {
		if !e.Date.Equal(day(i).Time) {
			t.Fatalf("entry %d date = %s, want %s",
				i, e.Date.Format("2006-01-02"), day(i).Format("2006-01-02"))
		}
		if logged := i%7 == 0; logged {
			if e.Weight == nil || e.PreviousDayCalories == nil {
				t.Errorf("entry %d lost its logged values", i)
			}
		} else if e.Weight != nil || e.PreviousDayCalories != nil {
			t.Errorf("entry %d should be an empty gap day", i)
		}
	}
}

func TestDensifyHistory_ShortInputsUnchanged(t *testing.T) {
	if got := densifyHistory(nil); len(got) != 0 {
		t.Errorf("nil input: len = %d, want 0", len(got))
	}
	single := []logEntry{{Date: day(3), Weight: fp(70)}}
	got := densifyHistory(single)
	if len(got) != 1 || !got[0].Date.Equal(day(3).Time) {
		t.Errorf("single entry changed: %+v", got)
	}
	// Contiguous days gain nothing.
	if got := densifyHistory(constantHistory(5, 70, 2000)); len(got) != 5 {
		t.Errorf("contiguous input: len = %d, want 5", len(got))
	}
}

// TestComputeStatus_SparseLoggingSlowsCalorieAlpha: the same thirty steady
// observations mean opposite things depending on elapsed time. Logged every
// other calendar day the missing share is 50% and the calorie alpha must sink
// to its floor; presented as a contiguous run the intake just looks steady and
// the alpha climbs to its cap. Densification is what keeps the engine on the
// calendar reading.
func TestComputeStatus_SparseLoggingSlowsCalorieAlpha(t *testing.T) {
	s := testSettings()
	observed := sparseHistory(30, 2, 70, 2000)

	dense := computeStatus(densifyHistory(observed), s)
	if !almostEqual(dense.CurrentAlphaCalorie, s.CalorieAlphaMin) {
		t.Errorf("densified: alpha = %v, want floor %v",
			dense.CurrentAlphaCalorie, s.CalorieAlphaMin)
	}

	contiguous := computeStatus(observed, s)
	if !almostEqual(contiguous.CurrentAlphaCalorie, s.CalorieAlphaMax) {
		t.Errorf("contiguous: alpha = %v, want cap %v",
			contiguous.CurrentAlphaCalorie, s.CalorieAlphaMax)
	}
}

/* ─── Cold-start blending ────────────────────────────────────────────── */

// TestComputeStatus_ColdStartBlend verifies the blend schedule: pure standard
// formula under 5 days, 0.85^(d-5) decay through day 20, exactly 0 from day 21.
func TestComputeStatus_ColdStartBlend(t *testing.T) {
	s := testSettings()
	history := constantHistory(30, 70, 2000)

	prevBlend := 1.0
	for d := 1; d <= len(history); d++ {
		r := computeStatus(history[:d], s)
		switch {
		case d < minDaysForTrend:
			if r.TdeeBlendFactorUsed != 1.0 {
				t.Errorf("day %d: blend = %v, want 1.0", d, r.TdeeBlendFactorUsed)
			}
			if !almostEqual(r.EstimatedTdeeAlgo, r.EstimatedTdeeStandard) {
				t.Errorf("day %d: algo TDEE = %v, want standard %v", d, r.EstimatedTdeeAlgo, r.EstimatedTdeeStandard)
			}
		case d < coldStartDays:
			want := math.Pow(blendDecay, float64(d-minDaysForTrend))
			if !almostEqual(r.TdeeBlendFactorUsed, want) {
				t.Errorf("day %d: blend = %v, want %v", d, r.TdeeBlendFactorUsed, want)
			}
			if r.TdeeBlendFactorUsed > prevBlend {
				t.Errorf("day %d: blend %v increased from %v", d, r.TdeeBlendFactorUsed, prevBlend)
			}
		default:
			if r.TdeeBlendFactorUsed != 0 {
				t.Errorf("day %d: blend = %v, want 0", d, r.TdeeBlendFactorUsed)
			}
			// Fully data-driven: constant intake, flat trend => TDEE = intake.
			if !almostEqual(r.EstimatedTdeeAlgo, 2000) {
				t.Errorf("day %d: algo TDEE = %v, want 2000", d, r.EstimatedTdeeAlgo)
			}
		}
		prevBlend = r.TdeeBlendFactorUsed
	}
}

/* ─── TDEE estimation and plausibility ───────────────────────────────── */

func TestEstimateTDEE_Table(t *testing.T) {
	s := testSettings()
	standard := 1941.0

	cases := []struct {
		name          string
		st            engineState
		trend         float64
		wantAlgo      float64
		wantBlend     float64
		wantPlausible bool
	}{
		{
			name:          "below minimum history falls back to standard",
			st:            engineState{day: 3, calorieEMA: 2000},
			wantAlgo:      standard,
			wantBlend:     1.0,
			wantPlausible: false,
		},
		{
			name:          "fully data-driven past cold start",
			st:            engineState{day: 25, calorieEMA: 2000},
			wantAlgo:      2000,
			wantBlend:     0,
			wantPlausible: true,
		},
		{
			name:          "trend subtracts at the kg energy equivalent",
			st:            engineState{day: 25, calorieEMA: 2000},
			trend:         0.1, // gaining 0.1 kg/day
			wantAlgo:      2000 - 7700.0/7*0.1,
			wantBlend:     0,
			wantPlausible: true,
		},
		{
			name:          "implausible estimate recovers previous plausible day",
			st:            engineState{day: 25, calorieEMA: 100, prevTdeeRaw: 1800, prevTdeePlausible: true},
			wantAlgo:      1800,
			wantBlend:     0,
			wantPlausible: true,
		},
		{
			name:          "implausible estimate with no plausible prior uses standard",
			st:            engineState{day: 25, calorieEMA: 100},
			wantAlgo:      standard,
			wantBlend:     0,
			wantPlausible: false,
		},
		{
			name:          "cold-start day blends standard and data",
			st:            engineState{day: 10, calorieEMA: 2000},
			wantAlgo:      math.Pow(0.85, 5)*standard + (1-math.Pow(0.85, 5))*2000,
			wantBlend:     math.Pow(0.85, 5),
			wantPlausible: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			algo, blend, _, plausible := estimateTDEE(tc.st, tc.trend, standard, s)
			if !almostEqual(algo, tc.wantAlgo) {
				t.Errorf("algo = %v, want %v", algo, tc.wantAlgo)
			}
			if !almostEqual(blend, tc.wantBlend) {
				t.Errorf("blend = %v, want %v", blend, tc.wantBlend)
			}
			if plausible != tc.wantPlausible {
				t.Errorf("plausible = %v, want %v", plausible, tc.wantPlausible)
			}
		})
	}
}

// TestComputeStatus_ImplausibleIntakeFallsBackToStandard runs a full history
// whose data-driven estimate never enters the plausible band (100 kcal/day):
// every day resolves to the standard formula, so the diagnostic delta is zero.
func TestComputeStatus_ImplausibleIntakeFallsBackToStandard(t *testing.T) {
	r := computeStatus(constantHistory(25, 70, 100), testSettings())
	if !almostEqual(r.EstimatedTdeeAlgo, r.EstimatedTdeeStandard) {
		t.Errorf("algo TDEE = %v, want standard %v", r.EstimatedTdeeAlgo, r.EstimatedTdeeStandard)
	}
	if !almostEqual(r.DeltaTdee, 0) {
		t.Errorf("DeltaTdee = %v, want 0", r.DeltaTdee)
	}
}

/* ─── Goal calculation ───────────────────────────────────────────────── */

func TestComputeStatus_ZeroGoalRate(t *testing.T) {
	r := computeStatus(constantHistory(30, 70, 2000), testSettings())
	if !almostEqual(r.TargetCaloriesAlgo, r.EstimatedTdeeAlgo) {
		t.Errorf("TargetCaloriesAlgo = %v, want %v (zero goal rate)", r.TargetCaloriesAlgo, r.EstimatedTdeeAlgo)
	}
	if !almostEqual(r.TargetCaloriesStandard, r.EstimatedTdeeStandard) {
		t.Errorf("TargetCaloriesStandard = %v, want %v (zero goal rate)", r.TargetCaloriesStandard, r.EstimatedTdeeStandard)
	}
}

// TestComputeStatus_GoalRateDeficit verifies the same deficit is applied to
// both models, so the target delta equals the TDEE delta.
func TestComputeStatus_GoalRateDeficit(t *testing.T) {
	s := testSettings()
	s.GoalRatePercent = 1 // lose 1% of bodyweight per week
	r := computeStatus(constantHistory(30, 70, 2000), s)

	deficit := 1.0 / 100 * r.TrueWeight * energyEquivalent(unitKg) / 7
	if !almostEqual(r.TargetCaloriesAlgo, r.EstimatedTdeeAlgo-deficit) {
		t.Errorf("TargetCaloriesAlgo = %v, want %v", r.TargetCaloriesAlgo, r.EstimatedTdeeAlgo-deficit)
	}
	if !almostEqual(r.TargetCaloriesStandard, r.EstimatedTdeeStandard-deficit) {
		t.Errorf("TargetCaloriesStandard = %v, want %v", r.TargetCaloriesStandard, r.EstimatedTdeeStandard-deficit)
	}
	if !almostEqual(r.DeltaTarget, r.DeltaTdee) {
		t.Errorf("DeltaTarget = %v, want DeltaTdee %v", r.DeltaTarget, r.DeltaTdee)
	}
}

/* ─── Invariants ─────────────────────────────────────────────────────── */

// TestComputeStatus_DeltaInvariants checks delta_tdee and delta_target are
// always the algo-minus-standard differences, across assorted prefixes.
func TestComputeStatus_DeltaInvariants(t *testing.T) {
	s := testSettings()
	s.GoalRatePercent = -0.5 // gaining goal, for variety
	history := constantHistory(40, 75, 2400)
	for _, n := range []int{1, 4, 5, 12, 21, 40} {
		r := computeStatus(history[:n], s)
		if !almostEqual(r.DeltaTdee, r.EstimatedTdeeAlgo-r.EstimatedTdeeStandard) {
			t.Errorf("prefix %d: DeltaTdee invariant violated", n)
		}
		if !almostEqual(r.DeltaTarget, r.TargetCaloriesAlgo-r.TargetCaloriesStandard) {
			t.Errorf("prefix %d: DeltaTarget invariant violated", n)
		}
	}
}
