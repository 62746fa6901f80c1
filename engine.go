package main

import "math"

/* ─── Algorithm tunables ─────────────────────────────────────────────── */

// The smoothing engine is deliberately rule-based rather than a proper
// state-space filter. Every threshold below is a domain tunable, not an
// incidental literal; they get their own unit tests.
const (
	// alphaStep is the per-day nudge applied to an adaptive alpha.
	alphaStep = 0.01

	// Mean relative weight prediction error (percent) below which the weight
	// alpha speeds up, and above which it slows down.
	weightErrCalmPct  = 0.25
	weightErrNoisyPct = 0.75

	// Calorie coefficient-of-variation bands driving calorie-alpha adaptation.
	calorieCVSteady = 0.20
	calorieCVNoisy  = 0.35

	// Missing-day percentage bands over the trailing 10 calendar days.
	missingPctLow  = 15.0
	missingPctHigh = 30.0

	// calorieWindowSize is the number of present calorie samples (and the
	// calendar span for missing-day counting) used for CV adaptation.
	calorieWindowSize = 10

	// A day-over-day smoothed-weight change above this fraction of bodyweight
	// is treated as a scale artifact and damped to zero in the trend.
	outlierDailyFraction = 0.05

	// Plausibility band for the data-driven TDEE estimate, kcal/day.
	tdeePlausibleMin = 500.0
	tdeePlausibleMax = 7000.0

	// Cold-start horizon: below minDaysForTrend the engine is 100% formula;
	// from there the formula's share decays by blendDecay per day until
	// coldStartDays, after which the estimate is fully data-driven.
	minDaysForTrend = 5
	coldStartDays   = 21
	blendDecay      = 0.85

	// Energy content of a unit of bodyweight, kcal. Selected by the user's
	// explicit weight unit, never inferred from magnitudes.
	kcalPerLb = 3500.0
	kcalPerKg = 7700.0
)

// energyEquivalent returns kcal per unit-weight per day for the given unit.
func energyEquivalent(unit string) float64 {
	if unit == unitLb {
		return kcalPerLb / 7.0
	}
	return kcalPerKg / 7.0
}

/* ─── Engine state ───────────────────────────────────────────────────── */

// engineState carries everything the per-day step needs from prior days.
// It is a plain value threaded through the fold, so computeStatus stays pure
// and safe for concurrent callers. A caller could checkpoint it to make
// appends incremental; computeStatus itself always folds from zero.
type engineState struct {
	day int // days consumed so far

	weightEMA   float64
	weightAlpha float64
	weightErrs  window // trailing relative prediction errors, size trendSmoothingDays

	calorieEMA     float64
	calorieAlpha   float64
	calorieSamples window // last calorieWindowSize present raw values
	calorieMissing window // 1/0 per calendar day, trailing calorieWindowSize days

	deltas window // trailing day-over-day weight-EMA deltas, size trendSmoothingDays

	prevTdeeRaw       float64 // previous day's resolved data-driven TDEE
	prevTdeePlausible bool
}

// newEngineState seeds the fold with the configured starting alphas.
func newEngineState(s userSettings) engineState {
	n := s.TrendSmoothingDays
	if n < 1 {
		n = 1
	}
	return engineState{
		weightAlpha:    s.WeightAlpha,
		calorieAlpha:   s.CalorieAlpha,
		weightErrs:     newWindow(n),
		calorieSamples: newWindow(calorieWindowSize),
		calorieMissing: newWindow(calorieWindowSize),
		deltas:         newWindow(n),
	}
}

// window is a fixed-capacity trailing sample buffer with running mean/stddev.
type window struct {
	capacity int
	values   []float64
	pos      int
	count    int
	sum      float64
}

func newWindow(capacity int) window {
	return window{capacity: capacity, values: make([]float64, capacity)}
}

func (w *window) push(v float64) {
	if w.count == w.capacity {
		w.sum -= w.values[w.pos]
	} else {
		w.count++
	}
	w.values[w.pos] = v
	w.sum += v
	w.pos = (w.pos + 1) % w.capacity
}

func (w *window) full() bool { return w.count == w.capacity }

func (w *window) mean() float64 {
	if w.count == 0 {
		return 0
	}
	return w.sum / float64(w.count)
}

// stddev is the sample standard deviation (n−1 denominator).
func (w *window) stddev() float64 {
	if w.count < 2 {
		return 0
	}
	m := w.mean()
	var ss float64
	for i := 0; i < w.count; i++ {
		d := w.values[i] - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(w.count-1))
}

// meanLast averages the most recent n samples (all samples if fewer).
func (w *window) meanLast(n int) float64 {
	if n > w.count {
		n = w.count
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		idx := (w.pos - 1 - i + w.capacity*2) % w.capacity
		sum += w.values[idx]
	}
	return sum / float64(n)
}

/* ─── Per-day step ───────────────────────────────────────────────────── */

// dayStatus is the engine output after consuming one day.
type dayStatus struct {
	trueWeight      float64
	trendPerDay     float64
	averageCalories float64
	tdeeAlgo        float64
	tdeeStandard    float64
	blendFactor     float64
}

// stepDay folds one log entry into the state and returns the day's snapshot.
// Pure: the input state is passed by value and the updated copy returned.
func stepDay(st engineState, e logEntry, s userSettings) (engineState, dayStatus) {
	first := st.day == 0
	st.day++

	prevEMA := st.weightEMA
	st = stepWeight(st, e.Weight, s, first)
	st = stepCalories(st, e.PreviousDayCalories, s, first)
	st = stepTrend(st, prevEMA, first)

	trendPerDay := st.deltas.meanLast(s.TrendSmoothingDays)
	standard := standardTDEE(st.weightEMA, s)

	algo, blend, raw, plausible := estimateTDEE(st, trendPerDay, standard, s)
	st.prevTdeeRaw = raw
	st.prevTdeePlausible = plausible

	return st, dayStatus{
		trueWeight:      st.weightEMA,
		trendPerDay:     trendPerDay,
		averageCalories: st.calorieEMA,
		tdeeAlgo:        algo,
		tdeeStandard:    standard,
		blendFactor:     blend,
	}
}

// stepWeight applies adaptive-gain smoothing to the day's raw weight.
// Missing days carry the EMA forward untouched and contribute no error sample.
func stepWeight(st engineState, raw *float64, s userSettings, first bool) engineState {
	if first {
		if raw != nil {
			st.weightEMA = *raw
		}
		return st
	}
	if raw == nil {
		return st
	}
	if st.weightEMA != 0 {
		errPct := math.Abs(*raw-st.weightEMA) / st.weightEMA * 100
		st.weightErrs.push(errPct)
		if st.weightErrs.full() {
			switch mean := st.weightErrs.mean(); {
			case mean < weightErrCalmPct:
				st.weightAlpha = math.Min(st.weightAlpha+alphaStep, s.WeightAlphaMax)
			case mean > weightErrNoisyPct:
				st.weightAlpha = math.Max(st.weightAlpha-alphaStep, s.WeightAlphaMin)
			}
		}
	}
	st.weightEMA = *raw*st.weightAlpha + st.weightEMA*(1-st.weightAlpha)
	return st
}

// stepCalories mirrors stepWeight but adapts on the coefficient of variation
// of recent intake plus the share of unlogged days, since a single day's
// calorie count has no meaningful "prediction error".
func stepCalories(st engineState, raw *int, s userSettings, first bool) engineState {
	if raw == nil {
		st.calorieMissing.push(1)
	} else {
		st.calorieMissing.push(0)
		st.calorieSamples.push(float64(*raw))
	}
	if first {
		if raw != nil {
			st.calorieEMA = float64(*raw)
		}
		return st
	}
	if raw == nil {
		return st
	}
	if st.calorieSamples.full() {
		mean := st.calorieSamples.mean()
		cv := 1.0 // no signal at zero mean, treat as worst case
		if mean != 0 {
			cv = st.calorieSamples.stddev() / mean
		}
		missingPct := st.calorieMissing.sum / calorieWindowSize * 100
		switch {
		case cv < calorieCVSteady && missingPct < missingPctLow:
			st.calorieAlpha = math.Min(st.calorieAlpha+alphaStep, s.CalorieAlphaMax)
		case cv > calorieCVNoisy || missingPct > missingPctHigh:
			st.calorieAlpha = math.Max(st.calorieAlpha-alphaStep, s.CalorieAlphaMin)
		}
	}
	st.calorieEMA = float64(*raw)*st.calorieAlpha + st.calorieEMA*(1-st.calorieAlpha)
	return st
}

// stepTrend records the day-over-day smoothed-weight delta, damping any
// single-day move over outlierDailyFraction of bodyweight to zero. The raw
// EMA still absorbs the jump; only the trend ignores it.
func stepTrend(st engineState, prev float64, first bool) engineState {
	if first {
		st.deltas.push(0)
		return st
	}
	delta := st.weightEMA - prev
	if prev != 0 && math.Abs(delta)/prev > outlierDailyFraction {
		delta = 0
	}
	st.deltas.push(delta)
	return st
}

// estimateTDEE produces the blended data-driven TDEE for the day.
// Returns the estimate, the blend factor used, and the resolved raw estimate
// with its plausibility (kept for the next day's clamp fallback).
func estimateTDEE(st engineState, trendPerDay, standard float64, s userSettings) (algo, blend, raw float64, plausible bool) {
	if st.day < minDaysForTrend {
		return standard, 1.0, 0, false
	}

	raw = st.calorieEMA - energyEquivalent(s.WeightUnit)*trendPerDay
	plausible = raw >= tdeePlausibleMin && raw <= tdeePlausibleMax
	if !plausible {
		if st.prevTdeePlausible {
			raw = st.prevTdeeRaw
			plausible = true
		} else {
			raw = standard
		}
	}

	switch {
	case st.day >= coldStartDays:
		blend = 0
	default:
		blend = math.Pow(blendDecay, float64(st.day-minDaysForTrend))
		blend = math.Min(math.Max(blend, 0), 1)
	}
	algo = blend*standard + (1-blend)*raw
	return algo, blend, raw, plausible
}

/* ─── Full replay ────────────────────────────────────────────────────── */

// computeStatus replays the full ordered history and returns the terminal
// snapshot. Dates must be strictly ascending and unique; that is the
// storage layer's contract, not re-checked here. The adaptive alpha
// trajectory depends on the whole prior sequence, so every call starts from
// day one — callers wanting a per-day series run this once per prefix.
func computeStatus(history []logEntry, s userSettings) calculationResult {
	st := newEngineState(s)
	var last dayStatus
	for _, e := range history {
		st, last = stepDay(st, e, s)
	}
	if len(history) == 0 {
		// Neutral output: smoothed metrics zero, standard formula computed
		// off zero weight. Degenerate but deliberately non-failing; callers
		// read all-zero smoothed fields as "insufficient data".
		last.tdeeStandard = standardTDEE(0, s)
		last.tdeeAlgo = last.tdeeStandard
		last.blendFactor = 1.0
	}

	// Goal: a weekly percent-of-bodyweight rate converted to a daily
	// deficit/surplus, applied identically to both models so their delta
	// stays an apples-to-apples diagnostic.
	deficitPerDay := s.GoalRatePercent / 100 * last.trueWeight * energyEquivalent(s.WeightUnit) / 7

	r := calculationResult{
		TrueWeight:             last.trueWeight,
		WeightTrendPerWeek:     last.trendPerDay * 7,
		AverageCalories:        last.averageCalories,
		EstimatedTdeeAlgo:      last.tdeeAlgo,
		EstimatedTdeeStandard:  last.tdeeStandard,
		TargetCaloriesAlgo:     last.tdeeAlgo - deficitPerDay,
		TargetCaloriesStandard: last.tdeeStandard - deficitPerDay,
		CurrentAlphaWeight:     st.weightAlpha,
		CurrentAlphaCalorie:    st.calorieAlpha,
		TdeeBlendFactorUsed:    last.blendFactor,
	}
	r.DeltaTdee = r.EstimatedTdeeAlgo - r.EstimatedTdeeStandard
	r.DeltaTarget = r.TargetCaloriesAlgo - r.TargetCaloriesStandard
	return r
}
