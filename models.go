package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL values zero the time and return nil so that
// *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// dailyLogRow maps to daily_log: one row per calendar day, unique per user.
// Weight and Calories are both nullable — a day can carry either, both, or
// (after a PUT that clears them) neither. Calories record the previous day's
// intake, i.e. the figure the user knows when they weigh in on Date.
type dailyLogRow struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	Weight    *float64   `json:"weight" db:"weight"`
	Calories  *int       `json:"calories" db:"calories"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// logEntry is the engine's view of one day: an immutable fact owned by the
// log store. The engine never mutates or persists these.
type logEntry struct {
	Date                DateOnly
	Weight              *float64
	PreviousDayCalories *int
}

// toLogEntries converts ordered DB rows into the engine's input series.
// Row order (date ASC, unique per user) is guaranteed by the query and the
// UNIQUE(user_id, date) constraint.
func toLogEntries(rows []dailyLogRow) []logEntry {
	entries := make([]logEntry, len(rows))
	for i, r := range rows {
		entries[i] = logEntry{Date: r.Date, Weight: r.Weight, PreviousDayCalories: r.Calories}
	}
	return entries
}

// densifyHistory fills calendar gaps between logged rows with empty entries.
// The engine counts days by position, so a sparse logger must still present
// one entry per elapsed calendar day — otherwise the missing-day share and the
// cold-start day count both read row count instead of elapsed time. Input must
// be date-ascending and unique per day.
func densifyHistory(entries []logEntry) []logEntry {
	out := make([]logEntry, 0, len(entries))
	for i, e := range entries {
		if i > 0 {
			for d := entries[i-1].Date.AddDate(0, 0, 1); d.Before(e.Date.Time); d = d.AddDate(0, 0, 1) {
				out = append(out, logEntry{Date: DateOnly{d}})
			}
		}
		out = append(out, e)
	}
	return out
}

// userSettings maps to user_settings: profile fields feeding the standard
// TDEE formula plus the smoothing-engine parameters. Passed to the engine by
// value. The alpha-band invariant (0 < min ≤ alpha ≤ max < 1) is enforced at
// the PATCH boundary, not inside the engine.
type userSettings struct {
	UserID int `json:"user_id" db:"user_id"`

	Height          float64 `json:"height" db:"height"` // cm, or total inches for ft_in
	HeightUnit      string  `json:"height_unit" db:"height_unit"`
	Age             int     `json:"age" db:"age"`
	Sex             string  `json:"sex" db:"sex"`
	ActivityLevel   string  `json:"activity_level" db:"activity_level"`
	WeightUnit      string  `json:"weight_unit" db:"weight_unit"`
	GoalRatePercent float64 `json:"goal_rate_percent" db:"goal_rate_percent"` // % bodyweight/week, signed

	WeightAlpha        float64 `json:"weight_alpha" db:"weight_alpha"`
	WeightAlphaMin     float64 `json:"weight_alpha_min" db:"weight_alpha_min"`
	WeightAlphaMax     float64 `json:"weight_alpha_max" db:"weight_alpha_max"`
	CalorieAlpha       float64 `json:"calorie_alpha" db:"calorie_alpha"`
	CalorieAlphaMin    float64 `json:"calorie_alpha_min" db:"calorie_alpha_min"`
	CalorieAlphaMax    float64 `json:"calorie_alpha_max" db:"calorie_alpha_max"`
	TrendSmoothingDays int     `json:"trend_smoothing_days" db:"trend_smoothing_days"`
}

// calculationResult is the engine's terminal snapshot, recreated on every
// call. DeltaTdee and DeltaTarget are always the algo-minus-standard
// differences of their respective pairs.
type calculationResult struct {
	TrueWeight             float64 `json:"true_weight"`
	WeightTrendPerWeek     float64 `json:"weight_trend_per_week"`
	AverageCalories        float64 `json:"average_calories"`
	EstimatedTdeeAlgo      float64 `json:"estimated_tdee_algo"`
	TargetCaloriesAlgo     float64 `json:"target_calories_algo"`
	EstimatedTdeeStandard  float64 `json:"estimated_tdee_standard"`
	TargetCaloriesStandard float64 `json:"target_calories_standard"`
	DeltaTdee              float64 `json:"delta_tdee"`
	DeltaTarget            float64 `json:"delta_target"`
	CurrentAlphaWeight     float64 `json:"current_alpha_weight"`
	CurrentAlphaCalorie    float64 `json:"current_alpha_calorie"`
	TdeeBlendFactorUsed    float64 `json:"tdee_blend_factor_used"`
}

// statusHistoryPoint pairs one history date with the engine result computed
// over the prefix ending on that date. Used by the chart feed and CSV export.
type statusHistoryPoint struct {
	Date   DateOnly          `json:"date"`
	Result calculationResult `json:"result"`
}

/* ─── Request types ──────────────────────────────────────────────────── */

// upsertDailyLogRequest is the body for POST /api/daily-log. Weight and
// Calories are pointers so a day can be logged with either one alone.
type upsertDailyLogRequest struct {
	Date     string   `json:"date"`
	Weight   *float64 `json:"weight"`
	Calories *int     `json:"calories"`
}

// patchSettingsRequest is the body for PATCH /api/settings. All fields are
// pointers — only non-nil fields get written to the database.
type patchSettingsRequest struct {
	Height          *float64 `json:"height"`
	HeightUnit      *string  `json:"height_unit"`
	Age             *int     `json:"age"`
	Sex             *string  `json:"sex"`
	ActivityLevel   *string  `json:"activity_level"`
	WeightUnit      *string  `json:"weight_unit"`
	GoalRatePercent *float64 `json:"goal_rate_percent"`

	WeightAlpha        *float64 `json:"weight_alpha"`
	WeightAlphaMin     *float64 `json:"weight_alpha_min"`
	WeightAlphaMax     *float64 `json:"weight_alpha_max"`
	CalorieAlpha       *float64 `json:"calorie_alpha"`
	CalorieAlphaMin    *float64 `json:"calorie_alpha_min"`
	CalorieAlphaMax    *float64 `json:"calorie_alpha_max"`
	TrendSmoothingDays *int     `json:"trend_smoothing_days"`
}
