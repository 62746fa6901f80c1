package main

import (
	"encoding/csv"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// csvHeader is the column order for the export file. Raw logged values first,
// then the engine's per-day reconstruction.
var csvHeader = []string{
	"date", "weight", "calories",
	"true_weight", "weight_trend_per_week", "average_calories",
	"estimated_tdee_algo", "target_calories_algo",
	"estimated_tdee_standard", "target_calories_standard",
	"delta_tdee", "delta_target",
	"current_alpha_weight", "current_alpha_calorie", "tdee_blend_factor_used",
}

// writeStatusCSV streams the per-day reconstruction as CSV: one row per
// history day, raw values alongside the engine result for that day's prefix.
func writeStatusCSV(w io.Writer, history []logEntry, settings userSettings) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	points := replayPrefixes(history, settings)
	for i, p := range points {
		e := history[i]
		weight := ""
		if e.Weight != nil {
			weight = strconv.FormatFloat(*e.Weight, 'f', 1, 64)
		}
		calories := ""
		if e.PreviousDayCalories != nil {
			calories = strconv.Itoa(*e.PreviousDayCalories)
		}
		r := p.Result
		row := []string{
			p.Date.Format("2006-01-02"), weight, calories,
			fmtF(r.TrueWeight), fmtF(r.WeightTrendPerWeek), fmtF(r.AverageCalories),
			fmtF(r.EstimatedTdeeAlgo), fmtF(r.TargetCaloriesAlgo),
			fmtF(r.EstimatedTdeeStandard), fmtF(r.TargetCaloriesStandard),
			fmtF(r.DeltaTdee), fmtF(r.DeltaTarget),
			fmtF(r.CurrentAlphaWeight), fmtF(r.CurrentAlphaCalorie), fmtF(r.TdeeBlendFactorUsed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// fmtF formats an engine float with enough precision for spreadsheets
// without trailing binary-float noise.
func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// exportCSV streams the user's full per-day reconstruction as a CSV download.
// GET /api/export/csv.
func (h *Handler) exportCSV(c *gin.Context) {
	userID := c.GetInt("user_id")

	settings, err := h.loadSettings(c, userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "settings not found")
		return
	}
	history, err := h.loadHistory(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch daily log")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="true-trend-export.csv"`)
	if err := writeStatusCSV(c.Writer, history, settings); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("[exportCSV] write failed for user %d: %v", userID, err)
	}
}
