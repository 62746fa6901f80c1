package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validWeightUnits / validHeightUnits are the explicit unit enums. Unit
// choice is always taken from these settings — the engine never guesses units
// from the magnitude of a value.
var validWeightUnits = map[string]bool{unitKg: true, unitLb: true}
var validHeightUnits = map[string]bool{unitCm: true, unitFtIn: true}

// validateAlphaBands checks the engine precondition 0 < min ≤ alpha ≤ max < 1
// for one alpha family. The engine itself does not validate — an out-of-band
// row gives undefined adaptation, so reject it here before it is persisted.
func validateAlphaBands(name string, alpha, min, max float64) error {
	if min <= 0 || max >= 1 {
		return fmt.Errorf("%s_alpha bounds must lie in (0, 1)", name)
	}
	if min > max {
		return fmt.Errorf("%s_alpha_min must not exceed %s_alpha_max", name, name)
	}
	if alpha < min || alpha > max {
		return fmt.Errorf("%s_alpha must lie within [%s_alpha_min, %s_alpha_max]", name, name, name)
	}
	return nil
}

// validateSettings checks the full post-update row.
func validateSettings(s userSettings) error {
	if err := validateAlphaBands("weight", s.WeightAlpha, s.WeightAlphaMin, s.WeightAlphaMax); err != nil {
		return err
	}
	if err := validateAlphaBands("calorie", s.CalorieAlpha, s.CalorieAlphaMin, s.CalorieAlphaMax); err != nil {
		return err
	}
	if s.TrendSmoothingDays < 1 {
		return fmt.Errorf("trend_smoothing_days must be at least 1")
	}
	return nil
}

// getSettings returns the settings row for the authenticated user.
// GET /api/settings.
func (h *Handler) getSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	s, err := h.loadSettings(c, userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "settings not found")
		return
	}

	c.JSON(http.StatusOK, s)
}

// patchSettings updates only the provided settings fields.
// PATCH /api/settings. Uses pointer fields in the request body to distinguish
// "not provided" from zero — only non-nil fields get updated. Enum fields and
// the alpha-band invariant are validated before anything is written; an
// invalid alpha configuration would silently corrupt every future engine run.
func (h *Handler) patchSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.ActivityLevel != nil {
		if _, ok := activityMultipliers[*body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, very, extra")
			return
		}
	}
	if body.Sex != nil && !validSexes[*body.Sex] {
		apiError(c, http.StatusBadRequest, "sex must be one of: male, female")
		return
	}
	if body.WeightUnit != nil && !validWeightUnits[*body.WeightUnit] {
		apiError(c, http.StatusBadRequest, "weight_unit must be one of: kg, lb")
		return
	}
	if body.HeightUnit != nil && !validHeightUnits[*body.HeightUnit] {
		apiError(c, http.StatusBadRequest, "height_unit must be one of: cm, ft_in")
		return
	}
	if body.Age != nil && (*body.Age < 0 || *body.Age > 130) {
		apiError(c, http.StatusBadRequest, "age must be between 0 and 130")
		return
	}
	if body.Height != nil && *body.Height < 0 {
		apiError(c, http.StatusBadRequest, "height must not be negative")
		return
	}

	// Build SET clause dynamically — only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}
	add := func(column, arg string, value any) {
		setClauses = append(setClauses, column+" = @"+arg)
		args[arg] = value
	}

	if body.Height != nil {
		add("height", "height", *body.Height)
	}
	if body.HeightUnit != nil {
		add("height_unit", "heightUnit", *body.HeightUnit)
	}
	if body.Age != nil {
		add("age", "age", *body.Age)
	}
	if body.Sex != nil {
		add("sex", "sex", *body.Sex)
	}
	if body.ActivityLevel != nil {
		add("activity_level", "activityLevel", *body.ActivityLevel)
	}
	if body.WeightUnit != nil {
		add("weight_unit", "weightUnit", *body.WeightUnit)
	}
	if body.GoalRatePercent != nil {
		add("goal_rate_percent", "goalRatePercent", *body.GoalRatePercent)
	}
	if body.WeightAlpha != nil {
		add("weight_alpha", "weightAlpha", *body.WeightAlpha)
	}
	if body.WeightAlphaMin != nil {
		add("weight_alpha_min", "weightAlphaMin", *body.WeightAlphaMin)
	}
	if body.WeightAlphaMax != nil {
		add("weight_alpha_max", "weightAlphaMax", *body.WeightAlphaMax)
	}
	if body.CalorieAlpha != nil {
		add("calorie_alpha", "calorieAlpha", *body.CalorieAlpha)
	}
	if body.CalorieAlphaMin != nil {
		add("calorie_alpha_min", "calorieAlphaMin", *body.CalorieAlphaMin)
	}
	if body.CalorieAlphaMax != nil {
		add("calorie_alpha_max", "calorieAlphaMax", *body.CalorieAlphaMax)
	}
	if body.TrendSmoothingDays != nil {
		add("trend_smoothing_days", "trendSmoothingDays", *body.TrendSmoothingDays)
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	// Validate the alpha bands against the merged row (stored values plus the
	// patch) so a partial update can't sneak past validation.
	current, err := h.loadSettings(c, userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "settings not found")
		return
	}
	merged := applyPatch(current, body)
	if err := validateSettings(merged); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := "UPDATE user_settings SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"

	s, err := queryOne[userSettings](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	c.JSON(http.StatusOK, s)
}

// applyPatch overlays the non-nil request fields onto a settings value.
func applyPatch(s userSettings, body patchSettingsRequest) userSettings {
	if body.Height != nil {
		s.Height = *body.Height
	}
	if body.HeightUnit != nil {
		s.HeightUnit = *body.HeightUnit
	}
	if body.Age != nil {
		s.Age = *body.Age
	}
	if body.Sex != nil {
		s.Sex = *body.Sex
	}
	if body.ActivityLevel != nil {
		s.ActivityLevel = *body.ActivityLevel
	}
	if body.WeightUnit != nil {
		s.WeightUnit = *body.WeightUnit
	}
	if body.GoalRatePercent != nil {
		s.GoalRatePercent = *body.GoalRatePercent
	}
	if body.WeightAlpha != nil {
		s.WeightAlpha = *body.WeightAlpha
	}
	if body.WeightAlphaMin != nil {
		s.WeightAlphaMin = *body.WeightAlphaMin
	}
	if body.WeightAlphaMax != nil {
		s.WeightAlphaMax = *body.WeightAlphaMax
	}
	if body.CalorieAlpha != nil {
		s.CalorieAlpha = *body.CalorieAlpha
	}
	if body.CalorieAlphaMin != nil {
		s.CalorieAlphaMin = *body.CalorieAlphaMin
	}
	if body.CalorieAlphaMax != nil {
		s.CalorieAlphaMax = *body.CalorieAlphaMax
	}
	if body.TrendSmoothingDays != nil {
		s.TrendSmoothingDays = *body.TrendSmoothingDays
	}
	return s
}
