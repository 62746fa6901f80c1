package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getDailyLog returns daily log entries for the authenticated user within [start, end].
// GET /api/daily-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getDailyLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := queryMany[dailyLogRow](h.db, c,
		`SELECT * FROM daily_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch daily log")
		return
	}
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []dailyLogRow{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertDailyLogEntry creates or updates the entry for the given date.
// POST /api/daily-log. Body: { "date": "YYYY-MM-DD", "weight"?, "calories"? }.
// The UNIQUE(user_id, date) constraint means posting the same date updates in
// place; an omitted field keeps the stored value, so a morning weigh-in and a
// later calorie entry can land as two separate posts.
func (h *Handler) upsertDailyLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body upsertDailyLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.Weight == nil && body.Calories == nil {
		apiError(c, http.StatusBadRequest, "at least one of weight or calories is required")
		return
	}
	if body.Weight != nil && (*body.Weight <= 0 || *body.Weight > 9999.9) {
		apiError(c, http.StatusBadRequest, "weight must be between 0 and 9999.9")
		return
	}
	if body.Calories != nil && *body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories must not be negative")
		return
	}

	entry, err := queryOne[dailyLogRow](h.db, c,
		`INSERT INTO daily_log (user_id, date, weight, calories)
		 VALUES (@userID, @date, @weight, @calories)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			weight     = COALESCE(EXCLUDED.weight, daily_log.weight),
			calories   = COALESCE(EXCLUDED.calories, daily_log.calories),
			updated_at = now()
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": body.Date, "weight": body.Weight, "calories": body.Calories})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert daily log entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// updateDailyLogEntry partially updates an existing entry.
// PUT /api/daily-log/:id. Body: { "date"?, "weight"?, "calories"? }.
// Uses COALESCE so omitted fields keep their current values. Moving an entry
// onto a date that already has one returns 409.
func (h *Handler) updateDailyLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Date     *string  `json:"date"`
		Weight   *float64 `json:"weight"`
		Calories *int     `json:"calories"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date != nil {
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}
	if body.Weight != nil && (*body.Weight <= 0 || *body.Weight > 9999.9) {
		apiError(c, http.StatusBadRequest, "weight must be between 0 and 9999.9")
		return
	}
	if body.Calories != nil && *body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories must not be negative")
		return
	}

	entry, err := queryOne[dailyLogRow](h.db, c,
		`UPDATE daily_log SET
			date       = COALESCE(@date, date),
			weight     = COALESCE(@weight, weight),
			calories   = COALESCE(@calories, calories),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID, "date": body.Date, "weight": body.Weight, "calories": body.Calories})
	if err != nil {
		// Distinguish a missing row and a date collision from a real DB
		// failure so callers get an actionable status code.
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			apiError(c, http.StatusNotFound, "daily log entry not found")
		case isUniqueViolation(err):
			apiError(c, http.StatusConflict, "an entry for that date already exists")
		default:
			apiError(c, http.StatusInternalServerError, "failed to update daily log entry")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteDailyLogEntry removes a daily log entry by ID.
// DELETE /api/daily-log/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteDailyLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM daily_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete daily log entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "daily log entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// getEarliestLogDate returns the earliest date the user has logged anything.
// GET /api/daily-log/earliest-date. Used by the frontend for the "All Time"
// range start. Returns { "date": "YYYY-MM-DD" } or { "date": null }.
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	userID := c.GetInt("user_id")

	// SELECT MIN returns a nullable date — use *string to handle the NULL case.
	var date *string
	err := h.db.QueryRow(c,
		`SELECT TO_CHAR(MIN(date), 'YYYY-MM-DD') FROM daily_log WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID}).Scan(&date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch earliest date")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date})
}
