package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// getStatus runs the smoothing engine over the user's full history and
// returns the terminal snapshot.
// GET /api/status. An empty history is fine: all smoothed fields come back
// zero and the standard-formula TDEE is computed off a zero weight — the
// frontend reads that as "not enough data yet", not as an error.
func (h *Handler) getStatus(c *gin.Context) {
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

	c.JSON(http.StatusOK, computeStatus(history, settings))
}

// replayPrefixes runs the engine once per growing prefix of the history and
// returns one point per day. Quadratic in history length — the adaptive alpha
// trajectory depends on the entire prior sequence, so there is no shortcut.
// Acceptable for the few years of daily rows a single user accumulates.
func replayPrefixes(history []logEntry, settings userSettings) []statusHistoryPoint {
	points := make([]statusHistoryPoint, len(history))
	for i := range history {
		points[i] = statusHistoryPoint{
			Date:   history[i].Date,
			Result: computeStatus(history[:i+1], settings),
		}
	}
	return points
}

// getStatusHistory returns the per-day engine series for charting.
// GET /api/status/history?start=YYYY-MM-DD&end=YYYY-MM-DD (both optional).
// Each point is computed over the full prefix ending on its date, so the
// series matches what getStatus reported on each historical day; start/end
// only filter which points are returned, never which entries feed the engine.
func (h *Handler) getStatusHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start != "" {
		if _, err := time.Parse("2006-01-02", start); err != nil {
			apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
			return
		}
	}
	if end != "" {
		if _, err := time.Parse("2006-01-02", end); err != nil {
			apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
			return
		}
	}

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

	points := replayPrefixes(history, settings)

	// Filter after the replay so early entries still shape the later points.
	filtered := make([]statusHistoryPoint, 0, len(points))
	for _, p := range points {
		d := p.Date.Format("2006-01-02")
		if start != "" && d < start {
			continue
		}
		if end != "" && d > end {
			continue
		}
		filtered = append(filtered, p)
	}

	c.JSON(http.StatusOK, filtered)
}
