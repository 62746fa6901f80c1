package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (db pool) for all route handlers.
type Handler struct {
	db *pgxpool.Pool
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// isUniqueViolation reports whether err is a Postgres unique_violation
// (SQLSTATE 23505), e.g. a write landing on a (user_id, date) pair that
// already has a row.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn)
// because managed Postgres providers close idle connections after a few minutes.
func getDBPool() *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// loadHistory fetches the user's full ordered daily log and converts it to
// the engine's input series. One place owns the engine's input contract:
// date ASC, unique per user, and one entry per calendar day — unlogged days
// between the first and last row become empty entries so the engine sees
// elapsed time, not just the rows that happen to exist.
func (h *Handler) loadHistory(c *gin.Context, userID int) ([]logEntry, error) {
	rows, err := queryMany[dailyLogRow](h.db, c,
		`SELECT * FROM daily_log WHERE user_id = @userID ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, err
	}
	return densifyHistory(toLogEntries(rows)), nil
}

// loadSettings fetches the user's settings row.
func (h *Handler) loadSettings(c *gin.Context, userID int) (userSettings, error) {
	return queryOne[userSettings](h.db, c,
		"SELECT * FROM user_settings WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/daily-log", h.getDailyLog)
	api.POST("/daily-log", h.upsertDailyLogEntry)
	api.PUT("/daily-log/:id", h.updateDailyLogEntry)
	api.DELETE("/daily-log/:id", h.deleteDailyLogEntry)
	api.GET("/daily-log/earliest-date", h.getEarliestLogDate)
	api.GET("/settings", h.getSettings)
	api.PATCH("/settings", h.patchSettings)
	api.GET("/status", h.getStatus)
	api.GET("/status/history", h.getStatusHistory)
	api.GET("/export/csv", h.exportCSV)
}
