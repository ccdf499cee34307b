// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthStatus is the health response body.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /api/health. Degrades to 503 when the database does
// not answer a ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    make(map[string]Check),
	}

	start := time.Now()
	httpStatus := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status.Status = "degraded"
		status.Checks["database"] = Check{
			Status:  "fail",
			Message: "ping failed",
		}
		httpStatus = http.StatusServiceUnavailable
	} else {
		status.Checks["database"] = Check{
			Status:  "ok",
			Latency: fmt.Sprintf("%.1fms", float64(time.Since(start).Microseconds())/1000),
		}
	}

	writeJSON(w, httpStatus, status)
}
