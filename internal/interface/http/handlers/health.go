// Package handlers contains the HTTP handlers for the bot's web surface.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CheckFunc probes one dependency; it returns an error when unhealthy.
type CheckFunc func(ctx context.Context) error

// checkResult is one dependency's status in the health response.
type checkResult struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// healthResponse is the /health response body.
type healthResponse struct {
	Healthy   bool                   `json:"healthy"`
	Uptime    string                 `json:"uptime"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]checkResult `json:"checks,omitempty"`
}

// HealthHandler reports process and dependency health.
type HealthHandler struct {
	mu        sync.RWMutex
	checks    map[string]CheckFunc
	startedAt time.Time
}

// NewHealthHandler creates the handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checks:    make(map[string]CheckFunc),
		startedAt: time.Now(),
	}
}

// AddCheck registers a named dependency probe.
func (h *HealthHandler) AddCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// ServeHTTP implements http.Handler. Returns 200 when every check passes and
// 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	h.mu.RLock()
	checks := make(map[string]CheckFunc, len(h.checks))
	for name, check := range h.checks {
		checks[name] = check
	}
	h.mu.RUnlock()

	resp := healthResponse{
		Healthy:   true,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Timestamp: time.Now(),
	}

	if len(checks) > 0 {
		resp.Checks = make(map[string]checkResult, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Healthy = false
				resp.Checks[name] = checkResult{Healthy: false, Message: err.Error()}
				continue
			}
			resp.Checks[name] = checkResult{Healthy: true}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !resp.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
