package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"legislativo/internal/dashboard"
	"legislativo/internal/models"
)

const (
	defaultBuildsLimit = 20
	maxBuildsLimit     = 200
)

// DashboardService is what the handlers need from the running dashboard
type DashboardService interface {
	View() (*dashboard.View, error)
	Rebuild(ctx context.Context) error
}

// BuildHistory lists past builds, newest first
type BuildHistory interface {
	RecentBuilds(limit int) ([]models.BuildRecord, error)
}

type DashboardHandler struct {
	service DashboardService
	history BuildHistory
	logger  *zap.Logger
}

// NewDashboardHandler creates the handler set. history may be nil.
func NewDashboardHandler(service DashboardService, history BuildHistory, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		history: history,
		logger:  logger,
	}
}

func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view, err := h.service.View()
	if errors.Is(err, dashboard.ErrNotBuilt) {
		http.Error(w, "Dashboard not available", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		h.logger.Error("Error building view", zap.Error(err))
		http.Error(w, "Error building dashboard", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *DashboardHandler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// rebuilds outlive the request that triggered them
	if err := h.service.Rebuild(context.WithoutCancel(r.Context())); err != nil {
		h.logger.Error("Rebuild failed", zap.Error(err))
		http.Error(w, dashboard.ErrorMessage, http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Dashboard rebuilt successfully",
	})
}

func (h *DashboardHandler) HandleGetBuilds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		http.Error(w, "Build history not available", http.StatusNotFound)
		return
	}

	limit := defaultBuildsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxBuildsLimit)
	}

	builds, err := h.history.RecentBuilds(limit)
	if err != nil {
		h.logger.Error("Error fetching builds", zap.Error(err))
		http.Error(w, "Error fetching builds", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":  len(builds),
		"builds": builds,
	})
}

func (h *DashboardHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
