package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xelth-com/pcardgo/internal/models"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
)

// DashboardSummary aggregates the numbers the dashboard shows.
type DashboardSummary struct {
	Year            int                      `json:"year"`
	CountsByStatus  map[string]int64         `json:"countsByStatus"`
	ApprovedTotal   float64                  `json:"approvedTotal"`
	SpendByCategory map[string]float64       `json:"spendByCategory"`
	PendingCount    int64                    `json:"pendingCount"`
	Recent          []models.PurchaseRequest `json:"recent"`
	GeneratedAt     time.Time                `json:"generatedAt"`
}

// dashboardSummary returns aggregate stats. Employees get a view scoped to
// their own requests; the shared approver/admin view is served from Redis
// when caching is enabled.
func (r *Router) dashboardSummary(w http.ResponseWriter, req *http.Request) {
	role := r.currentUserRole(req)

	// Only the shared admin/approver view is cacheable.
	cacheable := role == models.RoleAdmin || role == models.RoleApprover
	if cacheable {
		if data, ok := r.cache.Get(req.Context(), dashboardCacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(data)
			return
		}
	}

	summary, err := r.buildDashboardSummary(req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard summary")
		return
	}

	if cacheable {
		if data, err := json.Marshal(summary); err == nil {
			r.cache.Set(req.Context(), dashboardCacheKey, data, dashboardCacheTTL)
		}
	}

	respondJSON(w, http.StatusOK, summary)
}

func (r *Router) buildDashboardSummary(req *http.Request) (*DashboardSummary, error) {
	year := time.Now().Year()
	role := r.currentUserRole(req)
	employee := role == models.RoleEmployee

	summary := &DashboardSummary{
		Year:            year,
		CountsByStatus:  map[string]int64{},
		SpendByCategory: map[string]float64{},
		GeneratedAt:     time.Now(),
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	counts := r.db.Model(&models.PurchaseRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if employee {
		counts = counts.Where("submitted_by = ?", r.currentUserID(req))
	}
	var statusRows []statusRow
	if err := counts.Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		summary.CountsByStatus[row.Status] = row.Count
	}
	summary.PendingCount = summary.CountsByStatus[models.RequestStatusPending]

	spent, err := r.approvedSpendByCategory(year)
	if err != nil {
		return nil, err
	}
	summary.SpendByCategory = spent
	for _, amount := range spent {
		summary.ApprovedTotal += amount
	}

	recent := r.db.Model(&models.PurchaseRequest{}).Order("created_at DESC").Limit(10)
	if employee {
		recent = recent.Where("submitted_by = ?", r.currentUserID(req))
	}
	if err := recent.Find(&summary.Recent).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

// invalidateDashboard drops the cached summary after any write that changes
// the aggregates. Safe to call with caching disabled.
func (r *Router) invalidateDashboard(req *http.Request) {
	r.cache.Invalidate(req.Context(), dashboardCacheKey)
}
