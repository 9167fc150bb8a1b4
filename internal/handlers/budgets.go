package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/xelth-com/pcardgo/internal/models"
)

// BudgetPayload carries the editable fields of a category budget.
type BudgetPayload struct {
	Category     string  `json:"category"`
	FiscalYear   int     `json:"fiscalYear"`
	BudgetAmount float64 `json:"budgetAmount"`
	Notes        string  `json:"notes"`
}

// BudgetView is a budget row plus spend-to-date from approved requests.
type BudgetView struct {
	models.CategoryBudget
	SpentAmount float64 `json:"spentAmount"`
	Remaining   float64 `json:"remaining"`
	Utilization float64 `json:"utilization"`
}

// listBudgets returns budgets for a fiscal year with utilization computed
// from approved requests in that year.
func (r *Router) listBudgets(w http.ResponseWriter, req *http.Request) {
	year := time.Now().Year()
	if y := req.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}

	var budgets []models.CategoryBudget
	if err := r.db.Where("fiscal_year = ?", year).Order("category ASC").Find(&budgets).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch budgets")
		return
	}

	spent, err := r.approvedSpendByCategory(year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute spend")
		return
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		v := BudgetView{CategoryBudget: b, SpentAmount: spent[b.Category]}
		v.Remaining = b.BudgetAmount - v.SpentAmount
		if b.BudgetAmount > 0 {
			v.Utilization = v.SpentAmount / b.BudgetAmount
		}
		views = append(views, v)
	}

	respondJSON(w, http.StatusOK, views)
}

// approvedSpendByCategory sums approved request totals per category for a
// fiscal year, keyed on the submission date.
func (r *Router) approvedSpendByCategory(year int) (map[string]float64, error) {
	type row struct {
		Category string
		Total    float64
	}

	var rows []row
	err := r.db.Model(&models.PurchaseRequest{}).
		Select("category, COALESCE(SUM(total_amount), 0) AS total").
		Where("status = ?", models.RequestStatusApproved).
		Where("EXTRACT(YEAR FROM submitted_at) = ?", year).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	spent := make(map[string]float64, len(rows))
	for _, rw := range rows {
		spent[rw.Category] = rw.Total
	}
	return spent, nil
}

// createBudget adds a budget row. Category plus fiscal year is unique.
func (r *Router) createBudget(w http.ResponseWriter, req *http.Request) {
	var payload BudgetPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Category == "" || payload.FiscalYear == 0 {
		respondError(w, http.StatusBadRequest, "Category and fiscal year are required")
		return
	}

	budget := models.CategoryBudget{
		Category:     payload.Category,
		FiscalYear:   payload.FiscalYear,
		BudgetAmount: payload.BudgetAmount,
		Notes:        payload.Notes,
	}
	if err := r.db.Create(&budget).Error; err != nil {
		respondError(w, http.StatusConflict, "Failed to create budget (category/year may already exist)")
		return
	}

	r.invalidateDashboard(req)
	respondJSON(w, http.StatusCreated, budget)
}

// updateBudget edits an existing budget row.
func (r *Router) updateBudget(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var budget models.CategoryBudget
	if err := r.db.First(&budget, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Budget not found")
		return
	}

	var payload BudgetPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if payload.Category != "" {
		budget.Category = payload.Category
	}
	if payload.FiscalYear != 0 {
		budget.FiscalYear = payload.FiscalYear
	}
	budget.BudgetAmount = payload.BudgetAmount
	budget.Notes = payload.Notes

	if err := r.db.Save(&budget).Error; err != nil {
		respondError(w, http.StatusConflict, "Failed to update budget")
		return
	}

	r.invalidateDashboard(req)
	respondJSON(w, http.StatusOK, budget)
}

// deleteBudget soft-deletes a budget row.
func (r *Router) deleteBudget(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	result := r.db.Delete(&models.CategoryBudget{}, "id = ?", id)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete budget")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Budget not found")
		return
	}

	r.invalidateDashboard(req)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Budget deleted"})
}
