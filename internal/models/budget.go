package models

import (
	"time"

	"gorm.io/gorm"
)

// CategoryBudget is a per-category spending budget for one fiscal year.
// Utilization is computed on demand from approved purchase requests.
type CategoryBudget struct {
	ID           string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Category     string  `gorm:"not null;uniqueIndex:idx_budget_category_year" json:"category"`
	FiscalYear   int     `gorm:"not null;uniqueIndex:idx_budget_category_year" json:"fiscalYear"`
	BudgetAmount float64 `gorm:"not null" json:"budgetAmount"`
	Notes        string  `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for CategoryBudget model
func (CategoryBudget) TableName() string {
	return "category_budgets"
}
