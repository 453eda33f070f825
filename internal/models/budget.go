package models

import (
	"github.com/shopspring/decimal"

	"mgao/internal/allocation"
)

// Budget represents a total amount distributed across counties under one
// allocation method. The method is fixed at creation; recomputing an
// allocation means creating a new budget.
type Budget struct {
	Base
	Name        string            `gorm:"not null" json:"name"`
	TotalAmount decimal.Decimal   `gorm:"type:DECIMAL(20,8);not null" json:"total_amount"`
	Method      allocation.Method `gorm:"not null" json:"method"`

	// Relationships. The budget owns its allocations exclusively:
	// deleting a budget deletes them.
	Allocations []Allocation `gorm:"foreignKey:BudgetID" json:"allocations,omitempty"`
}
