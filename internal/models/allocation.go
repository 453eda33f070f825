package models

import "github.com/shopspring/decimal"

// Allocation is the join entity between a budget and a county: the amount
// one county receives from one budget. Rows are written in a batch when a
// budget is created and never updated afterwards. The amounts of a budget's
// allocations sum to the budget's total exactly; the engine assigns the
// division remainder to the last county.
type Allocation struct {
	Base
	BudgetID string          `gorm:"type:uuid;not null;index" json:"budget_id"`
	CountyID string          `gorm:"type:uuid;not null;index" json:"county_id"`
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8);not null" json:"amount"`

	// Relationships
	Budget *Budget `gorm:"foreignKey:BudgetID" json:"budget,omitempty"`
	County *County `gorm:"foreignKey:CountyID" json:"county,omitempty"`
}

// PercentageOfBudget returns the allocation's share of the given budget
// total, in percent.
func (a *Allocation) PercentageOfBudget(total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return a.Amount.Div(total).Mul(decimal.NewFromInt(100))
}
