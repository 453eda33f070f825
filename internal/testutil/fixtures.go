package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mgao/internal/allocation"
	"mgao/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCounty creates a county with a unique name and sensible defaults.
func CreateTestCounty(t *testing.T, db *gorm.DB) *models.County {
	t.Helper()
	return CreateTestCountyWith(t, db, fmt.Sprintf("County %d", nextID()), 1000, 1000000, 5)
}

// CreateTestCountyWith creates a county with the given attributes.
func CreateTestCountyWith(t *testing.T, db *gorm.DB, name string, population, economicOutput int64, projectScore int) *models.County {
	t.Helper()

	county := &models.County{
		Name:           name,
		Population:     population,
		EconomicOutput: decimal.NewFromInt(economicOutput),
		ProjectScore:   projectScore,
	}
	if err := db.Create(county).Error; err != nil {
		t.Fatalf("failed to create test county: %v", err)
	}
	return county
}

// CreateTestBudget creates a budget with one allocation per given county,
// splitting the total equally. It writes rows directly, bypassing the
// engine, for tests that only need referential structure.
func CreateTestBudget(t *testing.T, db *gorm.DB, total int64, counties ...*models.County) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Name:        fmt.Sprintf("Test Budget %d", nextID()),
		TotalAmount: decimal.NewFromInt(total),
		Method:      allocation.MethodEqual,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}

	if len(counties) == 0 {
		return budget
	}
	share := decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(len(counties))))
	for _, county := range counties {
		alloc := &models.Allocation{
			BudgetID: budget.ID,
			CountyID: county.ID,
			Amount:   share,
		}
		if err := db.Create(alloc).Error; err != nil {
			t.Fatalf("failed to create test allocation: %v", err)
		}
	}
	return budget
}
