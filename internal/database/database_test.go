package database

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"mgao/internal/allocation"
	"mgao/internal/listing"
	"mgao/internal/seed"
	"mgao/internal/services"
	"mgao/internal/testutil"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	manager, err := NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return manager
}

func TestManagerMigrate(t *testing.T) {
	manager := newTestManager(t)

	t.Run("applies_embedded_migrations", func(t *testing.T) {
		testutil.AssertNoError(t, manager.Migrate())

		for _, table := range []string{"counties", "budgets", "allocations"} {
			var count int64
			err := manager.DB().Raw(
				"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
			).Scan(&count).Error
			if err != nil {
				t.Fatalf("querying sqlite_master: %v", err)
			}
			if count != 1 {
				t.Errorf("expected table %s to exist", table)
			}
		}
	})

	t.Run("second_run_is_noop", func(t *testing.T) {
		testutil.AssertNoError(t, manager.Migrate())
	})
}

// TestFullLifecycle walks the whole tool flow over a real database file:
// migrate, seed, create budgets, inspect, compare, delete.
func TestFullLifecycle(t *testing.T) {
	manager := newTestManager(t)
	testutil.AssertNoError(t, manager.Migrate())

	written, err := seed.Counties(manager.DB())
	testutil.AssertNoError(t, err)
	if written == 0 {
		t.Fatal("expected sample counties to be seeded")
	}

	countySvc := services.NewCountyService(manager.DB())
	budgetSvc := services.NewBudgetService(manager.DB())

	counties, err := countySvc.ListCounties(listing.Sort{})
	testutil.AssertNoError(t, err)
	if len(counties) != written {
		t.Fatalf("expected %d counties, got %d", written, len(counties))
	}

	total := decimal.RequireFromString("1000000.50")
	budget, err := budgetSvc.CreateBudget("Lifecycle", total, allocation.MethodGDPPerCapita)
	testutil.AssertNoError(t, err)

	loaded, err := budgetSvc.GetBudgetWithAllocations(budget.ID)
	testutil.AssertNoError(t, err)
	if len(loaded.Allocations) != len(counties) {
		t.Fatalf("expected %d allocations, got %d", len(counties), len(loaded.Allocations))
	}
	sum := decimal.Zero
	for _, alloc := range loaded.Allocations {
		sum = sum.Add(alloc.Amount)
	}
	testutil.AssertDecimalEqual(t, total, sum)

	// The county summary sees the persisted allocation.
	summary, err := countySvc.AllocationSummary(loaded.Allocations[0].CountyID)
	testutil.AssertNoError(t, err)
	if summary.Count != 1 {
		t.Errorf("expected 1 allocation in summary, got %d", summary.Count)
	}

	// Comparison is read-only and works on the same store.
	results, err := budgetSvc.CompareMethods(decimal.NewFromInt(500))
	testutil.AssertNoError(t, err)
	for _, result := range results {
		if result.Err != nil {
			t.Errorf("%s: unexpected error: %v", result.Method, result.Err)
		}
	}

	stats, err := budgetSvc.Statistics()
	testutil.AssertNoError(t, err)
	if stats.TotalBudgets != 1 {
		t.Errorf("expected 1 budget, got %d", stats.TotalBudgets)
	}

	testutil.AssertNoError(t, budgetSvc.DeleteBudget(budget.ID))
	stats, err = budgetSvc.Statistics()
	testutil.AssertNoError(t, err)
	if stats.TotalBudgets != 0 || stats.TotalAllocations != 0 {
		t.Errorf("expected empty budget store after delete, got %+v", stats)
	}
}
