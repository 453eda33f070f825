package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mgao/internal/allocation"
	"mgao/internal/services"
)

// statusCmd reports row counts per entity and budget statistics.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report row counts and budget statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		countySvc := services.NewCountyService(mgr.DB())
		budgetSvc := services.NewBudgetService(mgr.DB())

		countyCount, err := countySvc.Count()
		if err != nil {
			return err
		}
		stats, err := budgetSvc.Statistics()
		if err != nil {
			return err
		}

		fmt.Printf("Counties:    %d\n", countyCount)
		fmt.Printf("Budgets:     %d\n", stats.TotalBudgets)
		fmt.Printf("Allocations: %d\n", stats.TotalAllocations)

		if stats.TotalBudgets > 0 {
			fmt.Printf("\nTotal budget amount:   $%s\n", stats.TotalAmount.StringFixed(2))
			fmt.Printf("Average budget amount: $%s\n", stats.AverageAmount.StringFixed(2))
			fmt.Println("\nBudgets by method:")
			for _, method := range allocation.Methods() {
				if count := stats.MethodCounts[method]; count > 0 {
					fmt.Printf("  %-15s %d\n", method, count)
				}
			}
		}
		return nil
	},
}
