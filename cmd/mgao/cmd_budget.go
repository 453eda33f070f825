package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mgao/internal/allocation"
	"mgao/internal/listing"
	"mgao/internal/services"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget management commands",
}

var (
	budgetName     string
	budgetAmount   string
	budgetMethod   string
	budgetPage     int
	budgetPageSize int
)

var budgetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a budget and allocate it across all counties",
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := parseAmount(budgetAmount, "budget amount")
		if err != nil {
			return err
		}
		method, err := allocation.ParseMethod(budgetMethod)
		if err != nil {
			return err
		}

		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		budget, err := services.NewBudgetService(mgr.DB()).CreateBudget(budgetName, total, method)
		if err != nil {
			return err
		}

		fmt.Printf("Created budget %q with ID %s\n", budget.Name, budget.ID)
		fmt.Printf("Allocated $%s to %d counties using %s\n",
			budget.TotalAmount.StringFixed(2), len(budget.Allocations), budget.Method)
		return nil
	},
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budgets, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		page := listing.PageRequest{Page: budgetPage, PageSize: budgetPageSize}
		result, err := services.NewBudgetService(mgr.DB()).ListBudgets(page)
		if err != nil {
			return err
		}

		if result.TotalItems == 0 {
			fmt.Println("No budgets found.")
			return nil
		}

		fmt.Printf("%-38s %-20s %14s %-15s\n", "ID", "NAME", "AMOUNT", "METHOD")
		for _, budget := range result.Data {
			fmt.Printf("%-38s %-20s %14s %-15s\n",
				budget.ID, budget.Name, "$"+budget.TotalAmount.StringFixed(2), budget.Method)
		}
		fmt.Printf("\nPage %d of %d (%d budgets)\n", result.Page, result.TotalPages, result.TotalItems)
		return nil
	},
}

var budgetShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a budget's per-county allocation breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		budget, err := services.NewBudgetService(mgr.DB()).GetBudgetWithAllocations(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:   %s\n", budget.Name)
		fmt.Printf("Amount: $%s\n", budget.TotalAmount.StringFixed(2))
		fmt.Printf("Method: %s\n", budget.Method)

		if len(budget.Allocations) > 0 {
			fmt.Printf("\n%-15s %14s %9s\n", "COUNTY", "AMOUNT", "SHARE")
			for _, alloc := range budget.Allocations {
				name := alloc.CountyID
				if alloc.County != nil {
					name = alloc.County.Name
				}
				fmt.Printf("%-15s %14s %8s%%\n",
					name, "$"+alloc.Amount.StringFixed(2),
					alloc.PercentageOfBudget(budget.TotalAmount).StringFixed(2))
			}
		}
		return nil
	},
}

var budgetDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a budget and its allocations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := services.NewBudgetService(mgr.DB()).DeleteBudget(args[0]); err != nil {
			return err
		}
		fmt.Println("Budget deleted")
		return nil
	},
}

var budgetCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare all allocation methods for a hypothetical amount",
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := parseAmount(budgetAmount, "budget amount")
		if err != nil {
			return err
		}

		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		results, err := services.NewBudgetService(mgr.DB()).CompareMethods(total)
		if err != nil {
			return err
		}

		fmt.Printf("Comparing methods for $%s\n\n", total.StringFixed(2))
		printCompareTable(results)
		return nil
	},
}

// printCompareTable prints one row per county and one column per method.
// A method that failed shows a dash in its column and its error below the
// table; the other methods still report.
func printCompareTable(results []allocation.MethodResult) {
	// All successful methods share the same county order, so any one of
	// them can provide the row labels.
	var rows []allocation.Share
	for _, result := range results {
		if result.Err == nil {
			rows = result.Shares
			break
		}
	}

	if rows != nil {
		fmt.Printf("%-15s", "COUNTY")
		for _, result := range results {
			fmt.Printf(" %16s", result.Method)
		}
		fmt.Println()

		for i, row := range rows {
			fmt.Printf("%-15s", row.CountyName)
			for _, result := range results {
				if result.Err != nil {
					fmt.Printf(" %16s", "-")
					continue
				}
				fmt.Printf(" %16s", "$"+result.Shares[i].Amount.StringFixed(2))
			}
			fmt.Println()
		}
		fmt.Println()
	}

	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("%s failed: %v\n", result.Method, result.Err)
		}
	}
}

func init() {
	budgetCreateCmd.Flags().StringVar(&budgetName, "name", "", "budget name")
	budgetCreateCmd.Flags().StringVar(&budgetAmount, "amount", "", "total amount to allocate")
	budgetCreateCmd.Flags().StringVar(&budgetMethod, "method", "", "allocation method: equal, gdp_per_capita or project_score")

	budgetListCmd.Flags().IntVar(&budgetPage, "page", 1, "page number")
	budgetListCmd.Flags().IntVar(&budgetPageSize, "page-size", 20, "budgets per page")

	budgetCompareCmd.Flags().StringVar(&budgetAmount, "amount", "", "total amount to compare")

	budgetCmd.AddCommand(budgetCreateCmd, budgetListCmd, budgetShowCmd, budgetDeleteCmd, budgetCompareCmd)
}
