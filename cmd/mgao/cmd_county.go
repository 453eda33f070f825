package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apperrors "mgao/internal/errors"
	"mgao/internal/listing"
	"mgao/internal/models"
	"mgao/internal/services"
)

var countyCmd = &cobra.Command{
	Use:   "county",
	Short: "County management commands",
}

var (
	countySortBy     string
	countySortDesc   bool
	countyNameFilter string

	countyName           string
	countyPopulation     int64
	countyEconomicOutput string
	countyProjectScore   int

	countyCascade bool
)

var countyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List counties",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()
		svc := services.NewCountyService(mgr.DB())

		var counties []models.County
		if countyNameFilter != "" {
			counties, err = svc.FindCountiesByName(countyNameFilter)
		} else {
			var sortReq listing.Sort
			if countySortBy != "" {
				key, parseErr := listing.ParseSortKey(countySortBy)
				if parseErr != nil {
					return parseErr
				}
				sortReq = listing.Sort{Key: key, Desc: countySortDesc}
			}
			counties, err = svc.ListCounties(sortReq)
		}
		if err != nil {
			return err
		}

		if len(counties) == 0 {
			fmt.Println("No counties found. Run 'mgao init --seed' to load sample data.")
			return nil
		}
		printCountyTable(counties)
		return nil
	},
}

var countyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new county",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := parseAmount(countyEconomicOutput, "economic output")
		if err != nil {
			return err
		}

		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		county, err := services.NewCountyService(mgr.DB()).CreateCounty(services.CountyInput{
			Name:           countyName,
			Population:     countyPopulation,
			EconomicOutput: output,
			ProjectScore:   countyProjectScore,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added county %q with ID %s\n", county.Name, county.ID)
		return nil
	},
}

var countyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing county",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update services.CountyUpdate
		if cmd.Flags().Changed("name") {
			update.Name = &countyName
		}
		if cmd.Flags().Changed("population") {
			update.Population = &countyPopulation
		}
		if cmd.Flags().Changed("economic-output") {
			output, err := parseAmount(countyEconomicOutput, "economic output")
			if err != nil {
				return err
			}
			update.EconomicOutput = &output
		}
		if cmd.Flags().Changed("project-score") {
			update.ProjectScore = &countyProjectScore
		}

		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		county, err := services.NewCountyService(mgr.DB()).UpdateCounty(args[0], update)
		if err != nil {
			return err
		}
		fmt.Printf("Updated county %q\n", county.Name)
		return nil
	},
}

var countyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a county",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := services.NewCountyService(mgr.DB()).DeleteCounty(args[0], countyCascade); err != nil {
			return err
		}
		fmt.Println("County deleted")
		return nil
	},
}

var countyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a county's allocation history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		summary, err := services.NewCountyService(mgr.DB()).AllocationSummary(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("County: %s\n", summary.CountyName)
		fmt.Printf("Allocations: %d\n", summary.Count)
		fmt.Printf("Total allocated: $%s\n", summary.TotalAmount.StringFixed(2))
		if len(summary.Rows) > 0 {
			fmt.Printf("\n%-20s %-15s %14s\n", "BUDGET", "METHOD", "AMOUNT")
			for _, row := range summary.Rows {
				fmt.Printf("%-20s %-15s %14s\n", row.BudgetName, row.Method, "$"+row.Amount.StringFixed(2))
			}
		}
		return nil
	},
}

func printCountyTable(counties []models.County) {
	fmt.Printf("%-38s %-15s %12s %14s %6s\n", "ID", "NAME", "POPULATION", "GDP/CAPITA", "SCORE")
	for _, county := range counties {
		fmt.Printf("%-38s %-15s %12d %14s %6d\n",
			county.ID, county.Name, county.Population,
			"$"+county.GDPPerCapita().StringFixed(2), county.ProjectScore)
	}
	fmt.Printf("\nTotal: %d counties\n", len(counties))
}

// parseAmount converts a flag value into a decimal.
func parseAmount(s, what string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("invalid %s %q", what, s))
	}
	return amount, nil
}

func init() {
	countyListCmd.Flags().StringVar(&countySortBy, "sort-by", "", "sort key: name, population, gdp_per_capita or project_score")
	countyListCmd.Flags().BoolVar(&countySortDesc, "desc", false, "sort in descending order")
	countyListCmd.Flags().StringVar(&countyNameFilter, "name", "", "filter by name substring")

	for _, cmd := range []*cobra.Command{countyAddCmd, countyUpdateCmd} {
		cmd.Flags().StringVar(&countyName, "name", "", "county name")
		cmd.Flags().Int64Var(&countyPopulation, "population", 0, "county population")
		cmd.Flags().StringVar(&countyEconomicOutput, "economic-output", "0", "total economic output")
		cmd.Flags().IntVar(&countyProjectScore, "project-score", 0, "project need score (1-10)")
	}

	countyDeleteCmd.Flags().BoolVar(&countyCascade, "cascade", false, "also delete allocations referencing the county")

	countyCmd.AddCommand(countyListCmd, countyAddCmd, countyUpdateCmd, countyDeleteCmd, countyShowCmd)
}
