package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mgao/internal/seed"
)

var seedFlag bool

// initCmd creates the schema and optionally loads the sample county set.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema and optionally seed sample counties",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.Migrate(); err != nil {
			return err
		}
		fmt.Println("Database schema is up to date")

		if seedFlag || cfg.SeedOnInit {
			n, err := seed.Counties(mgr.DB())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("Sample counties already present, skipping seed")
			} else {
				fmt.Printf("Seeded %d sample counties\n", n)
			}
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&seedFlag, "seed", false, "seed the sample county data set")
}
