package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mgao/internal/config"
	"mgao/internal/database"
	apperrors "mgao/internal/errors"
	"mgao/internal/logger"
)

var (
	cfg    *config.Config
	dbPath string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "mgao",
	Short: "mgao - county budget allocation tool",
	Long: `mgao stores counties and budgets in a local SQLite database and
distributes budget totals across counties using one of three methods:
equal, gdp_per_capita, or project_score.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		logger.Init(cfg.Env)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database file (overrides DB_PATH)")
	rootCmd.AddCommand(initCmd, statusCmd, countyCmd, budgetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

// exitWithError prints the error to stderr and exits with its mapped status.
// Every error surfaces here; nothing is silently swallowed.
func exitWithError(err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: %s\n", appErr.Code, appErr.Message)
		if appErr.Internal != nil {
			logger.Get().Debugw("internal error detail", "code", appErr.Code, "error", appErr.Internal)
		}
		logger.Sync()
		os.Exit(appErr.ExitCode)
	}
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	logger.Sync()
	os.Exit(1)
}

// openStore opens the database for a single command invocation. Commands
// close it before returning; one transaction per command is the rule.
func openStore() (*database.Manager, error) {
	return database.NewManager(cfg.DBPath)
}
