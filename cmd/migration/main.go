package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbURL                 string
	migrationsDir         string
	disablePreparedBinary bool
)

var rootCmd = &cobra.Command{
	Use:   "kickstats-migrate",
	Short: "Apply and inspect kickstats database migrations",
	Long: `Runs golang-migrate against the kickstats Postgres database.
DB_URL and MIGRATIONS_DIR are read from the environment (or .env) unless overridden by flags.`,
	SilenceUsage: true,
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", os.Getenv("DB_URL"), "Postgres connection URL")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations)")
	rootCmd.PersistentFlags().BoolVar(&disablePreparedBinary, "disable-prepared-binary-result", envBool("DB_DISABLE_PREPARED_BINARY_RESULT"), "append disable_prepared_binary_result=yes to the URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
}
