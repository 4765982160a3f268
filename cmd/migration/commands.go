package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(forceCmd)
	rootCmd.AddCommand(gotoCmd)
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(m *migrate.Migrate, sourceURL string) error {
			if err := handleMigrationErr(cmd, m.Up()); err != nil {
				return err
			}
			cmd.Printf("migrations applied (source=%s)\n", sourceURL)
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back the given number of migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return withMigrator(cmd, func(m *migrate.Migrate, _ string) error {
			if err := handleMigrationErr(cmd, m.Steps(-steps)); err != nil {
				return err
			}
			cmd.Printf("rolled back %d migration(s)\n", steps)
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(m *migrate.Migrate, _ string) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				cmd.Println("version: none")
				cmd.Println("dirty: false")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read version: %w", err)
			}
			cmd.Printf("version: %d\n", version)
			cmd.Printf("dirty: %t\n", dirty)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Set the schema version without running migrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		return withMigrator(cmd, func(m *migrate.Migrate, _ string) error {
			if err := m.Force(version); err != nil {
				return fmt.Errorf("force version %d: %w", version, err)
			}
			cmd.Printf("forced version to %d\n", version)
			return nil
		})
	},
}

var gotoCmd = &cobra.Command{
	Use:     "goto <version>",
	Aliases: []string{"migrate"},
	Short:   "Migrate up or down to the given version",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		return withMigrator(cmd, func(m *migrate.Migrate, _ string) error {
			if err := handleMigrationErr(cmd, m.Migrate(target)); err != nil {
				return err
			}
			cmd.Printf("migrated to version %d\n", target)
			return nil
		})
	},
}
