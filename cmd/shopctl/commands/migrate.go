package commands

import (
	"errors"
	"fmt"

	"go-shopkeeper/pkg/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

var (
	// Migrate flags
	steps int
	all   bool
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run the embedded schema migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back migrations
  version  - Show the applied version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `Apply pending migrations.

Examples:
  shopctl migrate up             # Apply everything pending
  shopctl migrate up --steps 1   # Apply the next migration only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, steps)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations. Either --steps or --all is required.

Examples:
  shopctl migrate down --steps 1   # Roll back the last migration
  shopctl migrate down --all       # Drop the whole schema`,
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateVersion(cmd)
	},
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: runMigrate refers to migrateDownCmd.
	migrateDownCmd.RunE = func(cmd *cobra.Command, args []string) error {
		n, err := downSteps(steps, all)
		if err != nil {
			return err
		}
		return runMigrate(cmd, n)
	}

	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateUpCmd.Flags().IntVar(&steps, "steps", 0, "Number of migrations to apply (0 = all)")
	migrateDownCmd.Flags().IntVar(&steps, "steps", 0, "Number of migrations to roll back")
	migrateDownCmd.Flags().BoolVar(&all, "all", false, "Roll back every migration")
}

// downSteps turns the down flags into a negative step count, or 0 for all.
func downSteps(steps int, all bool) (int, error) {
	switch {
	case all && steps > 0:
		return 0, errors.New("use either --steps or --all, not both")
	case all:
		return 0, nil
	case steps <= 0:
		return 0, errors.New("--steps must be positive (or pass --all)")
	}
	return -steps, nil
}

// runMigrate moves n steps; n == 0 means all the way (up for the up command,
// down for the down command).
func runMigrate(cmd *cobra.Command, n int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := database.NewMigrator(cfg.MigrationURL())
	if err != nil {
		return err
	}
	defer m.Close()

	switch {
	case n != 0:
		err = m.Steps(n)
	case cmd == migrateDownCmd:
		err = m.Down()
	default:
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", cmd.Name(), err)
	}

	return printVersion(cmd, m)
}

func runMigrateVersion(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := database.NewMigrator(cfg.MigrationURL())
	if err != nil {
		return err
	}
	defer m.Close()

	return printVersion(cmd, m)
}

func printVersion(cmd *cobra.Command, m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(cmd.OutOrStdout(), "Schema version: none")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d", version)
	if dirty {
		fmt.Fprint(cmd.OutOrStdout(), " (dirty)")
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
