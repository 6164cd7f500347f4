// Package migrate implements the schema migration command.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newswarehouse/cmd/common"
)

// migrationsPath is the relative path to the migrations directory.
const migrationsPath = "file://migrations"

// Command returns the migrate command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back schema migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := args[0]
			if direction != "up" && direction != "down" {
				return fmt.Errorf("invalid direction: %q (must be \"up\" or \"down\")", direction)
			}

			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			m, err := migrate.New(migrationsPath, deps.Config.Database.MigrateURL())
			if err != nil {
				return fmt.Errorf("failed to create migrate instance: %w", err)
			}
			defer func() { _, _ = m.Close() }()

			if err := runMigration(m, direction); err != nil {
				return fmt.Errorf("migration %s failed: %w", direction, err)
			}

			deps.Logger.Info("Migration completed", "direction", direction)
			return nil
		},
	}
}

// runMigration executes the migration in the specified direction.
func runMigration(m *migrate.Migrate, direction string) error {
	var err error

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No migrations to apply")
		return nil
	}

	return err
}
