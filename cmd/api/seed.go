package main

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/company-directory-go/internal/fixtures"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/database"
	"github.com/cmlabs-hris/company-directory-go/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo directory",
	Long: `Empty the company and employee tables and load the demo directory:
17 companies with two employees each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return err
		}

		companies := postgresql.NewCompanyRepository(db)
		employees := postgresql.NewEmployeeRepository(db)

		var result fixtures.SeedResult
		err = postgresql.WithTransaction(ctx, db, func(txCtx context.Context) error {
			if err := postgresql.ClearDirectory(txCtx, db); err != nil {
				return err
			}
			result, err = fixtures.Seed(txCtx, companies, employees)
			return err
		})
		if err != nil {
			return err
		}

		slog.Info("demo directory loaded", "companies", result.Companies, "employees", result.Employees)
		return nil
	},
}

