// Package run implements the one-shot pipeline command.
package run

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newswarehouse/cmd/common"
)

// Command returns the run command, which executes a single crawl-and-merge
// pass and prints the run summary.
func Command() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a single crawl-and-merge run",
		Long: `Walks the configured listing pages, fetches new and changed articles and
merges them into the versioned dimension. Without --pages, the page budget is
the initial budget when the warehouse is empty and the steady budget otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			result, err := common.BuildPipeline(deps.Config, deps.Logger)
			if err != nil {
				return err
			}
			defer result.DB.Close()

			ctx := cmd.Context()

			budget := pages
			if budget <= 0 {
				hasData, checkErr := result.Warehouse.HasData(ctx)
				if checkErr != nil {
					return fmt.Errorf("failed to inspect warehouse: %w", checkErr)
				}
				if hasData {
					budget = deps.Config.Scraper.Pages
				} else {
					budget = deps.Config.Scraper.InitialPages
				}
			}

			summary, err := result.Pipeline.Run(ctx, budget)
			if err != nil {
				return fmt.Errorf("pipeline run failed: %w", err)
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if encodeErr := encoder.Encode(summary); encodeErr != nil {
				return fmt.Errorf("failed to print summary: %w", encodeErr)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 0, "listing pages to walk (0 = from config)")

	return cmd
}
