// Package articles implements the command-line interface for inspecting
// warehoused articles. This file implements the list command that displays
// current article versions in a formatted table.
package articles

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newswarehouse/cmd/common"
	"github.com/jonesrussell/newswarehouse/internal/constants"
	"github.com/jonesrussell/newswarehouse/internal/domain"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// ArticleLister lists current article versions.
type ArticleLister interface {
	ListCurrent(ctx context.Context, limit, offset int) ([]domain.Article, int, error)
}

// TableRenderer handles the display of article data in a table format.
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance.
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{
		logger: log,
	}
}

// RenderTable formats and displays the articles in a table format.
func (r *TableRenderer) RenderTable(articles []domain.Article, total int) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Category", "Headline", "Author", "URL"})

	for i := range articles {
		a := &articles[i]
		t.AppendRow(table.Row{
			a.ID,
			deref(a.Category),
			deref(a.Headline),
			deref(a.Author),
			a.URL,
		})
	}

	t.AppendFooter(table.Row{"", "", "", "Total", total})
	t.Render()
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Command returns the articles command group.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Inspect warehoused articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand())

	return cmd
}

// NewListCommand creates a new list command.
func NewListCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List current article versions",
		Long:  `List the current version of every warehoused article in a formatted table.`,
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

			renderer := NewTableRenderer(deps.Logger)
			return listArticles(cmd.Context(), result.Reader, renderer, limit, offset)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum articles to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "articles to skip")

	return cmd
}

// listArticles loads a page of current articles and renders it.
func listArticles(ctx context.Context, lister ArticleLister, renderer *TableRenderer, limit, offset int) error {
	articles, total, err := lister.ListCurrent(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	if len(articles) == 0 {
		renderer.logger.Info("No articles in the warehouse")
		return nil
	}

	return renderer.RenderTable(articles, total)
}
