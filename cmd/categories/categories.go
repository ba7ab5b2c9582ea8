// Package categories implements the command listing the supported categories.
package categories

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vuthanhdatt/baomoi/internal/domain"
)

// Command creates the categories command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the supported categories",
		Long:  `List the category keys and slugs accepted by "harvest --category".`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			RenderTable(cmd.OutOrStdout(), domain.Categories())
			return nil
		},
	}
}

// RenderTable formats and displays the categories in a table.
func RenderTable(w io.Writer, entries []domain.CategoryEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Slug", "Output Directory"})

	for _, entry := range entries {
		t.AppendRow(table.Row{entry.Key, entry.Category.Slug(), entry.Category.DirName()})
	}
	t.AppendFooter(table.Row{"(none)", "", domain.Homepage.DirName()})

	t.Render()
}
