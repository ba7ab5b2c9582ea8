// Package harvest implements the command that downloads posts into text files.
package harvest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vuthanhdatt/baomoi/cmd/common"
	"github.com/vuthanhdatt/baomoi/internal/config"
	"github.com/vuthanhdatt/baomoi/internal/domain"
	internalharvest "github.com/vuthanhdatt/baomoi/internal/harvest"
)

// Command creates the harvest command. Flags are bound into v.
func Command(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Download posts into text files",
		Long: `Collect post URLs from the homepage feed or a category, then download every
post concurrently under a shared rate limit and save its text to
<output>/<category-or-homepage>/<title>.txt.`,
		Example: `  baomoi harvest -p 50 -c the-gioi
  baomoi harvest --output /tmp/news`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	cmd.Flags().IntP("post-count", "p", config.DefaultPostCount, "Number of posts to fetch")
	cmd.Flags().StringP("category", "c", "", "Category slug (e.g. 'xa-hoi', 'van-hoa'). Default: homepage")
	cmd.Flags().String("output", config.DefaultOutputRoot, "Root directory for downloaded posts")
	cmd.Flags().Bool("respect-robots", false, "Skip posts disallowed by robots.txt")
	cmd.Flags().Int("rate", config.DefaultRateRequests, "Requests admitted per rate limit window")

	bind(v, cmd, common.KeyPostCount, "post-count")
	bind(v, cmd, common.KeyCategory, "category")
	bind(v, cmd, common.KeyOutputRoot, "output")
	bind(v, cmd, common.KeyRespectRobots, "respect-robots")
	bind(v, cmd, common.KeyRateRequests, "rate")

	return cmd
}

func bind(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	// Category is checked before configuration and logging are set up so a
	// typo never reaches the network.
	category, err := domain.ParseCategory(categoryValue(cmd, v))
	if err != nil {
		return err
	}

	deps, err := common.NewCommandDeps(v)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Logger.Sync() }()

	if category.IsHomepage() && deps.Config.Harvest.Category != "" {
		if category, err = domain.ParseCategory(deps.Config.Harvest.Category); err != nil {
			return err
		}
	}

	outputDir := filepath.Join(deps.Config.Harvest.OutputRoot, category.DirName())

	orchestrator := internalharvest.NewFromConfig(deps.Config, deps.Logger)
	report, runErr := orchestrator.Run(cmd.Context(), internalharvest.Request{
		Category:  category,
		PostCount: deps.Config.Harvest.PostCount,
		OutputDir: outputDir,
	})
	if report == nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Downloaded %d posts to %s\n", report.Written, report.OutputDir)
	RenderReport(out, report)

	if errors.Is(runErr, domain.ErrPartialFailure) {
		return fmt.Errorf("%d of %d posts failed: %w", report.Failed, report.Discovered, domain.ErrPartialFailure)
	}
	return runErr
}

func categoryValue(cmd *cobra.Command, v *viper.Viper) string {
	if cmd.Flags().Changed("category") {
		return v.GetString(common.KeyCategory)
	}
	return ""
}

// RenderReport prints the run summary and any failed posts as tables.
func RenderReport(w io.Writer, report *internalharvest.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Category", "Build ID", "Discovered", "Written", "Failed", "Pages", "Skipped", "Limiter Wait", "Duration"})
	t.AppendRow(table.Row{
		report.RunID,
		report.Category.DirName(),
		report.BuildID,
		report.Discovered,
		report.Written,
		report.Failed,
		report.Metrics.PagesFetched,
		report.Metrics.ItemsSkipped,
		report.Metrics.LimiterWait.Round(time.Millisecond),
		report.Duration.Round(time.Millisecond),
	})
	t.Render()

	if len(report.Failures) == 0 {
		return
	}

	ft := table.NewWriter()
	ft.SetOutputMirror(w)
	ft.SetStyle(table.StyleLight)
	ft.AppendHeader(table.Row{"Failed URL", "Error"})
	for _, f := range report.Failures {
		ft.AppendRow(table.Row{f.URL, f.Err.Error()})
	}
	ft.Render()
}
