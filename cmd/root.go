// Package cmd implements the command-line interface for the baomoi harvester.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vuthanhdatt/baomoi/cmd/categories"
	"github.com/vuthanhdatt/baomoi/cmd/common"
	cmdharvest "github.com/vuthanhdatt/baomoi/cmd/harvest"
)

// Version is set at build time with -ldflags "-X github.com/vuthanhdatt/baomoi/cmd.Version=...".
var Version = "dev"

// NewRootCommand builds the command tree. Flags are bound into a private viper instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "baomoi",
		Short: "Harvest news articles from baomoi.com",
		Long: `Harvest news articles from baomoi.com into plain text files,
one file per article, for downstream processing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String(
		"config",
		"",
		"config file (default is ./config.yml when present, or $CONFIG_PATH)",
	)
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	if err := v.BindPFlag(common.KeyConfig, rootCmd.PersistentFlags().Lookup("config")); err != nil {
		panic(fmt.Sprintf("bind config flag: %v", err))
	}
	if err := v.BindPFlag(common.KeyDebug, rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		panic(fmt.Sprintf("bind debug flag: %v", err))
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "baomoi version %s\n", Version)
		},
	})
	rootCmd.AddCommand(cmdharvest.Command(v))
	rootCmd.AddCommand(categories.Command())

	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the run.
func Execute() error {
	// Load .env early so environment variables are available
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}
