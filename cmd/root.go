package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/pdfoutline/internal/config"
	"github.com/itsmostafa/pdfoutline/internal/logging"
	"github.com/itsmostafa/pdfoutline/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pdfoutline",
	Short: "Infer titles and heading outlines from PDF typography",
	Long: `pdfoutline reads PDFs and infers a document title and an H1/H2/H3 outline
from font size, weight and colour alone. Results are written as JSON, one file
per input document.

Settings are read from pdfoutline.yaml (in . or $HOME/.pdfoutline), from
PDFOUTLINE_* environment variables, and from flags, in increasing precedence.`,
	// Execute prints errors itself.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pdfoutline %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: pdfoutline.yaml in . or $HOME/.pdfoutline)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration for cmd and installs its logger as the
// slog default.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// addDirFlags registers the flags shared by run and watch. Their defaults
// come from the configuration, so they are only applied when set.
func addDirFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig()
	cmd.Flags().StringP("input", "i", defaults.Input, "Directory containing PDFs")
	cmd.Flags().StringP("output", "o", defaults.Output, "Directory for JSON results")
	cmd.Flags().IntP("workers", "w", defaults.Workers, "Documents processed in parallel")
}
