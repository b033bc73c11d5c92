package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/pdfoutline/internal/batch"
	"github.com/itsmostafa/pdfoutline/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract outlines for every PDF in a directory",
	Long: `Extract the title and outline of every .pdf file in the input directory
and write one JSON file per document to the output directory, which is created
if it does not exist. A document that cannot be read is reported and skipped;
the command exits non-zero if any document failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		files, err := batch.Discover(cfg.Input)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		report.FormatHeader(out, report.Header{
			Input:   cfg.Input,
			Output:  cfg.Output,
			Workers: cfg.Workers,
			Files:   len(files),
		})

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		proc := batch.NewProcessor(
			batch.WithWorkers(cfg.Workers),
			batch.WithFailFast(cfg.FailFast),
			batch.WithLogger(logger),
		)
		summary, err := proc.Run(ctx, cfg.Input, cfg.Output)

		for _, r := range summary.Results {
			report.FormatFileResult(out, r)
		}
		report.FormatSummary(out, summary)

		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Files)
		}
		return nil
	},
}

func init() {
	addDirFlags(runCmd)
	runCmd.Flags().Bool("fail-fast", false, "Stop at the first document that fails")

	rootCmd.AddCommand(runCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
