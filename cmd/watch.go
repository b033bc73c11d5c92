package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/pdfoutline/internal/batch"
	"github.com/itsmostafa/pdfoutline/internal/report"
	"github.com/itsmostafa/pdfoutline/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep JSON outlines in sync with a directory of PDFs",
	Long: `Process every PDF in the input directory, then keep watching it and
reprocess any PDF that is added or rewritten. Changes are debounced so files
still being copied are not read half-written. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		proc := batch.NewProcessor(
			batch.WithWorkers(cfg.Workers),
			batch.WithLogger(logger),
		)

		out := cmd.OutOrStdout()
		w := watch.New(cfg.Input, cfg.Output, proc,
			watch.WithDebounce(cfg.Debounce),
			watch.WithLogger(logger),
			watch.OnResult(func(r batch.FileResult) {
				report.FormatFileResult(out, r)
			}),
		)
		return w.Run(ctx)
	},
}

func init() {
	addDirFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "How long a file must be unchanged before it is processed")

	rootCmd.AddCommand(watchCmd)
}
