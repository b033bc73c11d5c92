package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/pdfoutline/internal/outline"
)

var extractFormat string

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the outline of a single PDF",
	Long: `Extract the title and outline of one PDF and print it to stdout, either as
the same JSON written by run or as a nested Markdown table of contents.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := setup(cmd); err != nil {
			return err
		}

		res, err := outline.Extract(args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), res, extractFormat)
	},
}

func init() {
	// Format flag with env var fallback
	defaultFormat := "json"
	if envFormat := os.Getenv("PDFOUTLINE_FORMAT"); envFormat != "" {
		defaultFormat = envFormat
	}
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", defaultFormat, "Output format (json, markdown)")

	rootCmd.AddCommand(extractCmd)
}

func writeResult(w io.Writer, res outline.Result, format string) error {
	switch format {
	case "json":
		return res.WriteJSON(w)
	case "markdown", "md":
		_, err := io.WriteString(w, res.Markdown())
		return err
	default:
		return fmt.Errorf("unknown format %q (expected json or markdown)", format)
	}
}
