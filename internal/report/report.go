package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/pdfoutline/internal/batch"
)

var (
	// titleStyle for bold red headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// warnStyle for skipped files
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)
)

// Header describes a batch run before it starts.
type Header struct {
	Input   string
	Output  string
	Workers int
	Files   int
}

// FormatHeader renders the run header with configuration info
func FormatHeader(w io.Writer, h Header) {
	content := fmt.Sprintf("%s %s  %s %d\n%s %s\n%s %s",
		dimStyle.Render("Files:"), titleStyle.Render(formatNumber(h.Files)),
		dimStyle.Render("Workers:"), h.Workers,
		dimStyle.Render("Input:"), h.Input,
		dimStyle.Render("Output:"), successStyle.Render(h.Output),
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatFileResult writes one status line for a processed file
func FormatFileResult(w io.Writer, r batch.FileResult) {
	name := filepath.Base(r.Input)

	switch {
	case r.OK():
		fmt.Fprintf(w, "%s %s %s\n",
			successStyle.Render("✓"), name,
			dimStyle.Render(fmt.Sprintf("%d entries, %s", r.Entries, formatDuration(r.Duration))),
		)
	case r.Skipped:
		fmt.Fprintf(w, "%s %s %s\n", warnStyle.Render("-"), name, dimStyle.Render("skipped"))
	default:
		fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("✗"), name, errorStyle.Render(r.Err.Error()))
	}
}

// FormatSummary renders the batch summary box
func FormatSummary(w io.Writer, s batch.Summary) {
	var statusIndicator string
	if s.Failed > 0 || s.Skipped > 0 {
		statusIndicator = errorStyle.Render("ERROR")
	} else {
		statusIndicator = successStyle.Render("OK")
	}

	line1 := fmt.Sprintf("%s %s  %s %s  %s %s",
		dimStyle.Render("Files:"), formatNumber(s.Files),
		dimStyle.Render("Entries:"), formatNumber(s.Entries),
		dimStyle.Render("Duration:"), formatDuration(s.Elapsed),
	)

	line2 := fmt.Sprintf("%s %s  %s %s  %s %s  %s",
		dimStyle.Render("OK:"), successStyle.Render(formatNumber(s.OK)),
		dimStyle.Render("Failed:"), errorStyle.Render(formatNumber(s.Failed)),
		dimStyle.Render("Skipped:"), warnStyle.Render(formatNumber(s.Skipped)),
		statusIndicator,
	)

	content := titleStyle.Render("Batch Complete") + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
