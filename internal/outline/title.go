package outline

import (
	"strings"

	"github.com/itsmostafa/pdfoutline/internal/pdf"
)

// titleAccumulator folds lines into the parts of the largest-size text seen.
// A strictly larger line replaces every part collected so far; an equal one
// is appended.
type titleAccumulator struct {
	size  float64
	parts []string
}

func (a *titleAccumulator) add(size float64, text string) {
	switch {
	case size > a.size:
		a.size = size
		a.parts = []string{text}
	case size == a.size:
		a.parts = append(a.parts, text)
	}
}

func (a *titleAccumulator) String() string {
	return strings.TrimSpace(strings.Join(a.parts, " "))
}

// ExtractTitle returns the text of the lines on page that share the largest
// dominant font size, joined in encounter order.
func ExtractTitle(page pdf.Page) string {
	var acc titleAccumulator

	for _, b := range page.Blocks {
		if b.Kind != pdf.BlockText {
			continue
		}
		for _, line := range b.Lines {
			size, text := dominantLine(line)
			acc.add(size, text)
		}
	}

	return acc.String()
}

// dominantLine returns the largest span size in line and the line's span
// texts, each trimmed, joined by single spaces.
func dominantLine(line pdf.Line) (float64, string) {
	var size float64
	texts := make([]string, 0, len(line.Spans))
	for _, s := range line.Spans {
		if s.Size >= size {
			size = s.Size
		}
		texts = append(texts, strings.TrimSpace(s.Text))
	}
	return size, strings.Join(texts, " ")
}
