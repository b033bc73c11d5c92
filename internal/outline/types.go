package outline

import (
	"github.com/itsmostafa/pdfoutline/internal/pdf"
)

// Level is the rank a prominence score maps to.
type Level string

const (
	LevelTitle Level = "Title"
	LevelH1    Level = "H1"
	LevelH2    Level = "H2"
	LevelH3    Level = "H3"
)

// rankedLevels lists levels from the highest distinct score down.
var rankedLevels = []Level{LevelTitle, LevelH1, LevelH2, LevelH3}

// IsHeading reports whether l is one of H1, H2 or H3.
func (l Level) IsHeading() bool {
	return l == LevelH1 || l == LevelH2 || l == LevelH3
}

// Depth returns 1 for H1, 2 for H2, 3 for H3 and 0 otherwise.
func (l Level) Depth() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	default:
		return 0
	}
}

// Entry is one heading in the outline. Page is 0-based.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Result is the title and flat outline inferred for one document.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Span is a pdf.Span tagged with the page it came from and the predicates
// and score derived from its style.
type Span struct {
	pdf.Span
	Page      int
	IsBold    bool
	IsColored bool
	Score     float64
}

func emptyResult(title string) Result {
	return Result{Title: title, Outline: []Entry{}}
}
