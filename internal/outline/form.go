package outline

import (
	"strings"
	"unicode/utf8"

	"github.com/itsmostafa/pdfoutline/internal/pdf"
)

// formKeywords are field labels typical of filled application forms.
var formKeywords = []string{
	"name", "date", "designation", "s.no", "serial no", "relationship",
	"amount", "advance", "pay", "service", "age", "town", "fare", "goals",
}

const (
	formMinSpans      = 15  // a form page has more spans than this
	formShortLen      = 30  // spans up to this many characters count as short
	formShortFraction = 0.4 // share of short spans must exceed this
	formMinPhrases    = 4   // spans mentioning a keyword
)

// IsFormLike reports whether page looks like a filled form: many spans,
// mostly short, several of which carry field labels.
func IsFormLike(page pdf.Page) bool {
	var total, short, phrases int

	page.Walk(func(_ pdf.Line, s pdf.Span) {
		text := strings.ToLower(strings.TrimSpace(s.Text))
		if text == "" {
			return
		}
		total++
		if utf8.RuneCountInString(text) <= formShortLen {
			short++
		}
		if hasFormKeyword(text) {
			phrases++
		}
	})

	if total == 0 {
		return false
	}

	shortFraction := float64(short) / float64(total)
	return total > formMinSpans && shortFraction > formShortFraction && phrases >= formMinPhrases
}

func hasFormKeyword(text string) bool {
	for _, k := range formKeywords {
		if strings.HasPrefix(text, k) || strings.Contains(text, k) {
			return true
		}
	}
	return false
}
