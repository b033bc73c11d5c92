package outline

import (
	"fmt"

	"github.com/itsmostafa/pdfoutline/internal/pdf"
)

// Extract opens the PDF at path and builds its Result.
func Extract(path string) (Result, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	return Build(doc), nil
}

// Build infers the title and outline of doc.
//
// When the first page is form-like only its title is returned. Otherwise
// every span in the document is scored and ranked; the title always comes
// from ExtractTitle on the first page, never from the top-ranked span text.
func Build(doc *pdf.Document) Result {
	if doc == nil || len(doc.Pages) == 0 {
		return emptyResult("")
	}

	first := doc.Pages[0]
	if IsFormLike(first) {
		return emptyResult(ExtractTitle(first))
	}

	spans := CollectSpans(doc)
	if len(spans) == 0 {
		return emptyResult("")
	}

	levels := AssignLevels(spans)

	res := emptyResult("")
	titled := false
	for _, s := range spans {
		level := levels[s.Score]
		if level == LevelTitle && !titled {
			res.Title = ExtractTitle(first)
			titled = true
		}
		if level.IsHeading() {
			res.Outline = append(res.Outline, Entry{
				Level: level,
				Text:  s.Text,
				Page:  s.Page,
			})
		}
	}

	return res
}
