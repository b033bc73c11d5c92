package outline

import (
	"sort"
	"strings"

	"github.com/itsmostafa/pdfoutline/internal/pdf"
)

const (
	boldBonus    = 2.0
	coloredBonus = 1.5
)

// Score is a span's prominence: its size plus fixed bonuses for bold and
// colored text. Size always dominates; style only breaks ties.
func Score(size float64, bold, colored bool) float64 {
	score := size
	if bold {
		score += boldBonus
	}
	if colored {
		score += coloredBonus
	}
	return score
}

// CollectSpans returns every non-blank span of doc in page, block, line,
// span order, with text trimmed and predicates and score filled in.
func CollectSpans(doc *pdf.Document) []Span {
	var spans []Span
	for _, page := range doc.Pages {
		page.Walk(func(_ pdf.Line, s pdf.Span) {
			text := strings.TrimSpace(s.Text)
			if text == "" {
				return
			}
			s.Text = text

			span := Span{
				Span:      s,
				Page:      page.Index,
				IsBold:    IsBold(s.Flags),
				IsColored: IsColored(s.Color),
			}
			span.Score = Score(s.Size, span.IsBold, span.IsColored)
			spans = append(spans, span)
		})
	}
	return spans
}

// AssignLevels maps the four largest distinct scores among spans to Title,
// H1, H2 and H3. Fewer distinct scores leave the lower levels unassigned.
func AssignLevels(spans []Span) map[float64]Level {
	seen := make(map[float64]struct{}, len(spans))
	var scores []float64
	for _, s := range spans {
		if _, ok := seen[s.Score]; ok {
			continue
		}
		seen[s.Score] = struct{}{}
		scores = append(scores, s.Score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	levels := make(map[float64]Level, len(rankedLevels))
	for i, level := range rankedLevels {
		if i >= len(scores) {
			break
		}
		levels[scores[i]] = level
	}
	return levels
}
