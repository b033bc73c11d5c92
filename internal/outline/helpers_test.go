package outline

import (
	"fmt"

	"github.com/itsmostafa/pdfoutline/internal/pdf"
)

func span(text string, size float64) pdf.Span {
	return pdf.Span{Text: text, Size: size, Font: "Helvetica"}
}

func boldSpan(text string, size float64) pdf.Span {
	s := span(text, size)
	s.Flags = pdf.FlagBold
	return s
}

func line(spans ...pdf.Span) pdf.Line {
	return pdf.Line{Spans: spans}
}

func textBlock(lines ...pdf.Line) pdf.Block {
	return pdf.Block{Kind: pdf.BlockText, Lines: lines}
}

func imageBlock() pdf.Block {
	return pdf.Block{Kind: pdf.BlockImage}
}

func page(index int, blocks ...pdf.Block) pdf.Page {
	return pdf.Page{Index: index, Blocks: blocks}
}

func document(pages ...pdf.Page) *pdf.Document {
	return &pdf.Document{Path: "test.pdf", Pages: pages}
}

// formPage returns a page of n single-span lines where the first phrases
// spans carry a form keyword and the first short spans are at most 30
// characters long.
func formPage(n, short, phrases int) pdf.Page {
	keywords := []string{"Name", "Date", "Amount", "Age", "Pay", "Town", "Fare"}
	var lines []pdf.Line
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("Field %d", i)
		if i < phrases {
			text = fmt.Sprintf("%s %d", keywords[i%len(keywords)], i)
		}
		if i >= short {
			text += " followed by a long stretch of explanatory prose"
		}
		lines = append(lines, line(span(text, 10)))
	}
	return page(0, textBlock(lines...))
}
