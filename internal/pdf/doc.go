// Package pdf reads PDF files into a block/line/span text layout model.
//
// A Document is an ordered list of Pages. Each Page holds Blocks in content
// stream order; text blocks carry Lines, and each Line carries Spans, the
// smallest runs of text that share one font, size, style and colour. Image
// blocks carry no lines and exist only so callers can tell them apart.
//
// # Usage
//
//	doc, err := pdf.Open("report.pdf")
//	if err != nil {
//		return err
//	}
//	for _, page := range doc.Pages {
//		for _, block := range page.Blocks {
//			if block.Kind != pdf.BlockText {
//				continue
//			}
//			...
//		}
//	}
//
// # Architecture
//
//   - open.go: pdfcpu adapter that loads pages, fonts and XObjects
//   - content.go: tabula content stream parsing
//   - interp.go: text and graphics state machine that emits the layout
//   - font.go: font flags, tabula ToUnicode CMaps and text decoding
//
// Layout reconstruction is deliberately shallow: lines follow the baseline
// changes of the content stream and blocks split on large vertical jumps.
// Reading order is the order in which text is painted.
package pdf
