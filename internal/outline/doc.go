// Package outline infers a document title and an H1–H3 outline from the
// typography of a PDF alone. Embedded bookmarks are never consulted.
//
// # Overview
//
// The pipeline works on the span layout produced by package pdf:
//
//   - Span classification: each span is tagged bold (flag bit 4) and
//     colored (not near-black).
//
//   - Form detection: a first page with many short, label-like spans is
//     treated as a filled form. Such documents get a title and no outline.
//
//   - Title extraction: the lines of the first page sharing the largest
//     dominant font size are joined in encounter order.
//
//   - Prominence scoring: every span scores size + 2 (bold) + 1.5 (colored).
//     The four largest distinct scores in the document map to Title, H1, H2
//     and H3. Spans at H1–H3 become outline entries in traversal order.
//
// # Usage
//
//	res, err := outline.Extract("report.pdf")
//	if err != nil {
//		return err
//	}
//	err = res.WriteJSON(os.Stdout)
//
// Results are flat. Nest arranges entries into a tree for display, and
// Markdown renders that tree as a table of contents.
package outline
