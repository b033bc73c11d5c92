// Package pdftest builds small uncompressed PDF files for tests.
//
// Every page gets the same font resources: /F1 is Helvetica-Bold and /F2 is
// Helvetica, both WinAnsi encoded.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ReportPages is a two page document with a bold title, bold headings,
// regular body text and one red line.
var ReportPages = []string{
	"BT /F1 24 Tf 72 720 Td (Annual Report) Tj ET\n" +
		"BT /F1 16 Tf 72 680 Td (Introduction) Tj ET\n" +
		"BT /F2 11 Tf 72 660 Td (Body text here.) Tj ET\n" +
		"BT 1 0 0 rg /F2 11 Tf 72 640 Td (Red note) Tj ET",
	"BT /F1 16 Tf 72 720 Td (Methods) Tj ET\n" +
		"BT /F2 11 Tf 72 700 Td (More body text.) Tj ET",
}

// Build returns a PDF with one page per content stream.
func Build(pages ...string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled in once the kids are known
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	kids := make([]string, 0, len(pages))
	for _, content := range pages {
		nr := len(objs) + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", nr))
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>", nr+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	return buf.Bytes()
}

// WriteFile builds a PDF from pages, writes it to dir/name and returns the
// path.
func WriteFile(tb testing.TB, dir, name string, pages ...string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0644); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return path
}
