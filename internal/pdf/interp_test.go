package pdf

import (
	"testing"
)

func testResources() *Resources {
	return &Resources{
		Fonts: map[string]*Font{
			"F1": {Name: "Helvetica-Bold", Flags: FlagBold},
			"F2": {Name: "Helvetica"},
		},
		XObjects: map[string]*XObject{
			"Im1": {Image: true},
		},
	}
}

func interpret(t *testing.T, content string, res *Resources) []Block {
	t.Helper()
	if res == nil {
		res = testResources()
	}
	blocks, err := Interpret([]byte(content), res)
	if err != nil {
		t.Fatalf("Interpret: unexpected error: %v", err)
	}
	return blocks
}

func allSpans(blocks []Block) []Span {
	var spans []Span
	for _, b := range blocks {
		for _, l := range b.Lines {
			spans = append(spans, l.Spans...)
		}
	}
	return spans
}

func TestInterpretLinesAndSpans(t *testing.T) {
	blocks := interpret(t, "BT /F1 24 Tf 72 720 Td (Annual Report) Tj 0 -30 Td /F2 12 Tf (Body text) Tj ET", nil)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(blocks[0].Lines))
	}

	title := blocks[0].Lines[0].Spans[0]
	if title.Text != "Annual Report" || title.Size != 24 || title.Font != "Helvetica-Bold" || title.Flags != FlagBold {
		t.Errorf("unexpected title span: %+v", title)
	}

	body := blocks[0].Lines[1].Spans[0]
	if body.Text != "Body text" || body.Size != 12 || body.Flags != 0 {
		t.Errorf("unexpected body span: %+v", body)
	}
}

func TestInterpretColors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"rgb red", "1 0 0 rg BT /F2 10 Tf (x) Tj ET", 0xFF0000},
		{"gray", "0.5 g BT /F2 10 Tf (x) Tj ET", 0x808080},
		{"cmyk black", "0 0 0 1 k BT /F2 10 Tf (x) Tj ET", 0x000000},
		{"cmyk cyan", "1 0 0 0 k BT /F2 10 Tf (x) Tj ET", 0x00FFFF},
		{"scn rgb", "/CS0 cs 0 0 1 scn BT /F2 10 Tf (x) Tj ET", 0x0000FF},
		{"restored by Q", "q 1 0 0 rg Q BT /F2 10 Tf (x) Tj ET", 0x000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := allSpans(interpret(t, tt.content, nil))
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			if spans[0].Color != tt.want {
				t.Errorf("color = %06X, want %06X", spans[0].Color, tt.want)
			}
		})
	}
}

func TestInterpretStyleChangeSplitsSpans(t *testing.T) {
	spans := allSpans(interpret(t, "BT /F2 10 Tf 1 0 0 rg (Red) Tj 0 g ( Black) Tj ET", nil))
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "Red" || spans[0].Color != 0xFF0000 {
		t.Errorf("unexpected first span: %+v", spans[0])
	}
	if spans[1].Text != " Black" || spans[1].Color != 0 {
		t.Errorf("unexpected second span: %+v", spans[1])
	}
}

func TestInterpretWordSpacing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"TJ word gap", "BT /F2 10 Tf [(Hello) -250 (World)] TJ ET", "Hello World"},
		{"TJ kerning", "BT /F2 10 Tf [(Hel) -20 (lo)] TJ ET", "Hello"},
		{"Td on baseline", "BT /F2 10 Tf 10 10 Td (a) Tj 20 0 Td (b) Tj ET", "a b"},
		{"existing space kept", "BT /F2 10 Tf 10 10 Td (a ) Tj 20 0 Td (b) Tj ET", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := allSpans(interpret(t, tt.content, nil))
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
			}
			if spans[0].Text != tt.want {
				t.Errorf("text = %q, want %q", spans[0].Text, tt.want)
			}
		})
	}
}

func TestInterpretEffectiveSize(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"Tf only", "BT /F2 11 Tf (x) Tj ET", 11},
		{"text matrix", "BT /F2 1 Tf 18 0 0 18 72 700 Tm (x) Tj ET", 18},
		{"ctm", "2 0 0 2 0 0 cm BT /F2 10 Tf (x) Tj ET", 20},
		{"ctm restored", "q 2 0 0 2 0 0 cm Q BT /F2 10 Tf (x) Tj ET", 10},
		{"rounded", "BT /F2 1 Tf 9.96123 0 0 9.96123 0 0 Tm (x) Tj ET", 9.96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := allSpans(interpret(t, tt.content, nil))
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			if spans[0].Size != tt.want {
				t.Errorf("size = %v, want %v", spans[0].Size, tt.want)
			}
		})
	}
}

func TestInterpretBlocks(t *testing.T) {
	t.Run("image splits text", func(t *testing.T) {
		blocks := interpret(t, "BT /F2 10 Tf 0 700 Td (a) Tj ET /Im1 Do BT /F2 10 Tf 0 688 Td (b) Tj ET", nil)
		if len(blocks) != 3 {
			t.Fatalf("expected 3 blocks, got %d", len(blocks))
		}
		kinds := []BlockKind{BlockText, BlockImage, BlockText}
		for i, k := range kinds {
			if blocks[i].Kind != k {
				t.Errorf("block %d kind = %v, want %v", i, blocks[i].Kind, k)
			}
		}
	})

	t.Run("inline image", func(t *testing.T) {
		blocks := interpret(t, "BI /W 1 /H 1 ID \x00 EI", nil)
		if len(blocks) != 1 || blocks[0].Kind != BlockImage {
			t.Errorf("expected a single image block, got %+v", blocks)
		}
	})

	t.Run("large gap splits text", func(t *testing.T) {
		blocks := interpret(t, "BT /F2 10 Tf 0 700 Td (a) Tj 0 -100 Td (b) Tj ET", nil)
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}
	})

	t.Run("moving up splits text", func(t *testing.T) {
		blocks := interpret(t, "BT /F2 10 Tf 0 100 Td (a) Tj 0 500 Td (b) Tj ET", nil)
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}
	})

	t.Run("leading and quote", func(t *testing.T) {
		blocks := interpret(t, "BT /F2 10 Tf 12 TL 0 700 Td (a) Tj (b) ' T* (c) Tj ET", nil)
		if len(blocks) != 1 || len(blocks[0].Lines) != 3 {
			t.Fatalf("expected 1 block with 3 lines, got %+v", blocks)
		}
	})
}

func TestInterpretFormXObject(t *testing.T) {
	res := testResources()
	res.XObjects["Fm1"] = &XObject{
		Content:   []byte("BT /F9 14 Tf (inner) Tj ET"),
		Resources: &Resources{Fonts: map[string]*Font{"F9": {Name: "Times-Roman", Flags: FlagSerif}}},
	}

	spans := allSpans(interpret(t, "q 1 0 0 1 0 0 cm /Fm1 Do Q BT /F2 10 Tf 0 -50 Td (outer) Tj ET", res))
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "inner" || spans[0].Font != "Times-Roman" || spans[0].Size != 14 {
		t.Errorf("unexpected form span: %+v", spans[0])
	}
	if spans[1].Font != "Helvetica" {
		t.Errorf("outer span should use page font, got %+v", spans[1])
	}
}

func TestInterpretSelfReferencingForm(t *testing.T) {
	form := &XObject{Content: []byte("BT /F2 10 Tf (loop) Tj ET /Fm1 Do")}
	form.Resources = &Resources{
		Fonts:    testResources().Fonts,
		XObjects: map[string]*XObject{"Fm1": form},
	}
	res := testResources()
	res.XObjects["Fm1"] = form

	spans := allSpans(interpret(t, "/Fm1 Do", res))
	if len(spans) == 0 {
		t.Fatal("expected spans from the form")
	}
	if len(spans) > maxFormDepth+1 {
		t.Errorf("recursion not bounded: %d spans", len(spans))
	}
}

func TestInterpretSuperscript(t *testing.T) {
	spans := allSpans(interpret(t, "BT /F2 10 Tf (x) Tj 4 Ts (2) Tj ET", nil))
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].Flags&FlagSuperscript == 0 {
		t.Errorf("expected superscript flag on %+v", spans[1])
	}
}

func TestInterpretUnknownFont(t *testing.T) {
	spans := allSpans(interpret(t, "BT /Missing 10 Tf (caf\\351) Tj ET", nil))
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "café" || spans[0].Font != "" {
		t.Errorf("unexpected span: %+v", spans[0])
	}
}

func TestInterpretSyntaxError(t *testing.T) {
	blocks, err := Interpret([]byte("BT /F2 10 Tf (ok) Tj [ (broken"), testResources())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(blocks) != 0 {
		t.Errorf("expected no blocks, got %+v", blocks)
	}

	// A failed stream must not leak operands into the next one.
	spans := allSpans(interpret(t, "BT /F2 10 Tf (next) Tj ET", nil))
	if len(spans) != 1 || spans[0].Text != "next" || spans[0].Size != 10 {
		t.Errorf("unexpected spans after error: %+v", spans)
	}
}

func TestInterpretBrokenFormKeepsPage(t *testing.T) {
	res := testResources()
	res.XObjects["Fm1"] = &XObject{Content: []byte("BT (unclosed")}

	spans := allSpans(interpret(t, "/Fm1 Do BT /F2 10 Tf (after) Tj ET", res))
	if len(spans) != 1 || spans[0].Text != "after" {
		t.Errorf("unexpected spans: %+v", spans)
	}
}

func TestInterpretDoubleQuote(t *testing.T) {
	blocks := interpret(t, `BT /F2 10 Tf 12 TL 0 700 Td (a) Tj 1 2 (b) " ET`, nil)
	if len(blocks) != 1 || len(blocks[0].Lines) != 2 {
		t.Fatalf("expected 1 block with 2 lines, got %+v", blocks)
	}
	if spans := blocks[0].Lines[1].Spans; len(spans) != 1 || spans[0].Text != "b" {
		t.Errorf("unexpected second line: %+v", spans)
	}
}

func TestPageWalkSkipsImages(t *testing.T) {
	page := Page{Blocks: []Block{
		{Kind: BlockText, Lines: []Line{{Spans: []Span{{Text: "a"}, {Text: "b"}}}}},
		{Kind: BlockImage},
		{Kind: BlockText, Lines: []Line{{Spans: []Span{{Text: "c"}}}}},
	}}

	var got string
	page.Walk(func(_ Line, s Span) { got += s.Text })
	if got != "abc" {
		t.Errorf("walk order = %q, want %q", got, "abc")
	}
}
