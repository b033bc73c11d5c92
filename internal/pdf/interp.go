package pdf

import (
	"math"
	"strings"

	"github.com/tsawler/tabula/contentstream"
	"github.com/tsawler/tabula/core"
)

// maxFormDepth bounds recursion into nested form XObjects.
const maxFormDepth = 8

// Resources are the named fonts and XObjects a content stream may refer to.
type Resources struct {
	Fonts    map[string]*Font
	XObjects map[string]*XObject
}

// XObject is an external object painted with the Do operator.
type XObject struct {
	Image     bool
	Content   []byte     // form content, empty for images
	Matrix    [6]float64 // form matrix
	Resources *Resources // form resources, may be nil
}

type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// mul returns m × n.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func translate(tx, ty float64) matrix {
	return matrix{1, 0, 0, 1, tx, ty}
}

// expansion is the scale factor the matrix applies to areas, square-rooted.
func (m matrix) expansion() float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

type graphicsState struct {
	ctm   matrix
	color int
}

type textState struct {
	font    *Font
	size    float64
	leading float64
	rise    float64
	tm      matrix
	tlm     matrix
}

// interpreter runs a content stream and collects the text layout.
type interpreter struct {
	res   *Resources
	gs    graphicsState
	stack []graphicsState
	ts    textState
	depth int

	blocks   []Block
	inLine   bool
	lineY    float64
	lineSize float64
	space    bool
}

// Interpret runs content against res and returns the blocks it paints.
// A stream that does not parse paints nothing.
func Interpret(content []byte, res *Resources) ([]Block, error) {
	in := &interpreter{gs: graphicsState{ctm: identity}}
	err := in.run(content, res)
	return in.blocks, err
}

func (in *interpreter) run(content []byte, res *Resources) error {
	if res == nil {
		res = &Resources{}
	}
	prev := in.res
	in.res = res
	defer func() { in.res = prev }()

	ops, err := parseContent(content)
	if err != nil {
		return err
	}
	for _, op := range ops {
		in.exec(op)
	}
	return nil
}

func (in *interpreter) exec(op contentstream.Operation) {
	a := op.Operands
	switch op.Operator {
	case "q":
		in.stack = append(in.stack, in.gs)
	case "Q":
		if n := len(in.stack); n > 0 {
			in.gs = in.stack[n-1]
			in.stack = in.stack[:n-1]
		}
	case "cm":
		if m, ok := matrixArgs(a); ok {
			in.gs.ctm = m.mul(in.gs.ctm)
		}

	case "g":
		if n, ok := numbers(a, 1); ok {
			in.gs.color = packGray(n[0])
		}
	case "rg":
		if n, ok := numbers(a, 3); ok {
			in.gs.color = packRGB(n[0], n[1], n[2])
		}
	case "k":
		if n, ok := numbers(a, 4); ok {
			in.gs.color = packCMYK(n[0], n[1], n[2], n[3])
		}
	case "sc", "scn":
		in.setColor(a)
	case "cs":
		in.gs.color = 0

	case "BT":
		in.ts.tm = identity
		in.ts.tlm = identity
	case "ET":
		in.space = false
	case "Tf":
		if len(a) >= 2 {
			name, ok := a[0].(core.Name)
			size, isNum := numberOf(a[1])
			if ok && isNum {
				in.ts.font = in.res.Fonts[string(name)]
				in.ts.size = size
			}
		}
	case "TL":
		if n, ok := numbers(a, 1); ok {
			in.ts.leading = n[0]
		}
	case "Ts":
		if n, ok := numbers(a, 1); ok {
			in.ts.rise = n[0]
		}
	case "Td":
		if n, ok := numbers(a, 2); ok {
			in.moveText(n[0], n[1])
		}
	case "TD":
		if n, ok := numbers(a, 2); ok {
			in.ts.leading = -n[1]
			in.moveText(n[0], n[1])
		}
	case "Tm":
		if m, ok := matrixArgs(a); ok {
			in.ts.tm = m
			in.ts.tlm = m
			in.space = true
		}
	case "T*":
		in.moveText(0, -in.ts.leading)

	case "Tj":
		if len(a) >= 1 {
			in.show(a[len(a)-1])
		}
	case opQuote:
		in.moveText(0, -in.ts.leading)
		if len(a) >= 1 {
			in.show(a[len(a)-1])
		}
	case opDoubleQuote:
		in.moveText(0, -in.ts.leading)
		if len(a) >= 3 {
			in.show(a[2])
		}
	case "TJ":
		if len(a) < 1 {
			break
		}
		arr, ok := a[len(a)-1].(core.Array)
		if !ok {
			break
		}
		for _, el := range arr {
			if _, ok := el.(core.String); ok {
				in.show(el)
				continue
			}
			// Offsets are in thousandths of an em; a large negative one
			// moves right by roughly a word gap.
			if n, ok := numberOf(el); ok && n <= -200 {
				in.space = true
			}
		}

	case "BI":
		in.image()
	case "Do":
		if len(a) >= 1 {
			if name, ok := a[0].(core.Name); ok {
				in.paint(in.res.XObjects[string(name)])
			}
		}
	}
}

func (in *interpreter) setColor(a []core.Object) {
	var n []float64
	for _, o := range a {
		if v, ok := numberOf(o); ok {
			n = append(n, v)
		}
	}
	switch len(n) {
	case 1:
		in.gs.color = packGray(n[0])
	case 3:
		in.gs.color = packRGB(n[0], n[1], n[2])
	case 4:
		in.gs.color = packCMYK(n[0], n[1], n[2], n[3])
	}
}

func (in *interpreter) moveText(tx, ty float64) {
	in.ts.tlm = translate(tx, ty).mul(in.ts.tlm)
	in.ts.tm = in.ts.tlm
	in.space = true
}

// show decodes a string operand and adds it to the layout at the current
// text position.
func (in *interpreter) show(o core.Object) {
	s, ok := o.(core.String)
	if !ok || len(s) == 0 {
		return
	}
	text := in.ts.font.Decode([]byte(s))
	if text == "" {
		return
	}

	trm := in.ts.tm.mul(in.gs.ctm)
	size := math.Round(in.ts.size*trm.expansion()*100) / 100
	y := trm[5]

	span := Span{Text: text, Size: size, Color: in.gs.color}
	if in.ts.font != nil {
		span.Font = in.ts.font.Name
		span.Flags = in.ts.font.Flags
	}
	if in.ts.rise > 0 {
		span.Flags |= FlagSuperscript
	}

	if !in.inLine || math.Abs(y-in.lineY) > 0.5*math.Max(size, in.lineSize) {
		in.newLine(y, size)
	} else if in.space {
		if last := in.lastSpan(); last != nil && !strings.HasSuffix(last.Text, " ") && !strings.HasPrefix(text, " ") {
			span.Text = " " + span.Text
		}
	}
	in.space = false

	line := in.currentLine()
	if n := len(line.Spans); n > 0 && sameStyle(line.Spans[n-1], span) {
		line.Spans[n-1].Text += span.Text
	} else {
		line.Spans = append(line.Spans, span)
	}
	if size > in.lineSize {
		in.lineSize = size
	}
}

// newLine starts a line at baseline y, opening a new text block when the
// line does not continue the current one.
func (in *interpreter) newLine(y, size float64) {
	startBlock := !in.inLine || len(in.blocks) == 0 || in.blocks[len(in.blocks)-1].Kind != BlockText
	if !startBlock {
		height := 1.2 * math.Max(size, in.lineSize)
		gap := in.lineY - y
		// Moving up the page or skipping well past the next line ends the block.
		startBlock = gap < -height || gap > 1.5*height
	}
	if startBlock {
		in.blocks = append(in.blocks, Block{Kind: BlockText})
	}
	b := &in.blocks[len(in.blocks)-1]
	b.Lines = append(b.Lines, Line{})
	in.inLine = true
	in.lineY = y
	in.lineSize = size
}

func (in *interpreter) currentLine() *Line {
	b := &in.blocks[len(in.blocks)-1]
	return &b.Lines[len(b.Lines)-1]
}

func (in *interpreter) lastSpan() *Span {
	if !in.inLine {
		return nil
	}
	l := in.currentLine()
	if len(l.Spans) == 0 {
		return nil
	}
	return &l.Spans[len(l.Spans)-1]
}

func (in *interpreter) image() {
	in.blocks = append(in.blocks, Block{Kind: BlockImage})
	in.inLine = false
}

func (in *interpreter) paint(x *XObject) {
	if x == nil {
		return
	}
	if x.Image {
		in.image()
		return
	}
	if in.depth >= maxFormDepth {
		return
	}

	m := matrix(x.Matrix)
	if m == (matrix{}) {
		m = identity
	}
	in.stack = append(in.stack, in.gs)
	in.gs.ctm = m.mul(in.gs.ctm)
	saved := in.ts
	in.depth++

	// Errors inside a form only cut that form short.
	_ = in.run(x.Content, x.Resources)

	in.depth--
	in.ts = saved
	in.gs = in.stack[len(in.stack)-1]
	in.stack = in.stack[:len(in.stack)-1]
}

func sameStyle(a, b Span) bool {
	return a.Size == b.Size && a.Font == b.Font && a.Flags == b.Flags && a.Color == b.Color
}

func numbers(a []core.Object, n int) ([]float64, bool) {
	if len(a) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, o := range a[len(a)-n:] {
		v, ok := numberOf(o)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func matrixArgs(a []core.Object) (matrix, bool) {
	n, ok := numbers(a, 6)
	if !ok {
		return matrix{}, false
	}
	return matrix{n[0], n[1], n[2], n[3], n[4], n[5]}, true
}

func channel(v float64) int {
	v = math.Max(0, math.Min(1, v))
	return int(math.Round(v * 255))
}

func packRGB(r, g, b float64) int {
	return channel(r)<<16 | channel(g)<<8 | channel(b)
}

func packGray(v float64) int {
	return packRGB(v, v, v)
}

func packCMYK(c, m, y, k float64) int {
	return packRGB((1-c)*(1-k), (1-m)*(1-k), (1-y)*(1-k))
}
