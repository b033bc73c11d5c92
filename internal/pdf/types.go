package pdf

import "errors"

// ErrNoPages is returned by Open when a file parses but holds no pages.
var ErrNoPages = errors.New("pdf has no pages")

// Span style flags. Bit values are stable and part of the package API.
const (
	FlagSuperscript = 1 << iota
	FlagItalic
	FlagBold
	FlagSerif
	FlagMonospaced
)

// BlockKind distinguishes text blocks from everything else on a page.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
)

func (k BlockKind) String() string {
	switch k {
	case BlockText:
		return "text"
	case BlockImage:
		return "image"
	default:
		return "unknown"
	}
}

// Span is a run of text sharing one font, size, style and colour.
type Span struct {
	Text  string  `json:"text"`
	Size  float64 `json:"size"`
	Font  string  `json:"font"`
	Flags int     `json:"flags"`
	Color int     `json:"color"` // packed 0xRRGGBB
}

// Line is an ordered list of spans that share a baseline.
type Line struct {
	Spans []Span `json:"spans"`
}

// Block is either a text block with lines or a non-text block.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Lines []Line    `json:"lines,omitempty"`
}

// Page is one page of a document. Index is 0-based.
type Page struct {
	Index  int     `json:"index"`
	Blocks []Block `json:"blocks"`
}

// Document is an opened PDF file.
type Document struct {
	Path  string `json:"path"`
	Pages []Page `json:"pages"`
}

// Walk calls fn for every span on the page in block, line, span order.
// Non-text blocks are skipped.
func (p Page) Walk(fn func(line Line, span Span)) {
	for _, b := range p.Blocks {
		if b.Kind != BlockText {
			continue
		}
		for _, l := range b.Lines {
			for _, s := range l.Spans {
				fn(l, s)
			}
		}
	}
}
