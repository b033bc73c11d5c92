package pdf

import (
	"strings"

	"github.com/tsawler/tabula/core"
	tabfont "github.com/tsawler/tabula/font"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Font descriptor flag bits (PDF 32000-1, table 123).
const (
	descFixedPitch = 1 << 0
	descSerif      = 1 << 1
	descItalic     = 1 << 6
	descForceBold  = 1 << 18
)

// Font holds what the layout model needs from a PDF font resource.
type Font struct {
	Name    string // BaseFont without the subset tag
	Flags   int    // span flags implied by the font
	TwoByte bool   // composite (Type0) font with 2-byte codes

	toUnicode *tabfont.CMap
	encoding  encoding.Encoding
}

// parseToUnicode reads a decoded ToUnicode CMap stream.
func parseToUnicode(data []byte) (*tabfont.CMap, error) {
	return tabfont.ParseToUnicodeCMap(&core.Stream{Dict: core.Dict{}, Data: data})
}

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Decode converts string operand bytes to text. A nil font decodes as
// WinAnsi, which is what most unlabelled simple fonts use.
func (f *Font) Decode(raw []byte) string {
	if f == nil {
		return decodeSimple(charmap.Windows1252, raw)
	}

	if f.toUnicode != nil {
		return f.lookup(raw)
	}

	if f.TwoByte {
		s, err := utf16be.NewDecoder().Bytes(raw)
		if err != nil {
			return ""
		}
		return string(s)
	}

	return decodeSimple(f.encoding, raw)
}

// lookup maps codes through the ToUnicode CMap. Simple fonts use 1-byte
// codes and composite fonts 2-byte codes. The CMap echoes unmapped codes
// back as code points, so high simple codes that come back unchanged go
// through the font encoding instead.
func (f *Font) lookup(raw []byte) string {
	codeLen := 1
	if f.TwoByte {
		codeLen = 2
	}

	var sb strings.Builder
	for i := 0; i < len(raw); i += codeLen {
		end := min(i+codeLen, len(raw))
		var code uint32
		for _, b := range raw[i:end] {
			code = code<<8 | uint32(b)
		}

		s := f.toUnicode.Lookup(code)
		switch {
		case f.TwoByte:
			if s == "" {
				s = "\uFFFD"
			}
		case s == "" || (code >= 0x80 && s == string(rune(code))):
			s = decodeSimple(f.encoding, raw[i:end])
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func decodeSimple(enc encoding.Encoding, raw []byte) string {
	if enc == nil {
		enc = charmap.Windows1252
	}
	s, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(s)
}

// encodingByName maps a PDF base encoding name to a decoder.
func encodingByName(name string) encoding.Encoding {
	switch name {
	case "MacRomanEncoding":
		return charmap.Macintosh
	case "WinAnsiEncoding", "StandardEncoding", "PDFDocEncoding":
		return charmap.Windows1252
	default:
		return nil
	}
}

// stripSubset removes a subset tag such as "ABCDEF+" from a font name.
func stripSubset(name string) string {
	if len(name) < 8 || name[6] != '+' {
		return name
	}
	for i := 0; i < 6; i++ {
		if name[i] < 'A' || name[i] > 'Z' {
			return name
		}
	}
	return name[7:]
}

// fontFlags derives span flags from the base font name and its descriptor.
func fontFlags(name string, descFlags int, weight, italicAngle float64) int {
	var flags int
	lower := strings.ToLower(name)

	if descFlags&descForceBold != 0 || weight >= 600 {
		flags |= FlagBold
	}
	for _, marker := range []string{"bold", "black", "heavy", "semibold", "demi"} {
		if strings.Contains(lower, marker) {
			flags |= FlagBold
			break
		}
	}

	if descFlags&descItalic != 0 || italicAngle != 0 ||
		strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		flags |= FlagItalic
	}
	if descFlags&descSerif != 0 {
		flags |= FlagSerif
	}
	if descFlags&descFixedPitch != 0 || strings.Contains(lower, "courier") || strings.Contains(lower, "mono") {
		flags |= FlagMonospaced
	}

	return flags
}
