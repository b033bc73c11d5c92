package pdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/tsawler/tabula/contentstream"
	"github.com/tsawler/tabula/core"
)

// The tabula parser keeps its operand stack in a package variable, so
// parses are serialized and the stack is drained after each one.
var parseMu sync.Mutex

// parseContent splits a content stream into operations.
func parseContent(data []byte) ([]contentstream.Operation, error) {
	parseMu.Lock()
	defer parseMu.Unlock()

	ops, err := contentstream.NewParser(normalize(data)).Parse()
	// Trailing operands or a failed parse leave the stack dirty; a lone
	// operator consumes them.
	_, _ = contentstream.NewParser([]byte("n")).Parse()
	if err != nil {
		return nil, fmt.Errorf("content stream: %w", err)
	}
	return ops, nil
}

// Letter-only names for the quote operators, which the parser cannot
// read as standalone tokens.
const (
	opQuote       = "Tquote"
	opDoubleQuote = "Tdquote"
)

// normalize rewrites content into the syntax the parser understands.
// Comments are dropped, the ' and " operators are renamed, and inline
// image data between ID and EI is removed so only "BI EI" remains.
// Strings and names are copied untouched.
func normalize(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			j := literalEnd(data, i)
			out = append(out, data[i:j]...)
			i = j
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			out = append(out, "<<"...)
			i += 2
		case c == '<':
			j := bytes.IndexByte(data[i:], '>')
			if j < 0 {
				j = len(data) - i - 1
			}
			out = append(out, data[i:i+j+1]...)
			i += j + 1
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '/':
			j := tokenEnd(data, i+1)
			out = append(out, data[i:j]...)
			i = j
		case isSpace(c) || isDelim(c):
			out = append(out, c)
			i++
		default:
			j := tokenEnd(data, i)
			switch tok := string(data[i:j]); tok {
			case "'":
				out = append(out, opQuote...)
			case `"`:
				out = append(out, opDoubleQuote...)
			case "BI":
				out = append(out, "BI EI"...)
				j = inlineImageEnd(data, j)
			default:
				out = append(out, tok...)
			}
			i = j
		}
	}
	return out
}

// literalEnd returns the index just past the literal string opening at i.
func literalEnd(data []byte, i int) int {
	depth := 0
	for ; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(data)
}

func tokenEnd(data []byte, i int) int {
	for i < len(data) && !isSpace(data[i]) && !isDelim(data[i]) {
		i++
	}
	return i
}

// inlineImageEnd skips from just after BI to just after the matching EI.
// The image data is binary, so EI only counts between whitespace.
func inlineImageEnd(data []byte, i int) int {
	id := -1
	for k := i; k+1 < len(data); k++ {
		if data[k] == 'I' && data[k+1] == 'D' && isSpace(at(data, k-1)) && (k+2 == len(data) || isSpace(data[k+2])) {
			id = k + 2
			break
		}
	}
	if id < 0 {
		return len(data)
	}
	for k := id; k+1 < len(data); k++ {
		if data[k] == 'E' && data[k+1] == 'I' && isSpace(at(data, k-1)) && (k+2 == len(data) || isSpace(data[k+2]) || isDelim(data[k+2])) {
			return k + 2
		}
	}
	return len(data)
}

func at(data []byte, i int) byte {
	if i < 0 || i >= len(data) {
		return ' '
	}
	return data[i]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func numberOf(o core.Object) (float64, bool) {
	switch v := o.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	}
	return 0, false
}
