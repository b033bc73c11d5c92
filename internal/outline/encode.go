package outline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes r as 2-space indented UTF-8 JSON. Non-ASCII and HTML
// characters are written literally.
func (r Result) WriteJSON(w io.Writer) error {
	if r.Outline == nil {
		r.Outline = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadResult parses a Result written by WriteJSON.
func ReadResult(rd io.Reader) (Result, error) {
	var r Result
	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Result{}, fmt.Errorf("decoding result: %w", err)
	}
	if r.Outline == nil {
		r.Outline = []Entry{}
	}
	return r, nil
}

// String returns the JSON representation of the Result.
func (r Result) String() string {
	var buf bytes.Buffer
	_ = r.WriteJSON(&buf)
	return buf.String()
}
