package appfilter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Error variables for document loading and parsing
var (
	// ErrNotFound is returned when the local appfilter file does not exist
	ErrNotFound = errors.New("appfilter file not found")
	// ErrParse is returned when an appfilter file is not well-formed XML
	ErrParse = errors.New("appfilter is not well-formed XML")
)

// Document is an appfilter file held line by line. The merge writer only
// ever inserts whole new lines, so untouched content round-trips
// byte-identically: comments, ordering, indentation, and attribute
// formatting all survive as-is.
type Document struct {
	lines   []string // original lines, line terminators included
	entries []Entry  // items in document order, default section included
}

// ParseDocument parses appfilter content. The content must be well-formed
// XML; item extraction itself is line-oriented so the document can later be
// written back without reformatting.
func ParseDocument(data []byte) (*Document, error) {
	if _, err := xmlquery.Parse(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	d := &Document{
		lines: splitLines(data),
	}
	for _, line := range d.lines {
		if e, ok := parseItemLine(line, false); ok {
			d.entries = append(d.entries, e)
		}
	}
	return d, nil
}

// LoadDocument reads and parses an appfilter file from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	d, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Entries returns all items in document order.
func (d *Document) Entries() []Entry {
	return d.entries
}

// Components returns a component-to-drawable lookup over all items.
// Later occurrences of a duplicated component win, matching how the
// Android icon-pack build resolves them.
func (d *Document) Components() map[string]string {
	m := make(map[string]string, len(d.entries))
	for _, e := range d.entries {
		m[e.Component] = e.Drawable
	}
	return m
}

// HasComponent reports whether the document contains an item for the
// given component identifier.
func (d *Document) HasComponent(component string) bool {
	for _, e := range d.entries {
		if e.Component == component {
			return true
		}
	}
	return false
}

// Bytes serializes the document. For a document that has not been merged
// into, the result is byte-identical to the parsed input.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range d.lines {
		buf.WriteString(line)
	}
	return buf.Bytes()
}

// splitLines splits content into lines, keeping line terminators so the
// document can be reassembled without altering them.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	lines := strings.SplitAfter(string(data), "\n")
	// SplitAfter yields a trailing empty string when the content ends
	// with a newline.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
