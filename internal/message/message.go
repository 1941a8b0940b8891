// Package message provides the message log: entities, the in-memory store,
// archives and the service used by every front end.
package message

import (
	"errors"
	"strings"
)

// Delimiter separates the id from the text in the flat-file format and is
// therefore not allowed inside a message body.
const Delimiter = "|"

// Markers toggling emphasis while rendering.
const (
	BoldMarker   = '*'
	ItalicMarker = '_'
	escapeRune   = '\\'
)

// Validation errors.
var (
	ErrEmptyText    = errors.New("message text is empty")
	ErrDelimiter    = errors.New("message text contains the reserved '|' character")
	ErrEmptyKeyword = errors.New("search keyword is empty")
)

// Style is a whole-message emphasis applied beneath the inline markers.
type Style string

// Style constants.
const (
	StylePlain  Style = "plain"
	StyleBold   Style = "bold"
	StyleItalic Style = "italic"
)

// ParseStyle converts a stored style name, falling back to plain.
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleBold:
		return StyleBold
	case StyleItalic:
		return StyleItalic
	default:
		return StylePlain
	}
}

// Message is a single entry of the log.
type Message struct {
	ID    int
	Text  string
	Style Style
}

// New creates a message with a forced id.
func New(id int, text string) *Message {
	return &Message{ID: id, Text: text, Style: StylePlain}
}

// ValidateText checks a message body before it reaches the store.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if strings.Contains(text, Delimiter) {
		return ErrDelimiter
	}
	return nil
}

// MarkerWarnings reports markers that appear an odd number of times. The
// message is still valid; formatting will just stay open until the end.
func MarkerWarnings(text string) []string {
	var warnings []string
	if strings.Count(text, string(BoldMarker))%2 != 0 {
		warnings = append(warnings, "odd number of '*' markers, bold formatting may be off")
	}
	if strings.Count(text, string(ItalicMarker))%2 != 0 {
		warnings = append(warnings, "odd number of '_' markers, italic formatting may be off")
	}
	return warnings
}

// EscapeWarnings reports a literal backslash-n in text. The flat file stores
// newlines as \n, so such text comes back with a real newline after a
// save and load.
func EscapeWarnings(text string) []string {
	if strings.Contains(text, escapedNewline) {
		return []string{`text contains a literal "\n", it will load back as a line break from the text file`}
	}
	return nil
}

// TextWarnings collects every warning for text that is valid but may not
// display or round-trip as typed.
func TextWarnings(text string) []string {
	return append(MarkerWarnings(text), EscapeWarnings(text)...)
}
