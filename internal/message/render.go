package message

import (
	"fmt"
	"strings"

	"github.com/guilhermegouw/chatlog/internal/styles"
)

// Renderer turns raw message text into terminal output.
type Renderer struct {
	styles *styles.Styles
	color  bool
}

// NewRenderer creates a renderer. With color disabled markers are still
// consumed but no escape sequences are emitted.
func NewRenderer(s *styles.Styles, color bool) *Renderer {
	return &Renderer{styles: s, color: color}
}

// Render walks text once. An unescaped '*' toggles bold and an unescaped '_'
// toggles italic; the markers themselves are not printed. Emphasis left open
// is closed at the end of the text.
func (r *Renderer) Render(text string, base Style) string {
	var (
		out    strings.Builder
		run    strings.Builder
		bold   bool
		italic bool
		prev   rune
	)

	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(r.paint(run.String(), bold || base == StyleBold, italic || base == StyleItalic))
		run.Reset()
	}

	for _, ch := range text {
		switch {
		case ch == BoldMarker && prev != escapeRune:
			flush()
			bold = !bold
		case ch == ItalicMarker && prev != escapeRune:
			flush()
			italic = !italic
		default:
			run.WriteRune(ch)
		}
		prev = ch
	}
	flush()

	return out.String()
}

// Line formats a message for listing.
func (r *Renderer) Line(m *Message) string {
	prefix := fmt.Sprintf("ID: %d - ", m.ID)
	if r.color && r.styles != nil {
		prefix = r.styles.ID.Render(prefix)
	}
	return prefix + r.Render(m.Text, m.Style)
}

func (r *Renderer) paint(s string, bold, italic bool) string {
	if !r.color || r.styles == nil || (!bold && !italic) {
		return s
	}

	style := r.styles.Italic
	switch {
	case bold && italic:
		style = r.styles.BoldItalic
	case bold:
		style = r.styles.Bold
	}

	// Style each line on its own so multi-line bodies are not padded to a block.
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
