// Package render turns article HTML into styled terminal text for the
// editor's preview pane. Unknown tags are ignored and their text kept, so
// partially typed documents render without errors.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
)

var (
	h1Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	h2Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	strongStyle = lipgloss.NewStyle().Bold(true)
	emStyle     = lipgloss.NewStyle().Italic(true)
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
)

type listFrame struct {
	ordered bool
	index   int
}

type renderer struct {
	width  int
	out    strings.Builder
	line   strings.Builder
	block  string
	inline []string
	lists  []listFrame
	marker string
	// pendingSpace records trailing whitespace of the previous text run.
	pendingSpace bool
}

// HTML renders src wrapped to width columns.
func HTML(src string, width int) string {
	if width < 20 {
		width = 20
	}
	r := &renderer{width: width}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				r.text(string(z.Raw()))
			}
			r.flush()
			return strings.TrimRight(r.out.String(), "\n")
		case html.TextToken:
			r.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			r.open(string(name), tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			r.close(string(name))
		}
	}
}

func (r *renderer) open(tag string, selfClosing bool) {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "blockquote", "pre":
		r.flush()
		r.block = tag
	case "ul", "ol":
		r.flush()
		r.lists = append(r.lists, listFrame{ordered: tag == "ol"})
	case "li":
		r.flush()
		if n := len(r.lists); n > 0 {
			frame := &r.lists[n-1]
			frame.index++
			if frame.ordered {
				r.marker = fmt.Sprintf("%d. ", frame.index)
			} else {
				r.marker = "• "
			}
		} else {
			r.marker = "• "
		}
		r.block = "li"
	case "br":
		r.flush()
	case "strong", "b", "em", "i", "code", "a":
		if !selfClosing {
			r.inline = append(r.inline, tag)
		}
	}
}

func (r *renderer) close(tag string) {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "blockquote", "pre", "li":
		r.flush()
		r.block = ""
	case "ul", "ol":
		r.flush()
		if n := len(r.lists); n > 0 {
			r.lists = r.lists[:n-1]
		}
		if len(r.lists) == 0 {
			r.out.WriteRune('\n')
		}
	case "strong", "b", "em", "i", "code", "a":
		for i := len(r.inline) - 1; i >= 0; i-- {
			if r.inline[i] == tag {
				r.inline = append(r.inline[:i], r.inline[i+1:]...)
				break
			}
		}
	}
}

func (r *renderer) text(s string) {
	if r.block != "pre" {
		words := strings.Fields(s)
		if len(words) == 0 {
			if s != "" {
				r.pendingSpace = true
			}
			return
		}
		runes := []rune(s)
		if (unicode.IsSpace(runes[0]) || r.pendingSpace) && r.line.Len() > 0 {
			r.line.WriteString(" ")
		}
		r.pendingSpace = unicode.IsSpace(runes[len(runes)-1])
		s = strings.Join(words, " ")
	}
	style := lipgloss.NewStyle()
	for _, tag := range r.inline {
		switch tag {
		case "strong", "b":
			style = style.Inherit(strongStyle)
		case "em", "i":
			style = style.Inherit(emStyle)
		case "code":
			style = style.Inherit(codeStyle)
		case "a":
			style = style.Inherit(linkStyle)
		}
	}
	if len(r.inline) == 0 {
		r.line.WriteString(s)
		return
	}
	r.line.WriteString(style.Render(s))
}

func (r *renderer) flush() {
	text := strings.TrimSpace(r.line.String())
	r.line.Reset()
	r.pendingSpace = false
	marker := r.marker
	r.marker = ""
	if text == "" {
		return
	}
	depth := len(r.lists)
	switch r.block {
	case "h1":
		r.out.WriteString(h1Style.Render(wordwrap.String(text, r.width)))
		r.out.WriteString("\n\n")
	case "h2", "h3", "h4", "h5", "h6":
		r.out.WriteString(h2Style.Render(wordwrap.String(text, r.width)))
		r.out.WriteString("\n\n")
	case "li":
		pad := 2 * (depth - 1)
		if pad < 0 {
			pad = 0
		}
		body := wordwrap.String(text, r.width-pad-len([]rune(marker)))
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			if i == 0 {
				lines[i] = marker + line
			} else {
				lines[i] = strings.Repeat(" ", len([]rune(marker))) + line
			}
		}
		r.out.WriteString(indent.String(strings.Join(lines, "\n"), uint(pad)))
		r.out.WriteRune('\n')
	case "pre":
		r.out.WriteString(codeStyle.Render(text))
		r.out.WriteString("\n\n")
	case "blockquote":
		r.out.WriteString(indent.String(wordwrap.String(text, r.width-2), 2))
		r.out.WriteString("\n\n")
	default:
		r.out.WriteString(wordwrap.String(text, r.width))
		r.out.WriteString("\n\n")
	}
}
