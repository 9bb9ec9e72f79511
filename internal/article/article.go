// Package article cleans model output into HTML the editor can hold verbatim.
package article

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/yuin/goldmark"
)

// ErrEmpty is returned when nothing is left after cleanup.
var ErrEmpty = errors.New("model returned empty article")

var (
	fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\n(.*?)\n?```$")
	tagRe   = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)
)

// Normalize trims raw, unwraps a surrounding code fence and converts a
// markdown reply to HTML. Replies that already contain HTML are kept as is
// apart from line-ending and tab normalization.
func Normalize(raw string) (string, error) {
	text := strings.TrimSpace(EditorSafe(raw))
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if text == "" {
		return "", ErrEmpty
	}
	if !LooksLikeHTML(text) {
		converted, err := markdownToHTML(text)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(EditorSafe(converted))
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// LooksLikeHTML reports whether text contains at least one element tag.
func LooksLikeHTML(text string) bool {
	return tagRe.MatchString(text)
}

// editorRunes applies the same rune rules as the textarea behind the editor:
// CR becomes LF, tabs become four spaces, other control runes and
// utf8.RuneError are dropped.
var editorRunes = runeutil.NewSanitizer()

// EditorSafe rewrites text exactly as the editor widget would on insertion,
// so a buffer round-trip returns the same string.
func EditorSafe(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return string(editorRunes.Sanitize([]rune(text)))
}

func markdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
