package tui

import "strings"

// layoutChrome counts the rows around the editor: hero, title field, hint,
// buttons, a boxed alert, status bar and key legend, plus section gaps.
const layoutChrome = 22

const minEditorHeight = 5

type pageLayout struct {
	windowWidth     int
	windowHeight    int
	editorWidth     int
	editorHeight    int
	titleWidth      int
	preferredWidth  int
	preferredHeight int
}

func newPageLayout(preferredWidth, preferredHeight int) pageLayout {
	l := pageLayout{preferredWidth: preferredWidth, preferredHeight: preferredHeight}
	l.Update(80, 24)
	return l
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height

	innerWidth := width - editorHorizontalPadding
	if l.preferredWidth > 0 && innerWidth > l.preferredWidth {
		innerWidth = l.preferredWidth
	}
	if innerWidth < minEditorWidth {
		innerWidth = minEditorWidth
	}
	l.editorWidth = innerWidth
	// textinput adds its prompt and cursor cell on top of Width.
	l.titleWidth = innerWidth - 4

	usable := height - layoutChrome
	if l.preferredHeight > 0 && usable > l.preferredHeight {
		usable = l.preferredHeight
	}
	if usable < minEditorHeight {
		usable = minEditorHeight
	}
	l.editorHeight = usable
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
