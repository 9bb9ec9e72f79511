package editor

import (
	"sort"
	"strings"
)

// Action is a toolbar button.
type Action int

const (
	ActionBold Action = iota
	ActionItalic
	ActionBulletList
	ActionNumberedList
)

type snippet struct {
	label string
	open  string
	close string
}

var snippets = map[Action]snippet{
	ActionBold:         {label: "strong", open: "<strong>", close: "</strong>"},
	ActionItalic:       {label: "em", open: "<em>", close: "</em>"},
	ActionBulletList:   {label: "ul", open: "<ul>\n<li>", close: "</li>\n</ul>"},
	ActionNumberedList: {label: "ol", open: "<ol>\n<li>", close: "</li>\n</ol>"},
}

// Apply inserts the opening markup of action at the cursor, or its closing
// markup when the action is already open. It is a no-op while locked or
// previewing.
func (m *Model) Apply(action Action) bool {
	s, ok := snippets[action]
	if !ok || m.locked || m.mode != ModeSource {
		return false
	}
	if m.open[action] {
		m.area.InsertString(s.close)
		delete(m.open, action)
		return true
	}
	m.area.InsertString(s.open)
	m.open[action] = true
	return true
}

// OpenTags lists the toolbar tags awaiting their closing markup.
func (m *Model) OpenTags() string {
	if len(m.open) == 0 {
		return ""
	}
	labels := make([]string, 0, len(m.open))
	for action := range m.open {
		labels = append(labels, "<"+snippets[action].label+">")
	}
	sort.Strings(labels)
	return strings.Join(labels, " ")
}
