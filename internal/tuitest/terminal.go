package tuitest

import (
	"bytes"
	"io"
)

// terminalQueries maps the probes bubbletea and termenv send at startup to
// the replies a dark xterm would give. Without replies they block until
// their own timeout.
var terminalQueries = []struct {
	query, reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderWindow = 256
	responderTail   = 64
)

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, responderWindow)}
}

// Process answers any complete query in chunk, including queries split
// across reads.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	if len(tr.buf) > responderWindow {
		tr.buf = tr.buf[len(tr.buf)-responderTail:]
	}
}

func (tr *terminalResponder) answerOne() bool {
	for _, q := range terminalQueries {
		idx := bytes.Index(tr.buf, q.query)
		if idx < 0 {
			continue
		}
		tr.buf = tr.buf[idx+len(q.query):]
		_, _ = tr.w.Write(q.reply)
		return true
	}
	return false
}
