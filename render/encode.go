// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/r3bl-org/r3bl-open-core-sub007/terminal"
)

// Encoder turns paint operations into the shortest byte sequence for a
// terminal with the given capabilities. It tracks what the destination
// terminal already shows (cursor position, active pen) and emits escape
// sequences only for state that actually changes.
//
// Colors beyond the capability profile are degraded before emission, so the
// output never contains sequences the destination cannot interpret.
type Encoder struct {
	caps Capability

	pen      terminal.Renditions
	penKnown bool

	// destination cursor; row -1 means unknown
	row, col int
}

func NewEncoder(caps Capability) *Encoder {
	return &Encoder{caps: caps, row: -1, col: -1}
}

// AssumePen tells the encoder the pen the destination already has active,
// without emitting anything.
func (e *Encoder) AssumePen(pen terminal.Renditions) {
	e.pen = pen
	e.penKnown = true
}

// AssumeCursor tells the encoder where the destination cursor already is.
func (e *Encoder) AssumeCursor(row, col int) {
	e.row, e.col = row, col
}

// Pen returns the pen the encoder believes is active on the destination.
func (e *Encoder) Pen() (terminal.Renditions, bool) {
	return e.pen, e.penKnown
}

// Encode renders a batch of paint operations. State persists across calls:
// a second call continues from where the previous batch left the terminal.
func (e *Encoder) Encode(ops []PaintOp) []byte {
	var buf bytes.Buffer
	for _, op := range ops {
		switch v := op.(type) {
		case MoveTo:
			e.appendMove(&buf, v.Row, v.Col)
		case SetPen:
			e.appendPen(&buf, DegradePen(v.Pen, e.caps.Profile))
		case WriteRun:
			buf.WriteString(v.Text)
			if e.row >= 0 {
				e.col += v.Width
			}
		}
	}
	return buf.Bytes()
}

// appendMove emits a CUP unless the cursor is already there.
func (e *Encoder) appendMove(buf *bytes.Buffer, row, col int) {
	if e.row == row && e.col == col {
		return
	}
	if row == 0 && col == 0 {
		buf.WriteString("\x1b[H")
	} else {
		fmt.Fprintf(buf, "\x1b[%d;%dH", row+1, col+1)
	}
	e.row, e.col = row, col
}

// MoveCursor places the destination cursor, for final cursor positioning
// after the frame body.
func (e *Encoder) MoveCursor(buf *bytes.Buffer, row, col int) {
	e.appendMove(buf, row, col)
}

// ShowCursor emits DECTCEM set or reset.
func (e *Encoder) ShowCursor(buf *bytes.Buffer, visible bool) {
	if visible {
		buf.WriteString("\x1b[?25h")
	} else {
		buf.WriteString("\x1b[?25l")
	}
}

// SetTitle emits an OSC window title when the destination supports it.
func (e *Encoder) SetTitle(buf *bytes.Buffer, title string) {
	if !e.caps.HasTitle {
		return
	}
	buf.WriteString("\x1b]0;")
	buf.WriteString(title)
	buf.WriteString("\x07")
}

// the seven toggles, flattened for delta computation
type attrState struct {
	bold, faint, italic, underline, blink, inverse, strike bool
}

func attrsOf(p terminal.Renditions) attrState {
	var s attrState
	s.bold, _ = p.GetAttributes(terminal.Bold)
	s.faint, _ = p.GetAttributes(terminal.Faint)
	s.italic, _ = p.GetAttributes(terminal.Italic)
	s.underline, _ = p.GetAttributes(terminal.Underlined)
	s.blink, _ = p.GetAttributes(terminal.Blink)
	s.inverse, _ = p.GetAttributes(terminal.Inverse)
	s.strike, _ = p.GetAttributes(terminal.Strikethrough)
	return s
}

// appendPen emits the SGR delta from the tracked pen to the target pen.
// With no known baseline it resets first and rebuilds from scratch. The
// target must already be degraded to the capability profile.
func (e *Encoder) appendPen(buf *bytes.Buffer, to terminal.Renditions) {
	var defaultPen terminal.Renditions

	if e.penKnown && to == e.pen {
		return
	}

	if !e.penKnown {
		buf.WriteString("\x1b[0m")
		e.pen = defaultPen
		e.penKnown = true
	} else if to == defaultPen {
		buf.WriteString("\x1b[0m")
		e.pen = to
		return
	}

	from := e.pen
	f, t := attrsOf(from), attrsOf(to)
	var params []string

	// bold and faint share the single off code 22
	if (f.bold && !t.bold) || (f.faint && !t.faint) {
		params = append(params, "22")
		f.bold, f.faint = false, false
	}
	if t.bold && !f.bold {
		params = append(params, "1")
	}
	if t.faint && !f.faint {
		params = append(params, "2")
	}
	params = appendToggle(params, f.italic, t.italic, "3", "23")
	params = appendToggle(params, f.underline, t.underline, "4", "24")
	params = appendToggle(params, f.blink, t.blink, "5", "25")
	params = appendToggle(params, f.inverse, t.inverse, "7", "27")
	params = appendToggle(params, f.strike, t.strike, "9", "29")

	if from.Foreground() != to.Foreground() {
		params = append(params, colorParams(to.Foreground(), true)...)
	}
	if from.Background() != to.Background() {
		params = append(params, colorParams(to.Background(), false)...)
	}

	if len(params) > 0 {
		buf.WriteString("\x1b[")
		buf.WriteString(strings.Join(params, ";"))
		buf.WriteString("m")
	}
	e.pen = to
}

func appendToggle(params []string, from, to bool, on, off string) []string {
	if to && !from {
		return append(params, on)
	}
	if !to && from {
		return append(params, off)
	}
	return params
}

// colorParams returns the SGR parameters selecting color c on the
// foreground or background side.
func colorParams(c terminal.Color, fg bool) []string {
	lead, bright, base, dflt := "38", 90, 30, "39"
	if !fg {
		lead, bright, base, dflt = "48", 100, 40, "49"
	}

	switch {
	case !c.Valid():
		return []string{dflt}
	case c.IsRGB():
		r, g, b := c.RGB()
		return []string{lead, "2",
			strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
	default:
		idx := c.Index()
		switch {
		case idx < 8:
			return []string{strconv.Itoa(base + idx)}
		case idx < 16:
			return []string{strconv.Itoa(bright + idx - 8)}
		default:
			return []string{lead, "5", strconv.Itoa(idx)}
		}
	}
}
