// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"

	"github.com/r3bl-org/r3bl-open-core-sub007/terminal"
)

// Display drives one destination terminal. It remembers the last state the
// destination acknowledged and produces, per frame, the bytes that take the
// destination from that state to a new grid.
//
// Frames are idempotent against the acknowledged state: NewFrame with an
// unchanged grid produces no bytes. The acknowledged state only advances
// through Ack, so an unacknowledged frame can simply be computed again.
//
// Two invariants hold between frames: the destination pen is the default
// pen, and the destination cursor sits on the grid's cursor position.
type Display struct {
	caps Capability
	last *terminal.Grid
}

func NewDisplay(caps Capability) *Display {
	return &Display{caps: caps}
}

// Capability returns the destination capability set the display was built
// with.
func (d *Display) Capability() Capability {
	return d.caps
}

// NewFrame computes the byte sequence bringing the destination terminal to
// the state of next. With no acknowledged state yet, or after a dimension
// change, the frame clears the screen and repaints everything; otherwise it
// paints only the cells that differ.
func (d *Display) NewFrame(next *terminal.Grid) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(d.caps)

	var prev *terminal.Grid
	initialized := d.last != nil &&
		d.last.Width() == next.Width() && d.last.Height() == next.Height()

	if initialized {
		prev = d.last
		enc.AssumePen(terminal.Renditions{})
		row, col := prev.Cursor()
		enc.AssumeCursor(row, col)
	} else {
		// repaint from scratch on a cleared screen
		buf.WriteString("\x1b[0m\x1b[2J\x1b[H")
		enc.AssumePen(terminal.Renditions{})
		enc.AssumeCursor(0, 0)
		prev = terminal.NewGrid(next.Width(), next.Height())
	}

	ops, err := Diff(prev, next)
	if err != nil {
		return nil, err
	}
	buf.Write(enc.Encode(ops))

	// restore the between-frames pen invariant
	enc.appendPen(&buf, terminal.Renditions{})

	if next.Title() != "" && (!initialized || next.Title() != prev.Title()) {
		enc.SetTitle(&buf, next.Title())
	}

	row, col := next.Cursor()
	enc.MoveCursor(&buf, row, col)
	if !initialized || next.CursorVisible() != prev.CursorVisible() {
		enc.ShowCursor(&buf, next.CursorVisible())
	}

	return buf.Bytes(), nil
}

// Ack records that the destination has applied a frame built for next.
// The grid is deep-copied; the caller may keep mutating its own.
func (d *Display) Ack(next *terminal.Grid) {
	d.last = next.Clone()
}

// Reset forgets the acknowledged state; the next frame repaints fully.
func (d *Display) Reset() {
	d.last = nil
}
