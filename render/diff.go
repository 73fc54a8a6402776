// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/r3bl-org/r3bl-open-core-sub007/terminal"
)

// ErrDimensionMismatch is returned by Diff when the two grids do not share
// the same dimensions; dimension changes are handled by a full repaint, not
// a diff.
var ErrDimensionMismatch = errors.New("render: grid dimensions differ")

// PaintOp is one terminal-independent painting instruction. The differ
// produces them; the encoder turns them into bytes for a concrete terminal.
type PaintOp interface {
	String() string
}

// MoveTo places the output cursor at an absolute (row, col), 0-based.
type MoveTo struct {
	Row, Col int
}

// SetPen switches the active graphics rendition for subsequent writes.
type SetPen struct {
	Pen terminal.Renditions
}

// WriteRun writes a run of text at the output cursor, advancing it by
// Width columns. The text never contains control characters.
type WriteRun struct {
	Text  string
	Width int
}

func (op MoveTo) String() string { return fmt.Sprintf("moveto(%d,%d)", op.Row, op.Col) }
func (op SetPen) String() string { return "setpen" }
func (op WriteRun) String() string {
	return fmt.Sprintf("write(%q,%d)", op.Text, op.Width)
}

func cellWidth(c terminal.Cell) int {
	switch {
	case c.IsDoubleWidth():
		return 2
	case c.IsDoubleWidthCont():
		return 0
	default:
		return 1
	}
}

// Diff computes the minimal paint operations that transform the prev screen
// into the next one. Identical grids produce no operations. The result is
// ordered row-major; cursor placement and visibility are the caller's
// concern (see Display).
//
// A changed run that starts or ends on half of a wide glyph is widened to
// cover the whole glyph, so a wide character is always repainted as a unit.
func Diff(prev, next *terminal.Grid) ([]PaintOp, error) {
	if prev.Width() != next.Width() || prev.Height() != next.Height() {
		return nil, ErrDimensionMismatch
	}

	var ops []PaintOp
	cols, rows := next.Width(), next.Height()

	// where the destination cursor lands after the ops so far; row -1
	// means unknown. The pen starts at the default: every frame begins
	// and ends with the default pen active (Display maintains that
	// invariant), so unstyled runs need no SetPen at all.
	outRow, outCol := -1, -1
	var lastPen terminal.Renditions

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; {
			if prev.Cell(r, c) == next.Cell(r, c) {
				c++
				continue
			}

			// widen back over a continuation so the run starts on the head
			start := c
			if next.Cell(r, start).IsDoubleWidthCont() && start > 0 {
				start--
			}

			end := c + 1
			for end < cols && prev.Cell(r, end) != next.Cell(r, end) {
				end++
			}
			// a wide head at the end of the run drags its continuation in
			if end < cols && next.Cell(r, end).IsDoubleWidthCont() {
				end++
			}

			// split the run into segments of uniform pen
			for segStart := start; segStart < end; {
				pen := next.Cell(r, segStart).GetRenditions()
				var text strings.Builder
				width := 0

				segEnd := segStart
				for segEnd < end {
					cell := next.Cell(r, segEnd)
					if cell.IsDoubleWidthCont() {
						segEnd++
						continue
					}
					if cell.GetRenditions() != pen {
						break
					}
					text.WriteString(cell.GetContents())
					width += cellWidth(cell)
					segEnd++
				}

				if outRow != r || outCol != segStart {
					ops = append(ops, MoveTo{Row: r, Col: segStart})
				}
				if lastPen != pen {
					ops = append(ops, SetPen{Pen: pen})
					lastPen = pen
				}
				ops = append(ops, WriteRun{Text: text.String(), Width: width})

				outRow, outCol = r, segStart+width
				segStart = segEnd
			}

			c = end
		}
	}

	return ops, nil
}
