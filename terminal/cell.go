// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "strings"

// Cell is one screen column: a grapheme cluster (possibly multi-codepoint),
// the pen it was written with, and the double-width flags. The trailing
// column of a wide glyph is marked dwidthCont and carries no content of its
// own. Cell is comparable; equality is structural.
type Cell struct {
	contents   string
	renditions Renditions
	dwidth     bool // head of a two-column glyph
	dwidthCont bool // continuation column of a two-column glyph
}

// blankCell returns an empty cell painted with the given background.
func blankCell(bg Color) Cell {
	c := Cell{contents: " "}
	c.renditions.bgColor = bg
	return c
}

// GetContents returns the grapheme cluster held by the cell. Continuation
// cells return the empty string.
func (c Cell) GetContents() string { return c.contents }

// GetRenditions returns the pen the cell was written with.
func (c Cell) GetRenditions() Renditions { return c.renditions }

func (c *Cell) SetRenditions(rend Renditions) { c.renditions = rend }

// IsDoubleWidth reports whether this cell is the head of a wide glyph.
func (c Cell) IsDoubleWidth() bool { return c.dwidth }

// IsDoubleWidthCont reports whether this cell is the continuation column of
// a wide glyph.
func (c Cell) IsDoubleWidthCont() bool { return c.dwidthCont }

func (c *Cell) SetDoubleWidth(value bool)     { c.dwidth = value }
func (c *Cell) SetDoubleWidthCont(value bool) { c.dwidthCont = value }

// width returns the number of columns this cell accounts for when its text
// is written out: 2 for a wide head, 0 for a continuation, 1 otherwise.
func (c Cell) width() int {
	switch {
	case c.dwidth:
		return 2
	case c.dwidthCont:
		return 0
	default:
		return 1
	}
}

// Append merges an additional rune (a zero-width combining mark) into the
// cell's grapheme cluster.
func (c *Cell) Append(r rune) {
	var sb strings.Builder
	sb.WriteString(c.contents)
	sb.WriteRune(r)
	c.contents = sb.String()
}

// Reset makes the cell a blank with the specified background, dropping the
// double-width flags.
func (c *Cell) Reset(bg Color) {
	*c = blankCell(bg)
}
