// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "strings"

// Row is a fixed-length ordered sequence of cells; its length equals the
// grid's column count at all times.
type Row struct {
	cells []Cell
}

func NewRow(width int, bg Color) *Row {
	r := Row{}
	r.cells = make([]Cell, width)
	for i := range r.cells {
		r.cells[i] = blankCell(bg)
	}
	return &r
}

// At returns the cell at the specified column, nil when out of range.
func (r *Row) At(col int) *Cell {
	if col < 0 || col > len(r.cells)-1 {
		return nil
	}

	return &(r.cells[col])
}

// InsertCell shifts the cells at and after col one column to the right,
// dropping the last cell, and puts a blank at col.
func (r *Row) InsertCell(col int, bg Color) bool {
	if col < 0 || col > len(r.cells)-1 {
		return false
	}

	copy(r.cells[col+1:], r.cells[col:])
	r.cells[col] = blankCell(bg)
	return true
}

// DeleteCell removes the cell at col, shifting the rest left and appending a
// blank at the end of the row.
func (r *Row) DeleteCell(col int, bg Color) bool {
	if col < 0 || col > len(r.cells)-1 {
		return false
	}

	copy(r.cells[col:], r.cells[col+1:])
	r.cells[len(r.cells)-1] = blankCell(bg)
	return true
}

func (r *Row) Reset(bg Color) {
	for i := range r.cells {
		r.cells[i].Reset(bg)
	}
}

// resize pads the row with blanks or truncates it so its length becomes
// width. A wide glyph whose continuation column is cut off is blanked.
func (r *Row) resize(width int, bg Color) {
	if width < len(r.cells) {
		r.cells = r.cells[:width]
		if width > 0 && r.cells[width-1].dwidth {
			r.cells[width-1] = blankCell(bg)
		}
		return
	}

	for len(r.cells) < width {
		r.cells = append(r.cells, blankCell(bg))
	}
}

func (r *Row) clone() Row {
	cells := make([]Cell, len(r.cells))
	copy(cells, r.cells)
	return Row{cells: cells}
}

func (r Row) Equal(other *Row) bool {
	if len(r.cells) != len(other.cells) {
		return false
	}

	for i := range r.cells {
		if r.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	var builder strings.Builder

	builder.WriteString("Row{")
	for _, v := range r.cells {
		builder.WriteString(v.contents)
	}
	builder.WriteString("}")

	return builder.String()
}
