// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// SavedCursor is the DECSC snapshot: position, pen and origin mode. Each
// screen buffer keeps its own slot.
type SavedCursor struct {
	posX, posY int
	pen        Renditions
	originMode bool
	isSet      bool
}

// Grid is the in-memory screen: a primary and an optional alternate buffer
// of rows, the cursor, the current pen and the mode flags. All mutation goes
// through Apply; the grid itself performs no I/O and holds no parser state.
//
// Rows and columns are 0-based. The scroll region is [scrollTop,
// scrollBottom) with scrollBottom exclusive.
type Grid struct {
	nCols, nRows int

	primary   []Row
	alt       []Row
	altScreen bool

	// cursor column and row; lastCol marks the pending-wrap position after
	// printing in the last column
	posX, posY int
	lastCol    bool

	pen Renditions

	scrollTop    int
	scrollBottom int

	cursorVisible bool
	autoWrap      bool
	insertMode    bool
	originMode    bool

	savedPrimary SavedCursor
	savedAlt     SavedCursor

	title     string
	bellCount int
}

func NewGrid(nCols, nRows int) *Grid {
	if nCols < 1 {
		nCols = 1
	}
	if nRows < 1 {
		nRows = 1
	}

	g := &Grid{
		nCols:         nCols,
		nRows:         nRows,
		primary:       newRows(nCols, nRows, ColorDefault),
		scrollBottom:  nRows,
		cursorVisible: true,
		autoWrap:      true,
	}
	return g
}

func newRows(cols, rows int, bg Color) []Row {
	rs := make([]Row, rows)
	for i := range rs {
		rs[i] = *NewRow(cols, bg)
	}
	return rs
}

func (g *Grid) Width() int  { return g.nCols }
func (g *Grid) Height() int { return g.nRows }

// Cursor returns the cursor position as (row, col).
func (g *Grid) Cursor() (row, col int) { return g.posY, g.posX }

func (g *Grid) CursorVisible() bool { return g.cursorVisible }
func (g *Grid) IsAltScreen() bool   { return g.altScreen }
func (g *Grid) Title() string       { return g.title }

// BellCount reports how many BEL characters have been received.
func (g *Grid) BellCount() int { return g.bellCount }

// Pen returns the current graphics rendition.
func (g *Grid) Pen() Renditions { return g.pen }

// Cell returns a copy of the cell at (row, col) on the active screen; a
// blank default cell when out of range.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= g.nRows {
		return blankCell(ColorDefault)
	}
	if c := g.row(row).At(col); c != nil {
		return *c
	}
	return blankCell(ColorDefault)
}

// GetRow returns the row on the active screen; nil when out of range.
func (g *Grid) GetRow(row int) *Row {
	if row < 0 || row >= g.nRows {
		return nil
	}
	return g.row(row)
}

func (g *Grid) activeRows() []Row {
	if g.altScreen {
		return g.alt
	}
	return g.primary
}

func (g *Grid) row(i int) *Row {
	return &g.activeRows()[i]
}

// Apply carries out one decoded action. Unknown dynamic types are ignored.
func (g *Grid) Apply(a Action) {
	switch v := a.(type) {
	case Print:
		g.print(v.Grapheme)
	case MoveCursor:
		g.moveCursor(v)
	case EraseInLine:
		g.eraseInLine(v.Mode)
	case EraseInDisplay:
		g.eraseInDisplay(v.Mode)
	case SetGraphicsRendition:
		g.pen.ApplySGR(v.Params)
	case SetMode:
		g.setMode(v.Mode, true)
	case ResetMode:
		g.setMode(v.Mode, false)
	case ScrollRegion:
		g.setScrollRegion(v.Top, v.Bottom)
	case SaveCursor:
		g.saveCursor()
	case RestoreCursor:
		g.restoreCursor()
	case SwitchScreen:
		g.switchScreen(v.Alternate)
	case SetTitle:
		g.title = v.Title
	case Bell:
		g.bellCount++
	case LineFeed:
		g.lineFeed()
	case CarriageReturn:
		g.carriageReturn()
	case ReverseIndex:
		g.reverseIndex()
	case FullReset:
		g.fullReset()
	case Scroll:
		if v.Lines >= 0 {
			g.scrollUp(v.Lines)
		} else {
			g.scrollDown(-v.Lines)
		}
	case InsertChars:
		g.insertChars(v.N)
	case DeleteChars:
		g.deleteChars(v.N)
	case EraseChars:
		g.eraseChars(v.N)
	case InsertLines:
		g.insertLines(v.N)
	case DeleteLines:
		g.deleteLines(v.N)
	}
}

// ApplyAll carries out a batch of actions in order.
func (g *Grid) ApplyAll(acts []Action) {
	for _, a := range acts {
		g.Apply(a)
	}
}

// Resize grows or shrinks both screen buffers in place. Shrinking truncates
// on the right and at the bottom; growing pads with blanks. The scroll
// region resets to the full height and the cursor is clamped into range.
func (g *Grid) Resize(nCols, nRows int) {
	if nCols < 1 {
		nCols = 1
	}
	if nRows < 1 {
		nRows = 1
	}
	if nCols == g.nCols && nRows == g.nRows {
		return
	}

	g.primary = resizeRows(g.primary, nCols, nRows)
	if g.alt != nil {
		g.alt = resizeRows(g.alt, nCols, nRows)
	}

	g.nCols = nCols
	g.nRows = nRows
	g.scrollTop = 0
	g.scrollBottom = nRows
	g.lastCol = false

	g.posX = clamp(g.posX, 0, nCols-1)
	g.posY = clamp(g.posY, 0, nRows-1)
	clampSaved(&g.savedPrimary, nCols, nRows)
	clampSaved(&g.savedAlt, nCols, nRows)
}

func resizeRows(rows []Row, nCols, nRows int) []Row {
	for i := range rows {
		rows[i].resize(nCols, ColorDefault)
	}
	if nRows < len(rows) {
		return rows[:nRows]
	}
	for len(rows) < nRows {
		rows = append(rows, *NewRow(nCols, ColorDefault))
	}
	return rows
}

func clampSaved(s *SavedCursor, nCols, nRows int) {
	if !s.isSet {
		return
	}
	s.posX = clamp(s.posX, 0, nCols-1)
	s.posY = clamp(s.posY, 0, nRows-1)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	ng := *g

	ng.primary = make([]Row, len(g.primary))
	for i := range g.primary {
		ng.primary[i] = g.primary[i].clone()
	}
	if g.alt != nil {
		ng.alt = make([]Row, len(g.alt))
		for i := range g.alt {
			ng.alt[i] = g.alt[i].clone()
		}
	}
	return &ng
}

// Equal compares the visible state of two grids: dimensions, active screen
// contents, cursor and visibility.
func (g *Grid) Equal(other *Grid) bool {
	if g.nCols != other.nCols || g.nRows != other.nRows {
		return false
	}
	if g.posX != other.posX || g.posY != other.posY {
		return false
	}
	if g.cursorVisible != other.cursorVisible {
		return false
	}

	for i := 0; i < g.nRows; i++ {
		if !g.row(i).Equal(other.row(i)) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
