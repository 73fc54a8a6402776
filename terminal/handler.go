// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// The action handlers. Sequence semantics follow
// https://invisible-island.net/xterm/ctlseqs/ctlseqs.html where xterm and
// the VT100/VT510 manuals disagree.

// print writes one grapheme cluster at the cursor with the current pen and
// advances the cursor by the cluster's width.
func (g *Grid) print(grapheme string) {
	w := GraphemeWidth(grapheme)

	if w == 0 {
		g.combine(grapheme)
		return
	}
	if w == 2 && g.nCols < 2 {
		w = 1
	}

	if g.lastCol {
		if g.autoWrap {
			g.carriageReturn()
			g.lineFeed()
		}
		g.lastCol = false
	}

	// a wide glyph that would straddle the right edge wraps early (or is
	// pinned when autowrap is off)
	if w == 2 && g.posX == g.nCols-1 {
		if g.autoWrap {
			g.carriageReturn()
			g.lineFeed()
		} else {
			g.posX = g.nCols - 2
		}
	}

	row := g.row(g.posY)

	if g.insertMode {
		for i := 0; i < w; i++ {
			row.InsertCell(g.posX, g.pen.bgColor)
		}
	}

	// blank the other half of any wide glyph we are about to clobber
	g.fixWideClobber(row, g.posX)
	if w == 2 {
		g.fixWideClobber(row, g.posX+1)
	}

	cell := row.At(g.posX)
	*cell = Cell{contents: grapheme, renditions: g.pen}
	if w == 2 {
		cell.dwidth = true
		cont := row.At(g.posX + 1)
		*cont = Cell{renditions: g.pen, dwidthCont: true}
	}

	if g.posX+w < g.nCols {
		g.posX += w
	} else {
		g.posX = g.nCols - 1
		g.lastCol = true
	}
}

// combine merges a zero-width cluster into the most recently printed cell.
func (g *Grid) combine(grapheme string) {
	col := g.posX
	if !g.lastCol {
		col--
	}

	row := g.row(g.posY)
	cell := row.At(col)
	if cell == nil {
		return
	}
	if cell.dwidthCont {
		col--
		cell = row.At(col)
		if cell == nil {
			return
		}
	}
	if cell.contents == "" {
		return
	}

	for _, r := range grapheme {
		cell.Append(r)
	}
}

// fixWideClobber blanks both halves of a wide glyph when the cell at col is
// one of them, so clobbering one half never leaves an orphan.
func (g *Grid) fixWideClobber(row *Row, col int) {
	cell := row.At(col)
	if cell == nil {
		return
	}
	if cell.dwidthCont {
		if head := row.At(col - 1); head != nil {
			head.Reset(g.pen.bgColor)
		}
		cell.Reset(g.pen.bgColor)
	} else if cell.dwidth {
		if cont := row.At(col + 1); cont != nil {
			cont.Reset(g.pen.bgColor)
		}
		cell.Reset(g.pen.bgColor)
	}
}

func (g *Grid) carriageReturn() {
	g.posX = 0
	g.lastCol = false
}

// lineFeed moves the cursor down, scrolling when it sits on the last row of
// the scroll region. Outside the region it stops at the screen edge.
func (g *Grid) lineFeed() {
	g.lastCol = false
	if g.posY == g.scrollBottom-1 {
		g.scrollUp(1)
	} else if g.posY < g.nRows-1 {
		g.posY++
	}
}

// reverseIndex moves the cursor up, scrolling down at the top of the scroll
// region.
func (g *Grid) reverseIndex() {
	g.lastCol = false
	if g.posY == g.scrollTop {
		g.scrollDown(1)
	} else if g.posY > 0 {
		g.posY--
	}
}

func (g *Grid) moveCursor(v MoveCursor) {
	g.lastCol = false

	// absolute rows are relative to the scroll region under origin mode
	top, bottom := 0, g.nRows
	if g.originMode {
		top, bottom = g.scrollTop, g.scrollBottom
	}

	switch v.Kind {
	case CursorUp:
		limit := 0
		if g.posY >= g.scrollTop {
			limit = g.scrollTop
		}
		g.posY = clamp(g.posY-v.Amount, limit, g.nRows-1)
	case CursorDown:
		limit := g.nRows - 1
		if g.posY < g.scrollBottom {
			limit = g.scrollBottom - 1
		}
		g.posY = clamp(g.posY+v.Amount, 0, limit)
	case CursorForward:
		g.posX = clamp(g.posX+v.Amount, 0, g.nCols-1)
	case CursorBack:
		g.posX = clamp(g.posX-v.Amount, 0, g.nCols-1)
	case CursorCol:
		g.posX = clamp(v.Col, 0, g.nCols-1)
	case CursorRow:
		g.posY = clamp(top+v.Row, top, bottom-1)
	case CursorTo:
		g.posY = clamp(top+v.Row, top, bottom-1)
		g.posX = clamp(v.Col, 0, g.nCols-1)
	case CursorTab:
		g.tab(v.Amount)
	}
}

// tab moves to the next (positive n) or previous (negative n) tab stop;
// stops are fixed every eight columns.
func (g *Grid) tab(n int) {
	for ; n > 0; n-- {
		next := (g.posX/8 + 1) * 8
		if next > g.nCols-1 {
			g.posX = g.nCols - 1
			return
		}
		g.posX = next
	}
	for ; n < 0; n++ {
		if g.posX == 0 {
			return
		}
		g.posX = (g.posX - 1) / 8 * 8
	}
}

// fillBlank blanks columns [from, to) of the row with the pen background,
// first blanking the outside half of any wide glyph cut by the range.
func (g *Grid) fillBlank(row *Row, from, to int) {
	from = clamp(from, 0, g.nCols)
	to = clamp(to, 0, g.nCols)
	if from >= to {
		return
	}

	if c := row.At(from); c != nil && c.dwidthCont {
		if head := row.At(from - 1); head != nil {
			head.Reset(g.pen.bgColor)
		}
	}
	if c := row.At(to - 1); c != nil && c.dwidth {
		if cont := row.At(to); cont != nil {
			cont.Reset(g.pen.bgColor)
		}
	}

	for i := from; i < to; i++ {
		row.At(i).Reset(g.pen.bgColor)
	}
}

func (g *Grid) eraseInLine(mode int) {
	row := g.row(g.posY)
	switch mode {
	case 0:
		g.fillBlank(row, g.posX, g.nCols)
	case 1:
		g.fillBlank(row, 0, g.posX+1)
	case 2:
		g.fillBlank(row, 0, g.nCols)
	}
}

func (g *Grid) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		g.fillBlank(g.row(g.posY), g.posX, g.nCols)
		for i := g.posY + 1; i < g.nRows; i++ {
			g.row(i).Reset(g.pen.bgColor)
		}
	case 1:
		for i := 0; i < g.posY; i++ {
			g.row(i).Reset(g.pen.bgColor)
		}
		g.fillBlank(g.row(g.posY), 0, g.posX+1)
	case 2, 3:
		for i := 0; i < g.nRows; i++ {
			g.row(i).Reset(g.pen.bgColor)
		}
	}
}

func (g *Grid) setMode(mode ModeID, set bool) {
	switch mode {
	case ModeCursorVisible:
		g.cursorVisible = set
	case ModeAutoWrap:
		g.autoWrap = set
		if !set {
			g.lastCol = false
		}
	case ModeInsert:
		g.insertMode = set
	case ModeOrigin:
		g.originMode = set
		// DECOM homes the cursor
		g.lastCol = false
		g.posX = 0
		if set {
			g.posY = g.scrollTop
		} else {
			g.posY = 0
		}
	}
}

// setScrollRegion applies DECSTBM. A bottom of zero (or past the screen)
// means the last row; a region smaller than two rows is ignored.
func (g *Grid) setScrollRegion(top, bottom int) {
	if bottom <= 0 || bottom > g.nRows {
		bottom = g.nRows
	}
	if top < 0 {
		top = 0
	}
	if bottom-top < 2 {
		return
	}

	g.scrollTop = top
	g.scrollBottom = bottom

	// DECSTBM homes the cursor
	g.lastCol = false
	g.posX = 0
	if g.originMode {
		g.posY = g.scrollTop
	} else {
		g.posY = 0
	}
}

func (g *Grid) saved() *SavedCursor {
	if g.altScreen {
		return &g.savedAlt
	}
	return &g.savedPrimary
}

func (g *Grid) saveCursor() {
	*g.saved() = SavedCursor{
		posX:       g.posX,
		posY:       g.posY,
		pen:        g.pen,
		originMode: g.originMode,
		isSet:      true,
	}
}

// restoreCursor applies DECRC; with no prior DECSC it homes the cursor and
// resets the pen, per the VT510 manual.
func (g *Grid) restoreCursor() {
	s := g.saved()
	if !s.isSet {
		g.posX, g.posY = 0, 0
		g.pen = Renditions{}
		g.originMode = false
	} else {
		g.posX = clamp(s.posX, 0, g.nCols-1)
		g.posY = clamp(s.posY, 0, g.nRows-1)
		g.pen = s.pen
		g.originMode = s.originMode
	}
	g.lastCol = false
}

// switchScreen flips between the primary and a fresh alternate buffer with
// the 1049 semantics: save cursor, switch, clear on entry; switch back,
// restore cursor on exit. The alternate buffer is discarded on exit.
func (g *Grid) switchScreen(alternate bool) {
	if alternate == g.altScreen {
		return
	}

	if alternate {
		g.saveCursor()
		g.alt = newRows(g.nCols, g.nRows, g.pen.bgColor)
		g.savedAlt = SavedCursor{}
		g.altScreen = true
		g.posX, g.posY = 0, 0
		g.lastCol = false
	} else {
		g.altScreen = false
		g.alt = nil
		g.restoreCursor()
	}
}

// scrollUp shifts the scroll region contents up n rows; vacated rows at the
// bottom become fresh blank rows. The cursor does not move.
func (g *Grid) scrollUp(n int) {
	height := g.scrollBottom - g.scrollTop
	if n <= 0 || height <= 0 {
		return
	}
	if n > height {
		n = height
	}

	rows := g.activeRows()
	copy(rows[g.scrollTop:g.scrollBottom-n], rows[g.scrollTop+n:g.scrollBottom])
	for i := g.scrollBottom - n; i < g.scrollBottom; i++ {
		rows[i] = *NewRow(g.nCols, g.pen.bgColor)
	}
}

// scrollDown shifts the scroll region contents down n rows; vacated rows at
// the top become fresh blank rows.
func (g *Grid) scrollDown(n int) {
	height := g.scrollBottom - g.scrollTop
	if n <= 0 || height <= 0 {
		return
	}
	if n > height {
		n = height
	}

	rows := g.activeRows()
	copy(rows[g.scrollTop+n:g.scrollBottom], rows[g.scrollTop:g.scrollBottom-n])
	for i := g.scrollTop; i < g.scrollTop+n; i++ {
		rows[i] = *NewRow(g.nCols, g.pen.bgColor)
	}
}

func (g *Grid) insertChars(n int) {
	if n < 1 {
		n = 1
	}
	row := g.row(g.posY)
	g.fixWideClobber(row, g.posX)
	for i := 0; i < n && g.posX+i < g.nCols; i++ {
		row.InsertCell(g.posX, g.pen.bgColor)
		// a head whose continuation was pushed off the row cannot stay
		if last := row.At(g.nCols - 1); last != nil && last.dwidth {
			last.Reset(g.pen.bgColor)
		}
	}
	g.lastCol = false
}

func (g *Grid) deleteChars(n int) {
	if n < 1 {
		n = 1
	}
	row := g.row(g.posY)
	// the shift brings a new cell under the cursor each round, so the wide
	// pair check has to run per deletion
	for i := 0; i < n && g.posX < g.nCols; i++ {
		g.fixWideClobber(row, g.posX)
		row.DeleteCell(g.posX, g.pen.bgColor)
	}
	g.lastCol = false
}

func (g *Grid) eraseChars(n int) {
	if n < 1 {
		n = 1
	}
	g.fillBlank(g.row(g.posY), g.posX, g.posX+n)
	g.lastCol = false
}

// insertLines shifts rows at and below the cursor down inside the scroll
// region; no effect outside the region. The cursor moves to column zero.
func (g *Grid) insertLines(n int) {
	if g.posY < g.scrollTop || g.posY >= g.scrollBottom {
		return
	}
	if n < 1 {
		n = 1
	}

	savedTop := g.scrollTop
	g.scrollTop = g.posY
	g.scrollDown(n)
	g.scrollTop = savedTop

	g.posX = 0
	g.lastCol = false
}

// deleteLines removes rows at the cursor inside the scroll region, pulling
// the rows below up and blanking the bottom of the region.
func (g *Grid) deleteLines(n int) {
	if g.posY < g.scrollTop || g.posY >= g.scrollBottom {
		return
	}
	if n < 1 {
		n = 1
	}

	savedTop := g.scrollTop
	g.scrollTop = g.posY
	g.scrollUp(n)
	g.scrollTop = savedTop

	g.posX = 0
	g.lastCol = false
}

// fullReset returns the grid to its power-on state (RIS), keeping only the
// dimensions, the title and the bell count.
func (g *Grid) fullReset() {
	title, bells := g.title, g.bellCount
	*g = *NewGrid(g.nCols, g.nRows)
	g.title = title
	g.bellCount = bells
}
