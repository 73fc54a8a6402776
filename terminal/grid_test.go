// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func feedGrid(g *Grid, input string) {
	p := NewParser()
	g.ApplyAll(p.Consume([]byte(input)))
	g.ApplyAll(p.Flush())
}

func rowText(g *Grid, row int) string {
	var s string
	for col := 0; col < g.Width(); col++ {
		s += g.Cell(row, col).GetContents()
	}
	return s
}

func TestGridColoredText(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "\x1b[31mHi\x1b[0m")

	var red Renditions
	red.SetForegroundColor(1)

	if got := g.Cell(0, 0).GetContents(); got != "H" {
		t.Errorf("cell 0,0 expect %q, got %q\n", "H", got)
	}
	if got := g.Cell(0, 0).GetRenditions(); got != red {
		t.Errorf("cell 0,0 expect red pen, got %v\n", got)
	}
	if got := g.Cell(0, 1).GetContents(); got != "i" {
		t.Errorf("cell 0,1 expect %q, got %q\n", "i", got)
	}
	if got := g.Cell(0, 1).GetRenditions(); got != red {
		t.Errorf("cell 0,1 expect red pen, got %v\n", got)
	}

	if row, col := g.Cursor(); row != 0 || col != 2 {
		t.Errorf("cursor expect 0,2, got %d,%d\n", row, col)
	}
	if got := g.Pen(); got != (Renditions{}) {
		t.Errorf("pen expect default after reset, got %v\n", got)
	}
}

func TestGridWideChar(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "中")

	head := g.Cell(0, 0)
	cont := g.Cell(0, 1)
	if head.GetContents() != "中" || !head.IsDoubleWidth() {
		t.Errorf("expect wide head at 0,0, got %q dwidth=%t\n",
			head.GetContents(), head.IsDoubleWidth())
	}
	if !cont.IsDoubleWidthCont() || cont.GetContents() != "" {
		t.Errorf("expect continuation at 0,1, got %q cont=%t\n",
			cont.GetContents(), cont.IsDoubleWidthCont())
	}
	if _, col := g.Cursor(); col != 2 {
		t.Errorf("cursor expect col 2 after wide char, got %d\n", col)
	}
}

func TestGridWideCharOverwrite(t *testing.T) {
	tc := []struct {
		label  string
		input  string
		expect [2]string // cells 0 and 1
	}{
		{"overwrite continuation", "中\x1b[1;2HX", [2]string{" ", "X"}},
		{"overwrite head", "中\x1b[1;1HX", [2]string{"X", " "}},
	}

	for _, v := range tc {
		g := NewGrid(80, 24)
		feedGrid(g, v.input)
		for i, expect := range v.expect {
			if got := g.Cell(0, i).GetContents(); got != expect {
				t.Errorf("%s: cell 0,%d expect %q, got %q\n", v.label, i, expect, got)
			}
			if c := g.Cell(0, i); c.IsDoubleWidth() || c.IsDoubleWidthCont() {
				t.Errorf("%s: cell 0,%d expect no wide flags\n", v.label, i)
			}
		}
	}
}

func TestGridCombiningMark(t *testing.T) {
	g := NewGrid(80, 24)
	g.Apply(Print{Grapheme: "e"})
	g.Apply(Print{Grapheme: "́"})

	if got := g.Cell(0, 0).GetContents(); got != "é" {
		t.Errorf("expect combined cluster %q, got %q\n", "é", got)
	}
	if _, col := g.Cursor(); col != 1 {
		t.Errorf("combining mark must not advance cursor, got col %d\n", col)
	}
}

func TestGridAutowrap(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "\x1b[80Gab")

	if got := g.Cell(0, 79).GetContents(); got != "a" {
		t.Errorf("cell 0,79 expect %q, got %q\n", "a", got)
	}
	if got := g.Cell(1, 0).GetContents(); got != "b" {
		t.Errorf("cell 1,0 expect %q, got %q\n", "b", got)
	}
	if row, col := g.Cursor(); row != 1 || col != 1 {
		t.Errorf("cursor expect 1,1, got %d,%d\n", row, col)
	}
}

func TestGridAutowrapOff(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "\x1b[?7l\x1b[80Gabc")

	if got := g.Cell(0, 79).GetContents(); got != "c" {
		t.Errorf("cell 0,79 expect %q, got %q\n", "c", got)
	}
	if row, col := g.Cursor(); row != 0 || col != 79 {
		t.Errorf("cursor expect 0,79, got %d,%d\n", row, col)
	}
	if got := rowText(g, 1); got != blankRow(80) {
		t.Errorf("row 1 expect blank, got %q\n", got)
	}
}

func blankRow(width int) string {
	s := make([]byte, width)
	for i := range s {
		s[i] = ' '
	}
	return string(s)
}

func TestGridWideCharWrap(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "\x1b[80G中")

	// no room in the last column, the glyph wraps whole
	if got := g.Cell(0, 79).GetContents(); got != " " {
		t.Errorf("cell 0,79 expect blank, got %q\n", got)
	}
	if got := g.Cell(1, 0); got.GetContents() != "中" || !got.IsDoubleWidth() {
		t.Errorf("cell 1,0 expect wide 中, got %q\n", got.GetContents())
	}
}

func TestGridScrollRegion(t *testing.T) {
	g := NewGrid(10, 5)
	feedGrid(g, "\x1b[1;1H0\x1b[2;1HA\x1b[3;1HB\x1b[4;1HC\x1b[5;1H4")
	feedGrid(g, "\x1b[2;4r\x1b[4;1H\n")

	expect := []string{"0", "B", "C", " ", "4"}
	for row, e := range expect {
		if got := g.Cell(row, 0).GetContents(); got != e {
			t.Errorf("after scroll row %d expect %q, got %q\n", row, e, got)
		}
	}
}

func TestGridReverseIndexScroll(t *testing.T) {
	g := NewGrid(10, 5)
	feedGrid(g, "\x1b[2;1HA\x1b[3;1HB")
	feedGrid(g, "\x1b[2;4r\x1b[2;1H\x1bM")

	expect := []string{" ", " ", "A", "B", " "}
	for row, e := range expect {
		if got := g.Cell(row, 0).GetContents(); got != e {
			t.Errorf("after ri row %d expect %q, got %q\n", row, e, got)
		}
	}
}

func TestGridNoScrollOutsideRegion(t *testing.T) {
	g := NewGrid(10, 5)
	feedGrid(g, "\x1b[5;1HX")
	feedGrid(g, "\x1b[2;4r")
	g.posY = 4 // below the region
	g.Apply(LineFeed{})

	if got := g.Cell(4, 0).GetContents(); got != "X" {
		t.Errorf("row 4 expect untouched %q, got %q\n", "X", got)
	}
	if row, _ := g.Cursor(); row != 4 {
		t.Errorf("cursor expect to stay on row 4, got %d\n", row)
	}
}

func TestGridAltScreen(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "abc")
	feedGrid(g, "\x1b[?1049h")

	if !g.IsAltScreen() {
		t.Fatal("expect alternate screen active")
	}
	if got := g.Cell(0, 0).GetContents(); got != " " {
		t.Errorf("alt screen expect blank, got %q\n", got)
	}
	if row, col := g.Cursor(); row != 0 || col != 0 {
		t.Errorf("alt screen cursor expect 0,0, got %d,%d\n", row, col)
	}

	feedGrid(g, "xyz")
	feedGrid(g, "\x1b[?1049l")

	if g.IsAltScreen() {
		t.Fatal("expect primary screen active")
	}
	if got := rowText(g, 0)[:3]; got != "abc" {
		t.Errorf("primary content expect %q, got %q\n", "abc", got)
	}
	if row, col := g.Cursor(); row != 0 || col != 3 {
		t.Errorf("restored cursor expect 0,3, got %d,%d\n", row, col)
	}
}

func TestGridResizeClampsCursor(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "\x1b[1;76H")

	g.Resize(40, 24)

	if g.Width() != 40 || g.Height() != 24 {
		t.Fatalf("expect 40x24, got %dx%d\n", g.Width(), g.Height())
	}
	if row, col := g.Cursor(); row != 0 || col != 39 {
		t.Errorf("cursor expect 0,39, got %d,%d\n", row, col)
	}
	if c := g.GetRow(0).At(40); c != nil {
		t.Errorf("expect rows truncated to 40 columns\n")
	}
	if c := g.GetRow(0).At(39); c == nil {
		t.Errorf("expect column 39 addressable\n")
	}
}

func TestGridResizeGrow(t *testing.T) {
	g := NewGrid(10, 4)
	feedGrid(g, "hello")
	g.Resize(20, 6)

	if got := rowText(g, 0)[:5]; got != "hello" {
		t.Errorf("content expect preserved, got %q\n", got)
	}
	if got := g.Cell(5, 19).GetContents(); got != " " {
		t.Errorf("new cells expect blank, got %q\n", got)
	}
}

func TestGridEraseWithBackground(t *testing.T) {
	g := NewGrid(10, 4)
	feedGrid(g, "hello\x1b[41m\x1b[2K")

	var pen Renditions
	pen.SetBackgroundColor(1)
	for col := 0; col < 10; col++ {
		cell := g.Cell(0, col)
		if cell.GetContents() != " " {
			t.Errorf("col %d expect blank, got %q\n", col, cell.GetContents())
		}
		if got := cell.GetRenditions().Background(); got != pen.Background() {
			t.Errorf("col %d expect red background, got %v\n", col, got)
		}
	}
}

func TestGridEraseInLine(t *testing.T) {
	tc := []struct {
		label  string
		input  string
		expect string
	}{
		{"el to right", "abcde\x1b[1;3H\x1b[K", "ab        "},
		{"el to left", "abcde\x1b[1;3H\x1b[1K", "   de     "},
		{"el whole", "abcde\x1b[2K", "          "},
	}

	for _, v := range tc {
		g := NewGrid(10, 2)
		feedGrid(g, v.input)
		if got := rowText(g, 0); got != v.expect {
			t.Errorf("%s: expect %q, got %q\n", v.label, v.expect, got)
		}
	}
}

func TestGridEraseInDisplay(t *testing.T) {
	g := NewGrid(5, 3)
	feedGrid(g, "aaaaa\r\nbbbbb\r\nccccc")
	feedGrid(g, "\x1b[2;3H\x1b[J")

	if got := rowText(g, 0); got != "aaaaa" {
		t.Errorf("row 0 expect untouched, got %q\n", got)
	}
	if got := rowText(g, 1); got != "bb   " {
		t.Errorf("row 1 expect %q, got %q\n", "bb   ", got)
	}
	if got := rowText(g, 2); got != "     " {
		t.Errorf("row 2 expect blank, got %q\n", got)
	}
}

func TestGridInsertDeleteChars(t *testing.T) {
	tc := []struct {
		label  string
		input  string
		expect string
	}{
		{"ich shifts right", "abcd\x1b[1;1H\x1b[2@", "  abcd    "},
		{"dch shifts left", "abcd\x1b[1;1H\x1b[2P", "cd        "},
		{"ech blanks in place", "abcd\x1b[1;2H\x1b[2X", "a  d      "},
		{"insert mode", "abc\x1b[1;1H\x1b[4hX", "Xabc      "},
	}

	for _, v := range tc {
		g := NewGrid(10, 2)
		feedGrid(g, v.input)
		if got := rowText(g, 0); got != v.expect {
			t.Errorf("%s: expect %q, got %q\n", v.label, v.expect, got)
		}
	}
}

func TestGridInsertDeleteLines(t *testing.T) {
	g := NewGrid(5, 4)
	feedGrid(g, "a\r\nb\r\nc\r\nd")

	feedGrid(g, "\x1b[2;1H\x1b[L")
	expect := []string{"a", " ", "b", "c"}
	for row, e := range expect {
		if got := g.Cell(row, 0).GetContents(); got != e {
			t.Errorf("after il row %d expect %q, got %q\n", row, e, got)
		}
	}

	feedGrid(g, "\x1b[2;1H\x1b[M")
	expect = []string{"a", "b", "c", " "}
	for row, e := range expect {
		if got := g.Cell(row, 0).GetContents(); got != e {
			t.Errorf("after dl row %d expect %q, got %q\n", row, e, got)
		}
	}
}

func TestGridOriginMode(t *testing.T) {
	g := NewGrid(10, 10)
	feedGrid(g, "\x1b[3;8r\x1b[?6h")

	if row, col := g.Cursor(); row != 2 || col != 0 {
		t.Errorf("origin home expect 2,0, got %d,%d\n", row, col)
	}

	feedGrid(g, "\x1b[1;1H")
	if row, _ := g.Cursor(); row != 2 {
		t.Errorf("cup 1,1 under origin mode expect row 2, got %d\n", row)
	}

	feedGrid(g, "\x1b[100;1H")
	if row, _ := g.Cursor(); row != 7 {
		t.Errorf("cup past region expect clamp to row 7, got %d\n", row)
	}
}

func TestGridSaveRestoreCursor(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "\x1b[31m\x1b[2;3H\x1b7\x1b[0m\x1b[H\x1b8")

	if row, col := g.Cursor(); row != 1 || col != 2 {
		t.Errorf("restored cursor expect 1,2, got %d,%d\n", row, col)
	}
	var red Renditions
	red.SetForegroundColor(1)
	if got := g.Pen(); got != red {
		t.Errorf("restored pen expect red, got %v\n", got)
	}
}

func TestGridTitleAndBell(t *testing.T) {
	g := NewGrid(80, 24)
	feedGrid(g, "\x1b]2;my title\x07\x07\x07")

	if got := g.Title(); got != "my title" {
		t.Errorf("title expect %q, got %q\n", "my title", got)
	}
	if got := g.BellCount(); got != 2 {
		t.Errorf("bell count expect 2, got %d\n", got)
	}
}

func TestGridFullReset(t *testing.T) {
	g := NewGrid(10, 4)
	feedGrid(g, "abc\x1b[41m\x1b[2;4r\x1b[?7l\x1bc")

	if got := rowText(g, 0); got != blankRow(10) {
		t.Errorf("after ris expect blank screen, got %q\n", got)
	}
	if row, col := g.Cursor(); row != 0 || col != 0 {
		t.Errorf("after ris cursor expect 0,0, got %d,%d\n", row, col)
	}
	if got := g.Pen(); got != (Renditions{}) {
		t.Errorf("after ris pen expect default, got %v\n", got)
	}
	if g.scrollTop != 0 || g.scrollBottom != 4 {
		t.Errorf("after ris scroll region expect full, got %d,%d\n",
			g.scrollTop, g.scrollBottom)
	}
	if !g.autoWrap {
		t.Errorf("after ris expect autowrap on\n")
	}
}

func TestGridTabStops(t *testing.T) {
	g := NewGrid(20, 2)
	feedGrid(g, "\tX\tY")

	if got := g.Cell(0, 8).GetContents(); got != "X" {
		t.Errorf("cell 0,8 expect %q, got %q\n", "X", got)
	}
	if got := g.Cell(0, 16).GetContents(); got != "Y" {
		t.Errorf("cell 0,16 expect %q, got %q\n", "Y", got)
	}

	feedGrid(g, "\x1b[2Z")
	if _, col := g.Cursor(); col != 8 {
		t.Errorf("cbt 2 expect col 8, got %d\n", col)
	}
}

func TestGridCursorVisibility(t *testing.T) {
	g := NewGrid(80, 24)
	if !g.CursorVisible() {
		t.Fatal("cursor expect visible by default")
	}
	feedGrid(g, "\x1b[?25l")
	if g.CursorVisible() {
		t.Errorf("cursor expect hidden after DECTCEM reset\n")
	}
	feedGrid(g, "\x1b[?25h")
	if !g.CursorVisible() {
		t.Errorf("cursor expect visible after DECTCEM set\n")
	}
}

func TestGridClone(t *testing.T) {
	g := NewGrid(10, 4)
	feedGrid(g, "hello")

	ng := g.Clone()
	if !g.Equal(ng) {
		t.Fatal("clone expect equal to original")
	}

	feedGrid(ng, "X")
	if g.Equal(ng) {
		t.Errorf("mutating the clone must not touch the original\n")
	}
	if got := g.Cell(0, 5).GetContents(); got != " " {
		t.Errorf("original cell 0,5 expect blank, got %q\n", got)
	}
}

func TestGridDeleteCharsAcrossWideChar(t *testing.T) {
	g := NewGrid(10, 3)
	// deleting the cells ahead of a wide glyph one at a time shifts its
	// head under the cursor; the pair must go as a unit, and the erase
	// that follows must find a well-formed row
	feedGrid(g, "A中x\x1b[1;1H\x1b[2P\x1b[1K")

	if got := rowText(g, 0); got != " x"+blankRow(8) {
		t.Errorf("row 0 expect %q, got %q\n", " x"+blankRow(8), got)
	}
	for col := 0; col < g.Width(); col++ {
		if c := g.Cell(0, col); c.IsDoubleWidth() || c.IsDoubleWidthCont() {
			t.Errorf("cell 0,%d expect no wide flags, got dwidth=%t cont=%t\n",
				col, c.IsDoubleWidth(), c.IsDoubleWidthCont())
		}
	}
}

func TestGridDeleteCharsOnContinuation(t *testing.T) {
	g := NewGrid(10, 2)
	feedGrid(g, "中x\x1b[1;2H\x1b[P")

	if got := rowText(g, 0); got != " x"+blankRow(8) {
		t.Errorf("row 0 expect %q, got %q\n", " x"+blankRow(8), got)
	}
}

func TestGridInsertCharsWidePairAtRowEnd(t *testing.T) {
	g := NewGrid(4, 2)
	// the insert pushes the continuation off the row; the head cannot
	// stay behind alone in the last column
	feedGrid(g, "ab中\x1b[1;1H\x1b[@")

	if got := rowText(g, 0); got != " ab " {
		t.Errorf("row 0 expect %q, got %q\n", " ab ", got)
	}
	last := g.Cell(0, 3)
	if last.IsDoubleWidth() || last.IsDoubleWidthCont() {
		t.Errorf("cell 0,3 expect no wide flags, got dwidth=%t cont=%t\n",
			last.IsDoubleWidth(), last.IsDoubleWidthCont())
	}
}

func TestGridInsertCharsOnContinuation(t *testing.T) {
	g := NewGrid(10, 2)
	feedGrid(g, "中x\x1b[1;2H\x1b[@")

	// the pair is blanked as a unit before the blank is inserted
	if got := rowText(g, 0); got != "   x"+blankRow(6) {
		t.Errorf("row 0 expect %q, got %q\n", "   x"+blankRow(6), got)
	}
	for col := 0; col < g.Width(); col++ {
		if c := g.Cell(0, col); c.IsDoubleWidth() || c.IsDoubleWidthCont() {
			t.Errorf("cell 0,%d expect no wide flags\n", col)
		}
	}
}
