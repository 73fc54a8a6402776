// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is one decoded terminal instruction. The Parser turns a byte
// stream into an ordered Action sequence; Grid.Apply carries each one out.
// String returns the compact form recorded in the conformance corpus
// (terminal/testdata); changing any of these forms is a corpus change.
//
// Coordinates inside actions are 0-based: the decoder translates the 1-based
// CSI parameters before emitting.
type Action interface {
	String() string
}

// MoveKind selects the cursor motion performed by a MoveCursor action.
type MoveKind int

const (
	CursorUp MoveKind = iota
	CursorDown
	CursorForward
	CursorBack
	CursorCol // absolute column (CHA/HPA)
	CursorRow // absolute row (VPA)
	CursorTo  // absolute row and column (CUP/HVP)
	CursorTab // forward (positive) or backward tab stops
)

// ModeID names the mode flags reachable through SM/RM and the DEC private
// set/reset pairs this core understands.
type ModeID int

const (
	ModeCursorVisible ModeID = iota // DECTCEM, ?25
	ModeAutoWrap                    // DECAWM,  ?7
	ModeOrigin                      // DECOM,   ?6
	ModeInsert                      // IRM,     4
)

func (m ModeID) String() string {
	switch m {
	case ModeCursorVisible:
		return "dectcem"
	case ModeAutoWrap:
		return "decawm"
	case ModeOrigin:
		return "decom"
	case ModeInsert:
		return "irm"
	}
	return "unknown"
}

// Print writes one grapheme cluster at the cursor with the current pen.
type Print struct {
	Grapheme string
}

// MoveCursor moves the cursor. Amount applies to the relative kinds and
// CursorTab (negative = backward); Row/Col apply to the absolute kinds.
type MoveCursor struct {
	Kind   MoveKind
	Amount int
	Row    int
	Col    int
}

// EraseInLine clears part of the cursor row: 0 = to right, 1 = to left,
// 2 = whole line.
type EraseInLine struct {
	Mode int
}

// EraseInDisplay clears part of the screen: 0 = below, 1 = above, 2 = all.
type EraseInDisplay struct {
	Mode int
}

// SetGraphicsRendition carries the raw SGR parameter list; interpretation
// (including the 38/48 extended color forms) happens in Renditions.ApplySGR.
type SetGraphicsRendition struct {
	Params []int
}

type SetMode struct {
	Mode ModeID
}

type ResetMode struct {
	Mode ModeID
}

// ScrollRegion sets the vertical scroll region (DECSTBM). Top is 0-based
// inclusive; Bottom is 0-based exclusive, with 0 meaning "to the last row".
type ScrollRegion struct {
	Top    int
	Bottom int
}

type SaveCursor struct{}

type RestoreCursor struct{}

// SwitchScreen selects the alternate or the primary screen buffer.
type SwitchScreen struct {
	Alternate bool
}

type SetTitle struct {
	Title string
}

type Bell struct{}

type LineFeed struct{}

type CarriageReturn struct{}

// ReverseIndex moves the cursor up one row, scrolling down at the top of
// the scroll region (ESC M).
type ReverseIndex struct{}

// FullReset returns the grid to its power-on state (RIS).
type FullReset struct{}

// Scroll shifts the scroll region: positive Lines scroll the text up (SU),
// negative scroll it down (SD).
type Scroll struct {
	Lines int
}

type InsertChars struct{ N int }
type DeleteChars struct{ N int }
type EraseChars struct{ N int }
type InsertLines struct{ N int }
type DeleteLines struct{ N int }

func (a Print) String() string { return fmt.Sprintf("print(%s)", a.Grapheme) }

func (a MoveCursor) String() string {
	switch a.Kind {
	case CursorUp:
		return fmt.Sprintf("cuu(%d)", a.Amount)
	case CursorDown:
		return fmt.Sprintf("cud(%d)", a.Amount)
	case CursorForward:
		return fmt.Sprintf("cuf(%d)", a.Amount)
	case CursorBack:
		return fmt.Sprintf("cub(%d)", a.Amount)
	case CursorCol:
		return fmt.Sprintf("cha(%d)", a.Col)
	case CursorRow:
		return fmt.Sprintf("vpa(%d)", a.Row)
	case CursorTo:
		return fmt.Sprintf("cup(%d,%d)", a.Row, a.Col)
	case CursorTab:
		if a.Amount < 0 {
			return fmt.Sprintf("cbt(%d)", -a.Amount)
		}
		return fmt.Sprintf("cht(%d)", a.Amount)
	}
	return "move(?)"
}

func (a EraseInLine) String() string    { return fmt.Sprintf("el(%d)", a.Mode) }
func (a EraseInDisplay) String() string { return fmt.Sprintf("ed(%d)", a.Mode) }

func (a SetGraphicsRendition) String() string {
	ps := make([]string, len(a.Params))
	for i, p := range a.Params {
		ps[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("sgr(%s)", strings.Join(ps, ";"))
}

func (a SetMode) String() string      { return fmt.Sprintf("sm(%s)", a.Mode) }
func (a ResetMode) String() string    { return fmt.Sprintf("rm(%s)", a.Mode) }
func (a ScrollRegion) String() string { return fmt.Sprintf("stbm(%d,%d)", a.Top, a.Bottom) }
func (a SaveCursor) String() string   { return "sc" }
func (a RestoreCursor) String() string { return "rc" }

func (a SwitchScreen) String() string {
	if a.Alternate {
		return "altscreen(1)"
	}
	return "altscreen(0)"
}

func (a SetTitle) String() string { return fmt.Sprintf("title(%s)", a.Title) }

func (a Bell) String() string           { return "bel" }
func (a LineFeed) String() string       { return "lf" }
func (a CarriageReturn) String() string { return "cr" }
func (a ReverseIndex) String() string   { return "ri" }
func (a FullReset) String() string      { return "ris" }

func (a Scroll) String() string {
	if a.Lines < 0 {
		return fmt.Sprintf("sd(%d)", -a.Lines)
	}
	return fmt.Sprintf("su(%d)", a.Lines)
}

func (a InsertChars) String() string { return fmt.Sprintf("ich(%d)", a.N) }
func (a DeleteChars) String() string { return fmt.Sprintf("dch(%d)", a.N) }
func (a EraseChars) String() string  { return fmt.Sprintf("ech(%d)", a.N) }
func (a InsertLines) String() string { return fmt.Sprintf("il(%d)", a.N) }
func (a DeleteLines) String() string { return fmt.Sprintf("dl(%d)", a.N) }
