// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Emulator couples a Parser and a Grid: bytes in, screen state out. It is
// the convenience layer for callers that do not need to observe the action
// stream; HandleStream still returns it for those that do.
//
// An Emulator is not safe for concurrent use.
type Emulator struct {
	parser *Parser
	grid   *Grid
}

func NewEmulator(nCols, nRows int) *Emulator {
	return &Emulator{
		parser: NewParser(),
		grid:   NewGrid(nCols, nRows),
	}
}

// HandleStream decodes a chunk of terminal output and applies the resulting
// actions to the grid, returning them in order. Chunk boundaries are
// arbitrary; incomplete sequences carry over to the next call.
func (e *Emulator) HandleStream(chunk []byte) []Action {
	acts := e.parser.Consume(chunk)
	e.grid.ApplyAll(acts)
	return acts
}

// Flush applies the pending grapheme cluster at end of stream.
func (e *Emulator) Flush() []Action {
	acts := e.parser.Flush()
	e.grid.ApplyAll(acts)
	return acts
}

// Grid exposes the screen state. Callers must treat it as read-only while
// continuing to feed HandleStream.
func (e *Emulator) Grid() *Grid {
	return e.grid
}

// Resize changes the screen dimensions in place; parser state is unaffected.
func (e *Emulator) Resize(nCols, nRows int) {
	e.grid.Resize(nCols, nRows)
}
