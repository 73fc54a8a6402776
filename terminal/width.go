// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var widthCond = func() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.StrictEmojiNeutral = false
	return cond
}()

// runesWidth returns the display width of a rune sequence: 0 for combining
// marks, 1 for narrow and 2 for wide characters.
func runesWidth(runes []rune) (width int) {
	// quick pass for iso8859-1
	if len(runes) == 1 && runes[0] < 0x00fe {
		if runes[0] < 0x20 {
			return 0
		}
		return 1
	}

	for i := 0; i < len(runes); i++ {
		width += widthCond.RuneWidth(runes[i])
	}

	return width
}

// GraphemeWidth returns the number of terminal columns (0, 1 or 2) occupied
// by one grapheme cluster. A cluster wider than 2 (flag pairs and such) is
// clamped to 2: a cell either holds a narrow or a wide glyph.
func GraphemeWidth(grapheme string) int {
	w := runesWidth([]rune(grapheme))
	if w > 2 {
		w = 2
	}
	return w
}

// graphemeCount reports how many grapheme clusters s contains.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
