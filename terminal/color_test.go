// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func TestColorClassification(t *testing.T) {
	if ColorDefault.Valid() {
		t.Errorf("default color expect invalid\n")
	}
	if !ColorRed.Valid() || ColorRed.IsRGB() {
		t.Errorf("named color expect valid palette color\n")
	}
	if got := ColorRed.Index(); got != 9 {
		t.Errorf("ColorRed index expect 9, got %d\n", got)
	}

	c := NewRGBColor(10, 20, 30)
	if !c.IsRGB() {
		t.Errorf("rgb color expect IsRGB\n")
	}
	if r, g, b := c.RGB(); r != 10 || g != 20 || b != 30 {
		t.Errorf("rgb roundtrip expect 10,20,30, got %d,%d,%d\n", r, g, b)
	}
}

func TestPaletteColorRange(t *testing.T) {
	if got := PaletteColor(-1); got != ColorDefault {
		t.Errorf("negative index expect default, got %v\n", got)
	}
	if got := PaletteColor(256); got != ColorDefault {
		t.Errorf("index 256 expect default, got %v\n", got)
	}
	if got := PaletteColor(7); got != ColorSilver {
		t.Errorf("index 7 expect ColorSilver, got %v\n", got)
	}
}

func TestPaletteRGBValues(t *testing.T) {
	tc := []struct {
		label   string
		index   int
		r, g, b int32
	}{
		{"black", 0, 0, 0, 0},
		{"maroon", 1, 0x80, 0, 0},
		{"white", 15, 0xff, 0xff, 0xff},
		{"cube red", 196, 0xff, 0, 0},
		{"cube middle", 103, 0x87, 0x87, 0xaf},
		{"grayscale start", 232, 8, 8, 8},
		{"grayscale end", 255, 238, 238, 238},
	}

	for _, v := range tc {
		r, g, b := PaletteColor(v.index).RGB()
		if r != v.r || g != v.g || b != v.b {
			t.Errorf("%s: palette %d expect %d,%d,%d got %d,%d,%d\n",
				v.label, v.index, v.r, v.g, v.b, r, g, b)
		}
	}
}
