// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Color represents a terminal color. The low numeric values are the same as
// used by ECMA-48, and beyond that XTerm. A 24-bit RGB value may be used by
// adding in the ColorIsRGB flag.
//
// The scheme follows tcell's color encoding: a 64-bit integer where the
// validity and RGB-ness live in high bits, so the zero value can be treated
// as "default color, unchanged from whatever the terminal uses".
//
// https://github.com/gdamore/tcell/blob/master/color.go
// https://www.ditig.com/256-colors-cheat-sheet
type Color uint64

const (
	// ColorDefault leaves the color unchanged from the terminal default.
	// It is the zero value.
	ColorDefault Color = 0

	// ColorValid indicates the color value is actually initialized,
	// permitting the zero value to be treated as the default.
	ColorValid Color = 1 << 32

	// ColorIsRGB indicates that the low 3 bytes are an RGB value rather
	// than a palette index.
	ColorIsRGB Color = 1 << 33
)

// The ANSI base colors, in ECMA-48/XTerm order.
const (
	ColorBlack Color = ColorValid + iota
	ColorMaroon
	ColorGreen
	ColorOlive
	ColorNavy
	ColorPurple
	ColorTeal
	ColorSilver
	ColorGray
	ColorRed
	ColorLime
	ColorYellow
	ColorBlue
	ColorFuchsia
	ColorAqua
	ColorWhite
)

// PaletteColor creates a color based on its palette index (0-255).
// An out of range index yields the default color.
func PaletteColor(index int) Color {
	if index < 0 || index > 255 {
		return ColorDefault
	}
	return ColorValid | Color(index)
}

// NewRGBColor creates a color from red, green and blue components (0-255 each).
func NewRGBColor(r, g, b int32) Color {
	return ColorValid | ColorIsRGB | Color(r&0xff)<<16 | Color(g&0xff)<<8 | Color(b&0xff)
}

// Valid reports whether the color is an initialized (non-default) value.
func (c Color) Valid() bool {
	return c&ColorValid != 0
}

// IsRGB reports whether the color carries a 24-bit RGB value.
func (c Color) IsRGB() bool {
	return c&(ColorValid|ColorIsRGB) == ColorValid|ColorIsRGB
}

// Index returns the palette index of the color, or -1 for RGB and default
// colors.
func (c Color) Index() int {
	if !c.Valid() || c.IsRGB() {
		return -1
	}
	return int(c & 0xff)
}

// RGB returns the red, green and blue components of the color. Palette
// indexes resolve through the XTerm 256-color palette; the default color
// reports -1 for every component.
func (c Color) RGB() (int32, int32, int32) {
	if !c.Valid() {
		return -1, -1, -1
	}
	if c.IsRGB() {
		return int32(c>>16) & 0xff, int32(c>>8) & 0xff, int32(c) & 0xff
	}
	v := palette256[c&0xff]
	return int32(v >> 16), int32(v >> 8 & 0xff), int32(v & 0xff)
}

// palette256 holds the XTerm 256-color palette as packed 0xRRGGBB values:
// 16 base colors, a 6x6x6 color cube, and a 24-step grayscale ramp.
var palette256 [256]uint32

// the standard VGA-ish values XTerm uses for the first 16 entries.
var base16 = [16]uint32{
	0x000000, 0x800000, 0x008000, 0x808000,
	0x000080, 0x800080, 0x008080, 0xc0c0c0,
	0x808080, 0xff0000, 0x00ff00, 0xffff00,
	0x0000ff, 0xff00ff, 0x00ffff, 0xffffff,
}

func init() {
	copy(palette256[:], base16[:])

	// 6x6x6 cube: levels 0, 95, 135, 175, 215, 255
	levels := [6]uint32{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}
	for i := 0; i < 216; i++ {
		r := levels[i/36]
		g := levels[i/6%6]
		b := levels[i%6]
		palette256[16+i] = r<<16 | g<<8 | b
	}

	// grayscale ramp: 8, 18, ..., 238
	for i := 0; i < 24; i++ {
		v := uint32(8 + i*10)
		palette256[232+i] = v<<16 | v<<8 | v
	}
}
