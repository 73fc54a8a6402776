// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

type charAttribute uint8

const (
	Bold charAttribute = iota + 1
	Faint
	Italic
	Underlined
	Blink
	Inverse
	Strikethrough
)

// Renditions is the pen: foreground and background color plus the character
// attributes applied to subsequently printed text. It is comparable; the
// zero value is the all-default pen with ColorDefault on both sides.
type Renditions struct {
	fgColor Color
	bgColor Color
	// character attributes
	bold          bool
	faint         bool
	italic        bool
	underline     bool
	blink         bool
	inverse       bool
	strikethrough bool
}

// set the ANSI foreground indexed color. The index starts from 0.
func (rend *Renditions) SetForegroundColor(index int) {
	rend.fgColor = PaletteColor(index)
}

// set the ANSI background indexed color. The index starts from 0.
func (rend *Renditions) SetBackgroundColor(index int) {
	rend.bgColor = PaletteColor(index)
}

// SetForeground sets the foreground to an already-built Color.
func (rend *Renditions) SetForeground(c Color) {
	rend.fgColor = c
}

// SetBackground sets the background to an already-built Color.
func (rend *Renditions) SetBackground(c Color) {
	rend.bgColor = c
}

// set the RGB foreground color
func (rend *Renditions) SetFgColor(r, g, b int) {
	rend.fgColor = NewRGBColor(int32(r), int32(g), int32(b))
}

// set the RGB background color
func (rend *Renditions) SetBgColor(r, g, b int) {
	rend.bgColor = NewRGBColor(int32(r), int32(g), int32(b))
}

// Foreground returns the foreground color.
func (rend Renditions) Foreground() Color { return rend.fgColor }

// Background returns the background color.
func (rend Renditions) Background() Color { return rend.bgColor }

func (rend *Renditions) SetAttributes(attr charAttribute, value bool) {
	switch attr {
	case Bold:
		rend.bold = value
	case Faint:
		rend.faint = value
	case Italic:
		rend.italic = value
	case Underlined:
		rend.underline = value
	case Blink:
		rend.blink = value
	case Inverse:
		rend.inverse = value
	case Strikethrough:
		rend.strikethrough = value
	}
}

func (rend Renditions) GetAttributes(attr charAttribute) (value, ok bool) {
	ok = true

	switch attr {
	case Bold:
		value = rend.bold
	case Faint:
		value = rend.faint
	case Italic:
		value = rend.italic
	case Underlined:
		value = rend.underline
	case Blink:
		value = rend.blink
	case Inverse:
		value = rend.inverse
	case Strikethrough:
		value = rend.strikethrough
	default:
		ok = false
	}

	return value, ok
}

func (rend *Renditions) ClearAttributes() {
	rend.bold = false
	rend.faint = false
	rend.italic = false
	rend.underline = false
	rend.blink = false
	rend.inverse = false
	rend.strikethrough = false
}

// buildRendition applies one SGR attribute parameter. This method can process
// the attribute toggles, the 8-color and 16-color sets and the default
// colors. It returns true if it could process the attribute, false for
// anything it does not know (notably the multi-parameter 38/48 forms, which
// ApplySGR handles itself).
func (rend *Renditions) buildRendition(attribute int) (processed bool) {
	processed = true
	switch attribute {
	case 0:
		rend.ClearAttributes()
		rend.fgColor = ColorDefault
		rend.bgColor = ColorDefault
	case 1:
		rend.bold = true
	case 2:
		rend.faint = true
	case 3:
		rend.italic = true
	case 4:
		rend.underline = true
	case 5, 6:
		rend.blink = true
	case 7:
		rend.inverse = true
	case 9:
		rend.strikethrough = true

	case 22:
		rend.bold = false
		rend.faint = false
	case 23:
		rend.italic = false
	case 24:
		rend.underline = false
	case 25:
		rend.blink = false
	case 27:
		rend.inverse = false
	case 29:
		rend.strikethrough = false

	// standard foregrounds
	case 30, 31, 32, 33, 34, 35, 36, 37:
		rend.SetForegroundColor(attribute - 30)
	// default foreground color
	case 39:
		rend.fgColor = ColorDefault
	// standard backgrounds
	case 40, 41, 42, 43, 44, 45, 46, 47:
		rend.SetBackgroundColor(attribute - 40)
	// default background color
	case 49:
		rend.bgColor = ColorDefault

	// bright colored foregrounds
	case 90, 91, 92, 93, 94, 95, 96, 97:
		rend.SetForegroundColor(attribute - 82)
	// bright colored backgrounds
	case 100, 101, 102, 103, 104, 105, 106, 107:
		rend.SetBackgroundColor(attribute - 92)
	default:
		processed = false
	}

	return processed
}

// ApplySGR interprets a full SGR parameter list left-to-right, including the
// extended 256-color (38;5;n / 48;5;n) and truecolor (38;2;r;g;b / 48;2;r;g;b)
// forms, each consuming the correct number of following parameters. Unknown
// attributes are skipped without disturbing the rest of the list.
func (rend *Renditions) ApplySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		if p != 38 && p != 48 {
			rend.buildRendition(p)
			continue
		}

		// extended color form: 38/48 ; 2 ; r ; g ; b  or  38/48 ; 5 ; n
		var c Color
		switch {
		case i+2 < len(params) && params[i+1] == 5:
			c = PaletteColor(params[i+2])
			i += 2
		case i+4 < len(params) && params[i+1] == 2:
			c = NewRGBColor(clampRGB(params[i+2]), clampRGB(params[i+3]), clampRGB(params[i+4]))
			i += 4
		default:
			// malformed extended color, drop the rest of the list
			return
		}

		if p == 38 {
			rend.fgColor = c
		} else {
			rend.bgColor = c
		}
	}
}

func clampRGB(v int) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int32(v)
}
