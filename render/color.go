// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/r3bl-org/r3bl-open-core-sub007/terminal"
)

// toColorful converts a terminal color to colorful's [0,1] RGB space. Only
// meaningful for valid colors.
func toColorful(c terminal.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// the XTerm palette, precomputed for distance comparisons
var paletteRGB [256]colorful.Color

func init() {
	for i := range paletteRGB {
		paletteRGB[i] = toColorful(terminal.PaletteColor(i))
	}
}

// nearestPalette returns the palette index in [0, limit) closest to c by
// CIE76 distance.
func nearestPalette(c colorful.Color, limit int) int {
	best := 0
	bestDist := math.MaxFloat64
	for i := 0; i < limit; i++ {
		if d := c.DistanceCIE76(paletteRGB[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// degradeColor maps a color onto the nearest one the profile can express.
// Degradation is stable: the same input always degrades to the same output,
// so the differ's minimality survives it.
func degradeColor(c terminal.Color, profile ColorProfile) terminal.Color {
	if !c.Valid() {
		return terminal.ColorDefault
	}

	switch profile {
	case ProfileTrueColor:
		return c
	case ProfileANSI256:
		if !c.IsRGB() {
			return c
		}
		return terminal.PaletteColor(nearestPalette(toColorful(c), 256))
	case ProfileANSI16:
		if !c.IsRGB() && c.Index() < 16 {
			return c
		}
		return terminal.PaletteColor(nearestPalette(toColorful(c), 16))
	}
	return terminal.ColorDefault
}

// DegradePen returns the pen with both colors degraded to the profile.
// Attributes pass through untouched.
func DegradePen(pen terminal.Renditions, profile ColorProfile) terminal.Renditions {
	pen.SetForeground(degradeColor(pen.Foreground(), profile))
	pen.SetBackground(degradeColor(pen.Background(), profile))
	return pen
}
