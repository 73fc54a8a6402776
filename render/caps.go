// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package render

import (
	"strings"

	"github.com/ericwq/terminfo"
	_ "github.com/ericwq/terminfo/base"
	"github.com/ericwq/terminfo/dynamic"

	"github.com/r3bl-org/r3bl-open-core-sub007/util"
)

// ColorProfile is the color depth the encoder is allowed to emit.
type ColorProfile int

const (
	ProfileNoColor ColorProfile = iota
	ProfileANSI16
	ProfileANSI256
	ProfileTrueColor
)

func (p ColorProfile) String() string {
	switch p {
	case ProfileNoColor:
		return "no-color"
	case ProfileANSI16:
		return "ansi16"
	case ProfileANSI256:
		return "ansi256"
	case ProfileTrueColor:
		return "truecolor"
	}
	return "unknown"
}

// Capability describes what the destination terminal can render. It is the
// oracle the encoder consults; it never changes mid-frame.
type Capability struct {
	Profile        ColorProfile
	HasTitle       bool
	BackColorErase bool
	Columns        int
}

// LookupEnv matches os.LookupEnv; tests substitute their own environment.
type LookupEnv func(key string) (string, bool)

// DetectCapability builds the capability set for a terminal type, combining
// the terminfo entry for term with the COLORTERM and NO_COLOR conventions.
// An unknown terminal type degrades to a conservative monochrome profile
// rather than failing.
func DetectCapability(term string, lookupEnv LookupEnv) Capability {
	caps := Capability{
		Profile: ProfileNoColor,
		Columns: 80,
	}
	if term == "" {
		return caps
	}

	ti, err := terminfo.LookupTerminfo(term)
	if err != nil {
		ti, _, err = dynamic.LoadTerminfo(term)
		if err != nil {
			util.Logger.Warn("no terminfo entry, assuming monochrome",
				"term", term, "error", err)
			ti = nil
		} else {
			terminfo.AddTerminfo(ti)
		}
	}

	if ti != nil {
		switch {
		case ti.Colors >= 256:
			caps.Profile = ProfileANSI256
		case ti.Colors >= 8:
			caps.Profile = ProfileANSI16
		}
		caps.BackColorErase = ti.BackColorErase
		if ti.Columns > 0 {
			caps.Columns = ti.Columns
		}
	}

	// the COLORTERM convention outranks the terminfo color count
	if v, ok := lookupEnv("COLORTERM"); ok {
		switch v {
		case "truecolor", "24bit":
			caps.Profile = ProfileTrueColor
		}
	}

	// https://no-color.org: any non-empty value disables color entirely
	if v, ok := lookupEnv("NO_COLOR"); ok && v != "" {
		caps.Profile = ProfileNoColor
	}

	caps.HasTitle = titleCapable(term)
	return caps
}

// titleCapable mirrors the usual terminal-name heuristic for OSC window
// title support; terminfo has no standard capability for it.
func titleCapable(term string) bool {
	for _, prefix := range []string{"xterm", "rxvt", "kterm", "Eterm", "alacritty", "screen", "tmux", "foot", "wezterm"} {
		if strings.HasPrefix(term, prefix) {
			return true
		}
	}
	return false
}
