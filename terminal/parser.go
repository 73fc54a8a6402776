// Copyright 2026 the r3bl-open-core authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"strings"
	"unicode/utf8"

	"github.com/r3bl-org/r3bl-open-core-sub007/util"
)

const (
	InputState_Normal = iota
	InputState_Escape
	InputState_Esc_Intermediate
	InputState_CSI
	InputState_CSI_Intermediate
	InputState_CSI_Ignore
	InputState_OSC_Cmd
	InputState_OSC_Arg
	InputState_OSC_Esc
	InputState_DCS
	InputState_DCS_Esc
	InputState_String
	InputState_String_Esc
)

const (
	// max value for a numeric parameter
	maxParamValue = 65535
	// max number of numeric parameters per sequence
	maxEscOps = 16
	// hard cap for OSC/DCS/SOS/PM/APC string payloads. An unterminated
	// string is abandoned once it grows past this, and parsing resumes
	// at ground.
	maxStringLen = 4096
)

// Parser decodes a terminal byte stream into Actions. It is a resumable
// state machine: every piece of in-flight state (grammar position, numeric
// parameters, string payload, partial UTF-8 rune, pending grapheme cluster)
// lives in the Parser, so Consume can be called with arbitrary chunk
// boundaries, one byte at a time included.
//
// One Parser serves one byte source. Malformed input never produces an
// error: unrecognized or broken sequences are dropped and the parser
// resynchronizes to ground.
type Parser struct {
	// big switch state machine
	inputState int
	ch         rune

	// numeric parameters
	inputOps  []int
	nInputOps int
	sawParam  bool

	// CSI private marker ('?', '>', '<', '=') and intermediate bytes
	private      rune
	intermediate strings.Builder

	// string parameter (OSC arg, also used to bound DCS/SOS/PM/APC)
	oscCmd    int
	argBuf    strings.Builder
	stringLen int

	// partial UTF-8 rune spanning a chunk boundary
	utf8Buf []byte

	// pending grapheme cluster. A cluster is only complete once the next
	// rune (or a control byte) proves the boundary, so the trailing
	// cluster of a chunk is retained here; this is what makes the action
	// stream independent of chunking.
	cluster string
}

func NewParser() *Parser {
	p := new(Parser)
	p.inputOps = make([]int, maxEscOps)
	p.clearSeq()
	return p
}

// Reset drops all in-flight state and returns the parser to ground.
func (p *Parser) Reset() {
	p.inputState = InputState_Normal
	p.utf8Buf = nil
	p.cluster = ""
	p.clearSeq()
}

func (p *Parser) getState() int {
	return p.inputState
}

// clear the accumulators for the escape sequence being assembled
func (p *Parser) clearSeq() {
	p.inputOps[0] = 0
	p.nInputOps = 1
	p.sawParam = false
	p.private = 0
	p.intermediate.Reset()
	p.oscCmd = 0
	p.argBuf.Reset()
	p.stringLen = 0
}

func (p *Parser) setState(newState int) {
	p.inputState = newState
}

// Consume decodes a chunk of bytes and returns the Actions completed by it,
// in order. Incomplete trailing input (a split UTF-8 rune, an unfinished
// escape sequence, an open grapheme cluster) is retained for the next call.
// Consume never blocks and never performs I/O.
func (p *Parser) Consume(chunk []byte) []Action {
	var acts []Action

	for i := 0; i < len(chunk); i++ {
		b := chunk[i]

		// fast path: ASCII with no rune in flight
		if len(p.utf8Buf) == 0 && b < utf8.RuneSelf {
			p.processInput(rune(b), &acts)
			continue
		}

		p.utf8Buf = append(p.utf8Buf, b)
		for len(p.utf8Buf) > 0 {
			if !utf8.FullRune(p.utf8Buf) {
				if len(p.utf8Buf) >= utf8.UTFMax {
					// garbage that never became a rune
					p.utf8Buf = p.utf8Buf[:0]
					p.processInput(utf8.RuneError, &acts)
				}
				break
			}
			r, size := utf8.DecodeRune(p.utf8Buf)
			n := copy(p.utf8Buf, p.utf8Buf[size:])
			p.utf8Buf = p.utf8Buf[:n]
			p.processInput(r, &acts)
		}
	}

	return acts
}

// Flush emits the pending grapheme cluster, if any. Call it at end of
// stream: a trailing cluster is otherwise held back, since a following rune
// could still extend it.
func (p *Parser) Flush() []Action {
	var acts []Action
	p.flushPrint(&acts)
	return acts
}

// append the rune to the pending grapheme cluster, emitting the previous
// cluster once the new rune starts a fresh one.
func (p *Parser) graphemeInput(r rune, acts *[]Action) {
	if p.cluster == "" {
		p.cluster = string(r)
		return
	}

	if graphemeCount(p.cluster+string(r)) > 1 {
		*acts = append(*acts, Print{Grapheme: p.cluster})
		p.cluster = string(r)
	} else {
		p.cluster += string(r)
	}
}

// emit the pending grapheme cluster, if any. Called before any control
// takes effect so Print actions keep their position in the stream.
func (p *Parser) flushPrint(acts *[]Action) {
	if p.cluster != "" {
		*acts = append(*acts, Print{Grapheme: p.cluster})
		p.cluster = ""
	}
}

// the C0 controls that execute even in the middle of a control sequence
func c0Action(r rune) (Action, bool) {
	switch r {
	case '\x0D':
		return CarriageReturn{}, true
	case '\x0A', '\x0B', '\x0C':
		return LineFeed{}, true
	case '\x09':
		return MoveCursor{Kind: CursorTab, Amount: 1}, true
	case '\x08':
		return MoveCursor{Kind: CursorBack, Amount: 1}, true
	case '\x07':
		return Bell{}, true
	}
	return nil, false
}

// collect a numeric parameter digit or separator into inputOps.
func (p *Parser) collectNumericParameters(ch rune) (isBreak bool) {
	if '0' <= ch && ch <= '9' {
		isBreak = true
		p.sawParam = true
		if p.inputOps[p.nInputOps-1] < maxParamValue {
			p.inputOps[p.nInputOps-1] *= 10
			p.inputOps[p.nInputOps-1] += int(ch - '0')
		} else {
			util.Logger.Trace("numeric parameter overflow", "state", p.inputState)
			p.setState(InputState_Normal)
		}
	} else if ch == ';' {
		isBreak = true
		p.sawParam = true
		if p.nInputOps < maxEscOps { // move to the next parameter
			p.inputOps[p.nInputOps] = 0
			p.nInputOps++
		} else {
			util.Logger.Trace("too many numeric parameters", "state", p.inputState)
			p.setState(InputState_Normal)
		}
	}

	return isBreak
}

// get parameter n; zero and missing both mean "use the default".
func (p *Parser) getPs(n int, defaultVal int) int {
	ret := defaultVal
	if n < p.nInputOps {
		ret = p.inputOps[n]
	}

	if ret < 1 {
		ret = defaultVal
	}
	return ret
}

// get parameter n where zero is meaningful (EL/ED/TBC style selectors).
func (p *Parser) getMode(n int) int {
	if n < p.nInputOps {
		return p.inputOps[n]
	}
	return 0
}

// copy of the raw parameter list, for SGR
func (p *Parser) getParams() []int {
	ops := make([]int, p.nInputOps)
	copy(ops, p.inputOps[:p.nInputOps])
	return ops
}

// process one decoded rune through the state machine.
func (p *Parser) processInput(ch rune, acts *[]Action) {
	p.ch = ch

	switch p.inputState {
	case InputState_Normal:
		switch ch {
		case '\x00':
			// ignore NUL
		case '\x1B':
			p.flushPrint(acts)
			p.clearSeq()
			p.setState(InputState_Escape)
		case '\x9B': // C1 CSI
			p.flushPrint(acts)
			p.clearSeq()
			p.setState(InputState_CSI)
		case '\x9D': // C1 OSC
			p.flushPrint(acts)
			p.clearSeq()
			p.setState(InputState_OSC_Cmd)
		case '\x90': // C1 DCS
			p.flushPrint(acts)
			p.clearSeq()
			p.setState(InputState_DCS)
		case '\x84': // IND
			p.flushPrint(acts)
			*acts = append(*acts, LineFeed{})
		case '\x85': // NEL
			p.flushPrint(acts)
			*acts = append(*acts, CarriageReturn{}, LineFeed{})
		case '\x8D': // RI
			p.flushPrint(acts)
			*acts = append(*acts, ReverseIndex{})
		default:
			if a, ok := c0Action(ch); ok {
				p.flushPrint(acts)
				*acts = append(*acts, a)
				return
			}
			if ch < 0x20 || ch == 0x7F || (0x80 <= ch && ch <= 0x9F) {
				// remaining C0, DEL and C1: ignore
				return
			}
			p.graphemeInput(ch, acts)
		}

	case InputState_Escape:
		switch ch {
		case '\x18', '\x1A': // CAN, SUB abort
			p.setState(InputState_Normal)
		case '\x1B': // restart
			p.clearSeq()
		case '[':
			p.setState(InputState_CSI)
		case ']':
			p.setState(InputState_OSC_Cmd)
		case 'P':
			p.setState(InputState_DCS)
		case 'X', '^', '_': // SOS, PM, APC
			p.setState(InputState_String)
		case 'D': // IND
			*acts = append(*acts, LineFeed{})
			p.setState(InputState_Normal)
		case 'E': // NEL
			*acts = append(*acts, CarriageReturn{}, LineFeed{})
			p.setState(InputState_Normal)
		case 'M': // RI
			*acts = append(*acts, ReverseIndex{})
			p.setState(InputState_Normal)
		case '7': // DECSC
			*acts = append(*acts, SaveCursor{})
			p.setState(InputState_Normal)
		case '8': // DECRC
			*acts = append(*acts, RestoreCursor{})
			p.setState(InputState_Normal)
		case 'c': // RIS
			*acts = append(*acts, FullReset{})
			p.setState(InputState_Normal)
		case '\\': // stray ST
			p.setState(InputState_Normal)
		default:
			if 0x20 <= ch && ch <= 0x2F {
				p.intermediate.WriteRune(ch)
				p.setState(InputState_Esc_Intermediate)
				return
			}
			if a, ok := c0Action(ch); ok {
				*acts = append(*acts, a)
				return
			}
			if 0x30 <= ch && ch <= 0x7E {
				util.Logger.Trace("unhandled escape sequence", "final", string(ch))
			}
			p.setState(InputState_Normal)
		}

	case InputState_Esc_Intermediate:
		switch {
		case ch == '\x18' || ch == '\x1A':
			p.setState(InputState_Normal)
		case ch == '\x1B':
			p.clearSeq()
			p.setState(InputState_Escape)
		case 0x20 <= ch && ch <= 0x2F:
			p.intermediate.WriteRune(ch)
		case 0x30 <= ch && ch <= 0x7E:
			// charset designations and the rest of the ESC-intermediate
			// family are not part of this core
			util.Logger.Trace("unhandled escape sequence",
				"intermediate", p.intermediate.String(), "final", string(ch))
			p.setState(InputState_Normal)
		default:
			if a, ok := c0Action(ch); ok {
				*acts = append(*acts, a)
			}
		}

	case InputState_CSI:
		if p.collectNumericParameters(ch) {
			break
		}
		switch {
		case ch == '\x18' || ch == '\x1A':
			p.setState(InputState_Normal)
		case ch == '\x1B':
			p.clearSeq()
			p.setState(InputState_Escape)
		case 0x3C <= ch && ch <= 0x3F: // private marker
			if p.private == 0 && !p.sawParam {
				p.private = ch
			} else {
				p.setState(InputState_CSI_Ignore)
			}
		case ch == ':':
			p.setState(InputState_CSI_Ignore)
		case 0x20 <= ch && ch <= 0x2F:
			p.intermediate.WriteRune(ch)
			p.setState(InputState_CSI_Intermediate)
		case 0x40 <= ch && ch <= 0x7E:
			p.dispatchCSI(ch, acts)
		case ch == 0x7F:
			// ignore DEL
		default:
			if a, ok := c0Action(ch); ok {
				*acts = append(*acts, a)
			}
		}

	case InputState_CSI_Intermediate:
		switch {
		case ch == '\x18' || ch == '\x1A':
			p.setState(InputState_Normal)
		case ch == '\x1B':
			p.clearSeq()
			p.setState(InputState_Escape)
		case 0x20 <= ch && ch <= 0x2F:
			p.intermediate.WriteRune(ch)
		case 0x30 <= ch && ch <= 0x3F:
			p.setState(InputState_CSI_Ignore)
		case 0x40 <= ch && ch <= 0x7E:
			p.dispatchCSI(ch, acts)
		default:
			if a, ok := c0Action(ch); ok {
				*acts = append(*acts, a)
			}
		}

	case InputState_CSI_Ignore:
		switch {
		case ch == '\x18' || ch == '\x1A':
			p.setState(InputState_Normal)
		case ch == '\x1B':
			p.clearSeq()
			p.setState(InputState_Escape)
		case 0x40 <= ch && ch <= 0x7E:
			util.Logger.Trace("malformed CSI dropped", "final", string(ch))
			p.setState(InputState_Normal)
		default:
			if a, ok := c0Action(ch); ok {
				*acts = append(*acts, a)
			}
		}

	case InputState_OSC_Cmd:
		switch {
		case '0' <= ch && ch <= '9':
			if p.oscCmd < maxParamValue {
				p.oscCmd = p.oscCmd*10 + int(ch-'0')
			}
		case ch == ';':
			p.setState(InputState_OSC_Arg)
		case ch == '\x07' || ch == '\x9C':
			p.dispatchOSC(acts)
		case ch == '\x1B':
			p.setState(InputState_OSC_Esc)
		case ch == '\x18' || ch == '\x1A':
			p.setState(InputState_Normal)
		default:
			// not a numbered command; keep collecting so the string is
			// consumed and dropped as a unit
			p.oscCmd = -1
			p.setState(InputState_OSC_Arg)
			p.oscArgInput(ch, acts)
		}

	case InputState_OSC_Arg:
		p.oscArgInput(ch, acts)

	case InputState_OSC_Esc:
		switch ch {
		case '\\': // ESC \ : ST
			p.dispatchOSC(acts)
		default:
			// the ESC belonged to the payload
			p.argBuf.WriteRune('\x1b')
			p.setState(InputState_OSC_Arg)
			p.oscArgInput(ch, acts)
		}

	case InputState_DCS:
		switch ch {
		case '\x1B':
			p.setState(InputState_DCS_Esc)
		case '\x9C':
			p.setState(InputState_Normal)
		case '\x18', '\x1A':
			p.setState(InputState_Normal)
		default:
			p.stringLen++
			if p.stringLen > maxStringLen {
				util.Logger.Trace("DCS string overflow, abandoned")
				p.setState(InputState_Normal)
			}
		}

	case InputState_DCS_Esc:
		switch ch {
		case '\\':
			// DCS payloads are consumed and dropped; device control
			// strings are not part of this core
			p.setState(InputState_Normal)
		default:
			p.stringLen += 2
			p.setState(InputState_DCS)
			if p.stringLen > maxStringLen {
				util.Logger.Trace("DCS string overflow, abandoned")
				p.setState(InputState_Normal)
			}
		}

	case InputState_String:
		switch ch {
		case '\x1B':
			p.setState(InputState_String_Esc)
		case '\x9C':
			p.setState(InputState_Normal)
		case '\x18', '\x1A':
			p.setState(InputState_Normal)
		default:
			p.stringLen++
			if p.stringLen > maxStringLen {
				util.Logger.Trace("SOS/PM/APC string overflow, abandoned")
				p.setState(InputState_Normal)
			}
		}

	case InputState_String_Esc:
		switch ch {
		case '\\':
			p.setState(InputState_Normal)
		default:
			p.stringLen += 2
			p.setState(InputState_String)
		}
	}
}

// collect one OSC payload rune, dispatching on a terminator.
func (p *Parser) oscArgInput(ch rune, acts *[]Action) {
	switch ch {
	case '\x07', '\x9C':
		p.dispatchOSC(acts)
	case '\x1B':
		p.setState(InputState_OSC_Esc)
	case '\x18', '\x1A':
		p.setState(InputState_Normal)
	default:
		if p.argBuf.Len() < maxStringLen {
			p.argBuf.WriteRune(ch)
		} else {
			util.Logger.Trace("OSC string overflow, abandoned", "cmd", p.oscCmd)
			p.setState(InputState_Normal)
		}
	}
}

// dispatch a complete OSC string.
func (p *Parser) dispatchOSC(acts *[]Action) {
	defer p.setState(InputState_Normal)

	switch p.oscCmd {
	case 0, 2: // set icon name and window title / set window title
		*acts = append(*acts, SetTitle{Title: p.argBuf.String()})
	case 1:
		// icon name only; nothing to display
	default:
		util.Logger.Trace("unhandled OSC", "cmd", p.oscCmd)
	}
}

// dispatch a complete CSI sequence on its final byte.
func (p *Parser) dispatchCSI(ch rune, acts *[]Action) {
	defer p.setState(InputState_Normal)

	if p.intermediate.Len() > 0 {
		// DECSCUSR and friends arrive here; none of them affect the grid
		util.Logger.Trace("unhandled CSI",
			"intermediate", p.intermediate.String(), "final", string(ch))
		return
	}

	if p.private != 0 {
		p.dispatchCSIPrivate(ch, acts)
		return
	}

	switch ch {
	case 'A':
		*acts = append(*acts, MoveCursor{Kind: CursorUp, Amount: p.getPs(0, 1)})
	case 'B', 'e':
		*acts = append(*acts, MoveCursor{Kind: CursorDown, Amount: p.getPs(0, 1)})
	case 'C':
		*acts = append(*acts, MoveCursor{Kind: CursorForward, Amount: p.getPs(0, 1)})
	case 'D':
		*acts = append(*acts, MoveCursor{Kind: CursorBack, Amount: p.getPs(0, 1)})
	case 'E': // CNL
		*acts = append(*acts,
			MoveCursor{Kind: CursorDown, Amount: p.getPs(0, 1)}, CarriageReturn{})
	case 'F': // CPL
		*acts = append(*acts,
			MoveCursor{Kind: CursorUp, Amount: p.getPs(0, 1)}, CarriageReturn{})
	case 'G', '`': // CHA, HPA
		*acts = append(*acts, MoveCursor{Kind: CursorCol, Col: p.getPs(0, 1) - 1})
	case 'd': // VPA
		*acts = append(*acts, MoveCursor{Kind: CursorRow, Row: p.getPs(0, 1) - 1})
	case 'H', 'f': // CUP, HVP
		*acts = append(*acts, MoveCursor{
			Kind: CursorTo,
			Row:  p.getPs(0, 1) - 1,
			Col:  p.getPs(1, 1) - 1,
		})
	case 'I': // CHT
		*acts = append(*acts, MoveCursor{Kind: CursorTab, Amount: p.getPs(0, 1)})
	case 'Z': // CBT
		*acts = append(*acts, MoveCursor{Kind: CursorTab, Amount: -p.getPs(0, 1)})
	case 'J':
		*acts = append(*acts, EraseInDisplay{Mode: p.getMode(0)})
	case 'K':
		*acts = append(*acts, EraseInLine{Mode: p.getMode(0)})
	case 'L':
		*acts = append(*acts, InsertLines{N: p.getPs(0, 1)})
	case 'M':
		*acts = append(*acts, DeleteLines{N: p.getPs(0, 1)})
	case 'P':
		*acts = append(*acts, DeleteChars{N: p.getPs(0, 1)})
	case '@':
		*acts = append(*acts, InsertChars{N: p.getPs(0, 1)})
	case 'X':
		*acts = append(*acts, EraseChars{N: p.getPs(0, 1)})
	case 'S':
		*acts = append(*acts, Scroll{Lines: p.getPs(0, 1)})
	case 'T':
		*acts = append(*acts, Scroll{Lines: -p.getPs(0, 1)})
	case 'm':
		*acts = append(*acts, SetGraphicsRendition{Params: p.getParams()})
	case 'r': // DECSTBM; bottom 0 means "to the last row"
		*acts = append(*acts, ScrollRegion{
			Top:    p.getPs(0, 1) - 1,
			Bottom: p.getMode(1),
		})
	case 's':
		*acts = append(*acts, SaveCursor{})
	case 'u':
		*acts = append(*acts, RestoreCursor{})
	case 'h', 'l':
		set := ch == 'h'
		for i := 0; i < p.nInputOps; i++ {
			switch p.inputOps[i] {
			case 4:
				*acts = append(*acts, modeAction(ModeInsert, set))
			default:
				util.Logger.Trace("unhandled ANSI mode", "mode", p.inputOps[i], "set", set)
			}
		}
	default:
		util.Logger.Trace("unhandled CSI", "final", string(ch))
	}
}

// dispatch a CSI sequence carrying a private marker.
func (p *Parser) dispatchCSIPrivate(ch rune, acts *[]Action) {
	if p.private != '?' || (ch != 'h' && ch != 'l') {
		util.Logger.Trace("unhandled private CSI",
			"marker", string(p.private), "final", string(ch))
		return
	}

	set := ch == 'h'
	for i := 0; i < p.nInputOps; i++ {
		switch p.inputOps[i] {
		case 6: // DECOM
			*acts = append(*acts, modeAction(ModeOrigin, set))
		case 7: // DECAWM
			*acts = append(*acts, modeAction(ModeAutoWrap, set))
		case 25: // DECTCEM
			*acts = append(*acts, modeAction(ModeCursorVisible, set))
		case 47, 1047, 1049:
			*acts = append(*acts, SwitchScreen{Alternate: set})
		default:
			util.Logger.Trace("unhandled DEC private mode",
				"mode", p.inputOps[i], "set", set)
		}
	}
}

func modeAction(mode ModeID, set bool) Action {
	if set {
		return SetMode{Mode: mode}
	}
	return ResetMode{Mode: mode}
}
