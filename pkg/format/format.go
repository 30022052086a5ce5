// Package format renders a single match with its hint overlaid.
package format

import (
	"strings"

	"github.com/jsfr/zellij-fingers/pkg/style"
)

// Position selects which end of the highlighted region the hint covers.
type Position int

const (
	Left Position = iota
	Right
)

// ParsePosition maps "right" to Right and anything else to Left.
func ParsePosition(s string) Position {
	if strings.EqualFold(strings.TrimSpace(s), "right") {
		return Right
	}
	return Left
}

func (p Position) String() string {
	if p == Right {
		return "right"
	}
	return "left"
}

// Span is a rune range of the text that carries the hint. Text outside it is
// drawn with the backdrop style.
type Span struct {
	Start int
	Len   int
}

// Formatter holds already encoded escape sequences.
type Formatter struct {
	HintStyle              string
	HighlightStyle         string
	SelectedHintStyle      string
	SelectedHighlightStyle string
	BackdropStyle          string
	Position               Position
}

// Format returns text with hint overlaid. With a nil offset the whole text is the
// highlighted region.
func (f *Formatter) Format(hint, text string, selected bool, offset *Span) string {
	runes := []rune(text)
	before, region, after := split(runes, offset)

	var sb strings.Builder
	sb.WriteString(style.Reset)
	if offset != nil {
		sb.WriteString(f.BackdropStyle)
		sb.WriteString(string(before))
	}
	f.writeRegion(&sb, hint, region, selected)
	if offset != nil {
		sb.WriteString(f.BackdropStyle)
		sb.WriteString(string(after))
	}
	sb.WriteString(f.BackdropStyle)
	return sb.String()
}

func (f *Formatter) writeRegion(sb *strings.Builder, hint string, region []rune, selected bool) {
	hintStyle, highlightStyle := f.HintStyle, f.HighlightStyle
	if selected {
		hintStyle, highlightStyle = f.SelectedHintStyle, f.SelectedHighlightStyle
	}

	rest := f.chop(len([]rune(hint)), region)
	hintPair := hintStyle + hint + style.Reset
	highlightPair := highlightStyle + string(rest) + style.Reset

	if f.Position == Right {
		sb.WriteString(highlightPair)
		sb.WriteString(hintPair)
		return
	}
	sb.WriteString(hintPair)
	sb.WriteString(highlightPair)
}

// chop drops hintLen runes from the hint side of region.
func (f *Formatter) chop(hintLen int, region []rune) []rune {
	if len(region) <= hintLen {
		return nil
	}
	if f.Position == Right {
		return region[:len(region)-hintLen]
	}
	return region[hintLen:]
}

func split(runes []rune, offset *Span) (before, region, after []rune) {
	if offset == nil {
		return nil, runes, nil
	}
	start := clamp(offset.Start, 0, len(runes))
	end := clamp(offset.Start+offset.Len, start, len(runes))
	return runes[:start], runes[start:end], runes[end:]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
