// Package hinter is the hint engine: it scans captured lines once, allocates a
// pool of prefix-free hints, and renders the lines with hints overlaid as many
// times as the user types.
package hinter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/jsfr/zellij-fingers/pkg/format"
	"github.com/jsfr/zellij-fingers/pkg/huffman"
	"github.com/jsfr/zellij-fingers/pkg/pattern"
)

// State of the engine.
type State int

const (
	Idle State = iota
	Ready
	Rendering
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Rendering:
		return "rendering"
	default:
		return "idle"
	}
}

// Target associates matched text with the hint it was given.
type Target struct {
	Text string
	Hint string
}

// Options configures a Hinter. Styles in Formatter must already be encoded.
type Options struct {
	Patterns   []string
	Alphabet   []string
	Formatter  format.Formatter
	ReuseHints bool
}

// Hinter owns the hint pool and target indexes for one captured screen. It is
// not safe for concurrent use.
type Hinter struct {
	lines     []string
	matches   [][]pattern.Match
	width     int
	formatter format.Formatter
	pool      *pool
	byHint    *patricia.Trie
	state     State
}

// New scans lines and allocates hints for them. Invalid patterns and unusable
// alphabets are reported here; rendering never fails afterwards.
func New(lines []string, width int, opts Options) (*Hinter, error) {
	matcher, err := pattern.Compile(opts.Patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	h := &Hinter{
		lines:     append([]string(nil), lines...),
		matches:   make([][]pattern.Match, len(lines)),
		width:     width,
		formatter: opts.Formatter,
		byHint:    patricia.NewTrie(),
	}

	var all []pattern.Match
	for i, line := range h.lines {
		h.matches[i] = matcher.ScanLine(i, line)
		all = append(all, h.matches[i]...)
	}

	n := pattern.CountAll(all)
	if opts.ReuseHints {
		n = pattern.CountUnique(all)
	}

	hints, err := huffman.Generate(opts.Alphabet, n)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %d hints: %w", n, err)
	}
	log.Debugf("Allocated %d hints for %d matches over %d lines (reuse=%v)", len(hints), len(all), len(lines), opts.ReuseHints)

	h.pool = newPool(hints, opts.ReuseHints)
	h.state = Ready
	return h, nil
}

// Run renders every line. typed is the prefix entered so far, selected the hints
// already picked in multi-select mode. width <= 0 uses the capture width.
func (h *Hinter) Run(typed string, selected []string, width int) []string {
	h.state = Rendering
	defer func() { h.state = Ready }()

	if width <= 0 {
		width = h.width
	}

	h.pool.rewind()
	h.byHint = patricia.NewTrie()

	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}

	out := make([]string, len(h.lines))
	for i, line := range h.lines {
		out[i] = h.renderLine(line, h.matches[i], typed, picked, width)
	}
	log.Debugf("Rendered %d lines for %q, %d hints unused", len(out), typed, h.pool.remaining())
	return out
}

func (h *Hinter) renderLine(line string, matches []pattern.Match, typed string, picked map[string]bool, width int) string {
	var sb strings.Builder
	last := 0

	for _, m := range matches {
		sb.WriteString(line[last:m.Start])
		last = m.End

		hint, ok := h.pool.take(m.Extracted)
		if !ok {
			log.Debugf("Hint pool exhausted at %q", m.Extracted)
			sb.WriteString(m.Text)
			continue
		}
		// A label wider than its match would hide neighbouring text.
		if utf8.RuneCountInString(hint) > utf8.RuneCountInString(m.Extracted) {
			h.pool.recycle(hint)
			sb.WriteString(m.Text)
			continue
		}

		h.record(m.Extracted, hint)

		if typed != "" && !strings.HasPrefix(hint, typed) {
			sb.WriteString(m.Text)
			continue
		}

		var offset *format.Span
		if m.Offset != nil {
			offset = &format.Span{Start: m.Offset.Start, Len: m.Offset.Len}
		}
		sb.WriteString(h.formatter.Format(hint, m.Text, picked[hint], offset))
	}
	sb.WriteString(line[last:])

	expanded, correction := expandTabs(sb.String())

	padding := width - displayWidth(line) - correction
	if padding < 0 {
		padding = 0
	}
	return h.formatter.BackdropStyle + expanded + strings.Repeat(" ", padding)
}

func (h *Hinter) record(text, hint string) {
	h.pool.assign(text, hint)
	h.byHint.Set(patricia.Prefix(hint), Target{Text: text, Hint: hint})
}

// Lookup resolves a fully typed hint from the last render pass.
func (h *Hinter) Lookup(hint string) (Target, bool) {
	if hint == "" {
		return Target{}, false
	}
	item := h.byHint.Get(patricia.Prefix(hint))
	if item == nil {
		return Target{}, false
	}
	return item.(Target), true
}

// Candidates returns the targets whose hint starts with prefix, in hint order.
func (h *Hinter) Candidates(prefix string) []Target {
	var targets []Target
	collect := func(_ patricia.Prefix, item patricia.Item) error {
		targets = append(targets, item.(Target))
		return nil
	}

	var err error
	if prefix == "" {
		err = h.byHint.Visit(collect)
	} else {
		err = h.byHint.VisitSubtree(patricia.Prefix(prefix), collect)
	}
	if err != nil {
		log.Errorf("Error visiting hint index: %v", err)
	}
	return targets
}

// Targets returns how many hints were placed in the last pass.
func (h *Hinter) Targets() int {
	return len(h.Candidates(""))
}

// HintCount returns the size of the hint pool.
func (h *Hinter) HintCount() int {
	return len(h.pool.hints)
}

// State reports the engine state.
func (h *Hinter) State() State {
	return h.state
}

// Lines returns the captured lines.
func (h *Hinter) Lines() []string {
	return h.lines
}

// Width returns the capture width.
func (h *Hinter) Width() int {
	return h.width
}

// expandTabs replaces tabs in the composed line with spaces up to the next stop
// of 8. A tab's column is its rune position in the uncomposed line: escape
// sequences added by formatting are skipped, and hints take as many runes as
// they cover, including any tabs they overwrite. It returns the number of cells
// added.
func expandTabs(composed string) (string, int) {
	if !strings.Contains(composed, "\t") {
		return composed, 0
	}

	var sb strings.Builder
	var state byte
	col, correction := 0, 0
	for len(composed) > 0 {
		seq, _, n, newState := ansi.DecodeSequence(composed, state, nil)
		if n == 0 {
			sb.WriteString(composed)
			break
		}
		state = newState
		composed = composed[n:]

		switch {
		case seq == "\t":
			spaces := 8 - (col+correction)%8
			correction += spaces - 1
			sb.WriteString(strings.Repeat(" ", spaces))
			col++
		case seq[0] == ansi.ESC:
			sb.WriteString(seq)
		default:
			sb.WriteString(seq)
			col += utf8.RuneCountInString(seq)
		}
	}
	return sb.String(), correction
}

// displayWidth is the cell width of an unexpanded line, with each tab taking
// one cell.
func displayWidth(line string) int {
	return runewidth.StringWidth(line) + strings.Count(line, "\t")
}
