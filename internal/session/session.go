// Package session turns key presses into hint selections.
package session

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/jsfr/zellij-fingers/pkg/hinter"
	"github.com/jsfr/zellij-fingers/pkg/render"
)

// Phase of a session.
type Phase int

const (
	Capturing Phase = iota
	Hinting
	Done
)

func (p Phase) String() string {
	switch p {
	case Hinting:
		return "hinting"
	case Done:
		return "done"
	default:
		return "capturing"
	}
}

// Key names understood by HandleKey. Anything else of one rune is typed input.
const (
	KeyEsc       = "esc"
	KeyCtrlC     = "ctrl+c"
	KeyEnter     = "enter"
	KeyTab       = "tab"
	KeyBackspace = "backspace"
)

// Outcome of a key press. A done outcome with empty Text is a cancellation.
type Outcome struct {
	Done bool
	Text string
}

// Session tracks typed input and multi-select state for one hinted screen.
type Session struct {
	phase    Phase
	hinter   *hinter.Hinter
	input    string
	multi    bool
	selected []string
	matches  []string
}

func New() *Session {
	return &Session{phase: Capturing}
}

// Start attaches the engine and primes its target index with a first pass.
func (s *Session) Start(h *hinter.Hinter) {
	s.hinter = h
	s.input = ""
	s.multi = false
	s.selected = nil
	s.matches = nil
	h.Run("", nil, 0)
	s.phase = Hinting
	log.Debugf("Session started with %d targets", h.Targets())
}

// HandleKey applies one key press. Keys are ignored outside the hinting phase.
func (s *Session) HandleKey(key string) Outcome {
	if s.phase != Hinting {
		return Outcome{}
	}

	switch key {
	case KeyEsc, KeyCtrlC:
		return s.finish("")
	case KeyTab:
		s.multi = !s.multi
		if !s.multi {
			return s.commit()
		}
		return Outcome{}
	case KeyEnter:
		if s.multi {
			return s.commit()
		}
		return Outcome{}
	case KeyBackspace:
		if s.input != "" {
			_, size := utf8.DecodeLastRuneInString(s.input)
			s.input = s.input[:len(s.input)-size]
		}
		return Outcome{}
	}

	if utf8.RuneCountInString(key) != 1 {
		log.Debugf("Ignoring key %q", key)
		return Outcome{}
	}

	s.input += asciiLower(key)
	target, ok := s.hinter.Lookup(s.input)
	if !ok {
		return Outcome{}
	}
	if s.multi {
		s.matches = append(s.matches, target.Text)
		s.selected = append(s.selected, target.Hint)
		s.input = ""
		return Outcome{}
	}
	return s.finish(target.Text)
}

func (s *Session) commit() Outcome {
	return s.finish(strings.Join(s.matches, " "))
}

func (s *Session) finish(text string) Outcome {
	s.phase = Done
	return Outcome{Done: true, Text: text}
}

// Remaining reports how many targets carry the typed prefix.
func (s *Session) Remaining() int {
	if s.hinter == nil {
		return 0
	}
	return len(s.hinter.Candidates(s.input))
}

// Frame renders the current state.
func (s *Session) Frame(rows, cols int) string {
	if s.hinter == nil {
		return ""
	}
	return render.Frame(s.hinter, s.input, s.selected, rows, cols)
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Input() string { return s.input }

func (s *Session) Multi() bool { return s.multi }

func (s *Session) Selected() []string { return s.selected }

func (s *Session) Hinter() *hinter.Hinter { return s.hinter }

func asciiLower(key string) string {
	if len(key) == 1 && key[0] >= 'A' && key[0] <= 'Z' {
		return string(key[0] + 'a' - 'A')
	}
	return key
}
