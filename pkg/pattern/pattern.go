// Package pattern compiles independent pattern fragments into one matcher and
// scans captured lines for matches.
//
// A fragment may carry one named extraction group, (?P<match>...), selecting the
// part of the match that is actually acted on. Every fragment is wrapped so the
// matcher knows which one produced a match. Group names are dropped from the
// parsed trees and submatch indexes are derived by counting captures, so names
// in one fragment never affect another.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// ExtractGroup is the capture name a fragment uses to mark its extraction span.
const ExtractGroup = "match"

// ErrNoPatterns is returned when Compile is given nothing to match.
var ErrNoPatterns = errors.New("no patterns configured")

// PatternError reports a fragment that could not be compiled. Index is -1 when
// only the combined expression failed.
type PatternError struct {
	Index    int
	Fragment string
	Err      error
}

func (e *PatternError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid combined pattern: %v", e.Err)
	}
	return fmt.Sprintf("invalid pattern #%d %q: %v", e.Index, e.Fragment, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// group is the per-fragment token: submatch indexes of the fragment wrapper and
// its extraction group (-1 if it has none).
type group struct {
	wrapper int
	extract int
}

// Matcher is a compiled set of fragments.
type Matcher struct {
	re        *regexp.Regexp
	fragments []string
	groups    []group
}

// Compile combines fragments into a single alternation.
func Compile(fragments []string) (*Matcher, error) {
	if len(fragments) == 0 {
		return nil, ErrNoPatterns
	}

	parts := make([]string, len(fragments))
	groups := make([]group, len(fragments))
	next := 1
	for i, frag := range fragments {
		tree, err := syntax.Parse(frag, syntax.Perl)
		if err != nil {
			return nil, &PatternError{Index: i, Fragment: frag, Err: err}
		}

		g := group{wrapper: next, extract: -1}
		if c := extractCap(tree); c > 0 {
			g.extract = g.wrapper + c
		}
		groups[i] = g
		next += 1 + tree.MaxCap()

		dropNames(tree)
		parts[i] = "(" + tree.String() + ")"
	}

	re, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, &PatternError{Index: -1, Fragment: strings.Join(fragments, "|"), Err: err}
	}
	if re.NumSubexp() != next-1 {
		return nil, &PatternError{Index: -1, Fragment: strings.Join(fragments, "|"),
			Err: fmt.Errorf("expected %d groups, compiled %d", next-1, re.NumSubexp())}
	}

	return &Matcher{
		re:        re,
		fragments: append([]string(nil), fragments...),
		groups:    groups,
	}, nil
}

// MustCompile is like Compile but panics on error. Meant for builtin fragments.
func MustCompile(fragments []string) *Matcher {
	m, err := Compile(fragments)
	if err != nil {
		panic(err)
	}
	return m
}

// Fragments returns the source fragments in compile order.
func (m *Matcher) Fragments() []string {
	return append([]string(nil), m.fragments...)
}

// String returns the combined expression.
func (m *Matcher) String() string {
	return m.re.String()
}

// extractCap returns the capture index of the first extraction group in tree,
// 0 if there is none.
func extractCap(re *syntax.Regexp) int {
	if re.Op == syntax.OpCapture && re.Name == ExtractGroup {
		return re.Cap
	}
	for _, sub := range re.Sub {
		if c := extractCap(sub); c > 0 {
			return c
		}
	}
	return 0
}

func dropNames(re *syntax.Regexp) {
	if re.Op == syntax.OpCapture {
		re.Name = ""
	}
	for _, sub := range re.Sub {
		dropNames(sub)
	}
}
