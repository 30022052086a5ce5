package pattern

import "unicode/utf8"

// Span is a rune range relative to the start of a match.
type Span struct {
	Start int
	Len   int
}

// Match is one occurrence of a fragment in a line.
type Match struct {
	Line     int
	Start    int // byte offset in the line
	End      int
	Fragment int
	// Text is the whole match, Extracted the part to act on.
	Text      string
	Extracted string
	// Offset locates Extracted inside Text; nil when the whole match is extracted.
	Offset *Span
}

// ScanLine returns every non-overlapping match in line, left to right.
func (m *Matcher) ScanLine(index int, line string) []Match {
	locs := m.re.FindAllStringSubmatchIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		match := Match{
			Line:      index,
			Start:     start,
			End:       end,
			Fragment:  -1,
			Text:      line[start:end],
			Extracted: line[start:end],
		}

		for i, g := range m.groups {
			if loc[2*g.wrapper] < 0 {
				continue
			}
			match.Fragment = i
			if g.extract >= 0 && loc[2*g.extract] >= 0 {
				gs, ge := loc[2*g.extract], loc[2*g.extract+1]
				match.Extracted = line[gs:ge]
				match.Offset = &Span{
					Start: utf8.RuneCountInString(line[start:gs]),
					Len:   utf8.RuneCountInString(line[gs:ge]),
				}
			}
			break
		}
		matches = append(matches, match)
	}
	return matches
}

// Scan runs ScanLine over every line.
func (m *Matcher) Scan(lines []string) []Match {
	var matches []Match
	for i, line := range lines {
		matches = append(matches, m.ScanLine(i, line)...)
	}
	return matches
}

// CountAll counts every occurrence.
func CountAll(matches []Match) int {
	return len(matches)
}

// CountUnique counts distinct extracted texts.
func CountUnique(matches []Match) int {
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		seen[m.Extracted] = struct{}{}
	}
	return len(seen)
}
