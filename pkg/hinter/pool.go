package hinter

// pool hands out hints from a list generated once per Hinter. Hints are taken
// from the end of the ascending list, so the last matches on screen (closest to
// the prompt) get the shortest labels.
type pool struct {
	hints    []string
	next     int
	recycled []string
	reuse    bool
	byText   map[string]string
}

func newPool(hints []string, reuse bool) *pool {
	p := &pool{
		hints:  hints,
		reuse:  reuse,
		byText: make(map[string]string),
	}
	p.rewind()
	return p
}

// rewind restarts consumption so each pass hands out the same sequence.
func (p *pool) rewind() {
	p.next = len(p.hints) - 1
	p.recycled = p.recycled[:0]
	clear(p.byText)
}

// take returns the hint for text: the one already assigned to it when reuse is
// on, else the most recently recycled hint, else the next unused one.
func (p *pool) take(text string) (string, bool) {
	if p.reuse {
		if hint, ok := p.byText[text]; ok {
			return hint, true
		}
	}
	if n := len(p.recycled); n > 0 {
		hint := p.recycled[n-1]
		p.recycled = p.recycled[:n-1]
		return hint, true
	}
	if p.next < 0 {
		return "", false
	}
	hint := p.hints[p.next]
	p.next--
	return hint, true
}

// recycle gives back a hint that did not fit its match.
func (p *pool) recycle(hint string) {
	p.recycled = append(p.recycled, hint)
}

func (p *pool) assign(text, hint string) {
	p.byText[text] = hint
}

func (p *pool) remaining() int {
	return p.next + 1 + len(p.recycled)
}
