package rulepack

// dfa is an Aho-Corasick automaton over bytes with the failure links folded
// into a complete transition table, so a scan is one lookup per input byte
type dfa struct {
	delta [][256]int32
	out   [][]int32 // pattern ids ending in each state, suffix matches included
}

// compile builds the automaton; pattern i reports id i, empty patterns never match
func compile(patterns []string) *dfa {
	d := &dfa{delta: make([][256]int32, 1), out: make([][]int32, 1)}

	// trie, with 0 meaning "no edge" until the links are filled in below
	for id, p := range patterns {
		if p == "" {
			continue
		}
		s := int32(0)
		for i := 0; i < len(p); i++ {
			if d.delta[s][p[i]] == 0 {
				d.delta = append(d.delta, [256]int32{})
				d.out = append(d.out, nil)
				d.delta[s][p[i]] = int32(len(d.delta) - 1)
			}
			s = d.delta[s][p[i]]
		}
		d.out[s] = append(d.out[s], int32(id))
	}

	fail := make([]int32, len(d.delta))
	queue := make([]int32, 0, len(d.delta))
	for c := range 256 {
		if s := d.delta[0][c]; s != 0 {
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		d.out[s] = append(d.out[s], d.out[fail[s]]...)
		for c := range 256 {
			t := d.delta[s][c]
			if t == 0 {
				d.delta[s][c] = d.delta[fail[s]][c]
				continue
			}
			fail[t] = d.delta[fail[s]][c]
			queue = append(queue, t)
		}
	}
	return d
}

// scan calls fn for every match in text, stopping when fn returns false
func (d *dfa) scan(text string, fn func(end, id int) bool) {
	s := int32(0)
	for i := 0; i < len(text); i++ {
		s = d.delta[s][text[i]]
		for _, id := range d.out[s] {
			if !fn(i+1, int(id)) {
				return
			}
		}
	}
}
