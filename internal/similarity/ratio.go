package similarity

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0, 1]:
// twice the number of runes in matching blocks divided by the total rune
// count. Either input empty gives 0.
//
// The pair is put in canonical order before matching so that
// Ratio(a, b) == Ratio(b, a) holds exactly. No rune is ever treated as
// junk, whatever the input length.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if a > b {
		a, b = b, a
	}

	ra, rb := []rune(a), []rune(b)
	m := newBlockMatcher(ra, rb).matchedRunes()
	return clamp(2 * float64(m) / float64(len(ra)+len(rb)))
}

// blockMatcher finds matching blocks between two rune sequences by
// repeatedly taking the longest common substring and recursing on the
// unmatched sides.
type blockMatcher struct {
	a, b []rune
	b2j  map[rune][]int // Positions of each rune in b, ascending

	j2len, newj2len []int
	touched, next   []int
}

func newBlockMatcher(a, b []rune) *blockMatcher {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	return &blockMatcher{
		a:        a,
		b:        b,
		b2j:      b2j,
		j2len:    make([]int, len(b)),
		newj2len: make([]int, len(b)),
	}
}

type span struct {
	alo, ahi, blo, bhi int
}

// matchedRunes returns the total size of all matching blocks
func (m *blockMatcher) matchedRunes() int {
	total := 0
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := m.longestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		total += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return total
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] within the
// given ranges. Among equal lengths the earliest in a, then in b, wins.
func (m *blockMatcher) longestMatch(alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the match ending at a[i-1], b[j]; only the
	// indexes listed in touched are non-zero.
	m.touched = m.touched[:0]
	for i := alo; i < ahi; i++ {
		m.next = m.next[:0]
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := 1
			if j > blo {
				k = m.j2len[j-1] + 1
			}
			m.newj2len[j] = k
			m.next = append(m.next, j)
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}

		for _, j := range m.touched {
			m.j2len[j] = 0
		}
		for _, j := range m.next {
			m.j2len[j] = m.newj2len[j]
			m.newj2len[j] = 0
		}
		m.touched, m.next = m.next, m.touched
	}
	for _, j := range m.touched {
		m.j2len[j] = 0
	}
	return besti, bestj, bestk
}
