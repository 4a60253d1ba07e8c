// 13 Oct 2026

package comp_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/basecomp/pkg/comp"
)

// tallyOf builds a tally from a compact description, base -> key -> count.
func tallyOf(m map[byte]map[int]uint64) comp.Tally {
	t := comp.NewTally()
	for c, counts := range m {
		b, ok := comp.BaseNdx(c)
		if !ok {
			panic("tallyOf given bad base " + string(c))
		}
		for k, n := range counts {
			t[b][k] = n
		}
	}
	return t
}

func ExampleAnalyze() {
	a := comp.NewAccum()
	a.Add([]byte("AAAT"))
	for b := 0; b < comp.NBase; b++ {
		fmt.Printf("%c tail %v total %v pos %v\n",
			comp.Bases[b], a.Tail[b], a.Total[b], a.Pos[b])
	}
	// Output:
	// A tail map[0:1] total map[3:1] pos map[1:1 2:1 3:1]
	// T tail map[1:1] total map[1:1] pos map[4:1]
	// C tail map[0:1] total map[0:1] pos map[]
	// G tail map[0:1] total map[0:1] pos map[]
}

type analyzeCase struct {
	name  string
	seq   string
	tail  map[byte]map[int]uint64
	total map[byte]map[int]uint64
	pos   map[byte]map[int]uint64
}

var analyzeCases = []analyzeCase{
	{
		name:  "AAAT",
		seq:   "AAAT",
		tail:  map[byte]map[int]uint64{'T': {1: 1}, 'A': {0: 1}, 'C': {0: 1}, 'G': {0: 1}},
		total: map[byte]map[int]uint64{'A': {3: 1}, 'T': {1: 1}, 'C': {0: 1}, 'G': {0: 1}},
		pos:   map[byte]map[int]uint64{'T': {4: 1}, 'A': {1: 1, 2: 1, 3: 1}},
	},
	{
		name:  "no canonical bases",
		seq:   "NNNN",
		total: map[byte]map[int]uint64{'A': {0: 1}, 'T': {0: 1}, 'C': {0: 1}, 'G': {0: 1}},
	},
	{
		name: "empty",
		seq:  "",
	},
	{
		name:  "poly A",
		seq:   "GAAAA",
		tail:  map[byte]map[int]uint64{'A': {4: 1}, 'T': {0: 1}, 'C': {0: 1}, 'G': {0: 1}},
		total: map[byte]map[int]uint64{'A': {4: 1}, 'T': {0: 1}, 'C': {0: 1}, 'G': {1: 1}},
		pos:   map[byte]map[int]uint64{'G': {1: 1}, 'A': {2: 1, 3: 1, 4: 1, 5: 1}},
	},
	{
		name:  "N inside tail does not break it",
		seq:   "CANAA",
		tail:  map[byte]map[int]uint64{'A': {3: 1}, 'T': {0: 1}, 'C': {0: 1}, 'G': {0: 1}},
		total: map[byte]map[int]uint64{'A': {3: 1}, 'T': {0: 1}, 'C': {1: 1}, 'G': {0: 1}},
		pos:   map[byte]map[int]uint64{'C': {1: 1}, 'A': {2: 1, 4: 1, 5: 1}},
	},
	{
		name:  "tail base is N",
		seq:   "GGTN",
		total: map[byte]map[int]uint64{'A': {0: 1}, 'T': {1: 1}, 'C': {0: 1}, 'G': {2: 1}},
		pos:   map[byte]map[int]uint64{'G': {1: 1, 2: 1}, 'T': {3: 1}},
	},
	{
		name:  "tail does not restart",
		seq:   "TTCTT",
		tail:  map[byte]map[int]uint64{'T': {2: 1}, 'A': {0: 1}, 'C': {0: 1}, 'G': {0: 1}},
		total: map[byte]map[int]uint64{'A': {0: 1}, 'T': {4: 1}, 'C': {1: 1}, 'G': {0: 1}},
		pos:   map[byte]map[int]uint64{'T': {1: 1, 2: 1, 4: 1, 5: 1}, 'C': {3: 1}},
	},
	{
		name:  "lower case is not counted",
		seq:   "acgT",
		tail:  map[byte]map[int]uint64{'T': {1: 1}, 'A': {0: 1}, 'C': {0: 1}, 'G': {0: 1}},
		total: map[byte]map[int]uint64{'A': {0: 1}, 'T': {1: 1}, 'C': {0: 1}, 'G': {0: 1}},
		pos:   map[byte]map[int]uint64{'T': {4: 1}},
	},
}

func TestAnalyze(t *testing.T) {
	for _, tc := range analyzeCases {
		tail, total, pos := comp.NewTally(), comp.NewTally(), comp.NewTally()
		comp.Analyze([]byte(tc.seq), tail, total, pos)
		if d := cmp.Diff(tallyOf(tc.tail), tail); d != "" {
			t.Errorf("%s: tail counts (-want +got):\n%s", tc.name, d)
		}
		if d := cmp.Diff(tallyOf(tc.total), total); d != "" {
			t.Errorf("%s: total counts (-want +got):\n%s", tc.name, d)
		}
		if d := cmp.Diff(tallyOf(tc.pos), pos); d != "" {
			t.Errorf("%s: position counts (-want +got):\n%s", tc.name, d)
		}
	}
}

// tallySum adds up every count in a tally.
func tallySum(t comp.Tally) (n uint64) {
	for _, c := range t {
		n += c.Sum()
	}
	return n
}

// keySum adds up key * count over a tally.
func keySum(t comp.Tally) (n uint64) {
	for _, c := range t {
		for k, v := range c {
			n += uint64(k) * v
		}
	}
	return n
}

// randRead makes a read from letters, which may include junk.
func randRead(rnd *rand.Rand, letters string, maxLen int) []byte {
	s := make([]byte, rnd.Intn(maxLen)+1)
	for i := range s {
		s[i] = letters[rnd.Intn(len(letters))]
	}
	return s
}

func nCanonical(s []byte) (n uint64) {
	for _, c := range s {
		if _, ok := comp.BaseNdx(c); ok {
			n++
		}
	}
	return n
}

// TestInvariants checks the counting rules on random reads, one at a time.
func TestInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	a := comp.NewAccum()
	for i := 0; i < 2000; i++ {
		s := randRead(rnd, "AAAATTTCCGGN-x", 40)
		tail0, total0, pos0 := tallySum(a.Tail), tallySum(a.Total), tallySum(a.Pos)
		key0 := keySum(a.Total)
		a.Add(s)

		wantTail := uint64(4)
		if _, ok := comp.BaseNdx(s[len(s)-1]); !ok {
			wantTail = 0
		}
		if got := tallySum(a.Tail) - tail0; got != wantTail {
			t.Fatalf("read %q tail increments got %d want %d", s, got, wantTail)
		}
		if got := tallySum(a.Total) - total0; got != 4 {
			t.Fatalf("read %q total increments got %d want 4", s, got)
		}
		nc := nCanonical(s)
		if got := keySum(a.Total) - key0; got != nc {
			t.Fatalf("read %q total keys sum to %d want %d", s, got, nc)
		}
		if got := tallySum(a.Pos) - pos0; got != nc {
			t.Fatalf("read %q position increments got %d want %d", s, got, nc)
		}
	}
	if a.NRead != 2000 {
		t.Fatal("NRead got", a.NRead, "want 2000")
	}
}

// TestMerge checks that splitting reads over accumulators and merging
// gives the same as one accumulator.
func TestMerge(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	whole := comp.NewAccum()
	parts := []*comp.Accum{comp.NewAccum(), comp.NewAccum(), comp.NewAccum()}
	for i := 0; i < 600; i++ {
		s := randRead(rnd, "ATCGN", 30)
		whole.Add(s)
		parts[i%len(parts)].Add(s)
	}
	merged := comp.NewAccum()
	for i := len(parts) - 1; i >= 0; i-- { // reverse order on purpose
		merged.Merge(parts[i])
	}
	if d := cmp.Diff(whole, merged); d != "" {
		t.Fatalf("merged accumulators differ (-whole +merged):\n%s", d)
	}
}

func TestCounts(t *testing.T) {
	c := make(comp.Counts)
	if c.Get(7) != 0 {
		t.Fatal("missing key should read as zero")
	}
	if len(c) != 0 {
		t.Fatal("Get should not add a key")
	}
	c.Inc(7)
	c.Inc(7)
	c.Add(comp.Counts{7: 3, 1: 1})
	if c.Get(7) != 5 || c.Get(1) != 1 || c.Sum() != 6 {
		t.Fatal("counts wrong, got", c)
	}
}
