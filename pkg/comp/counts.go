// 12 Oct 2026

// Package comp collects base composition statistics from reads.
// Analyze looks at one read at a time and adds to three sets of
// tallies. When all the reads have been seen, Build turns the tallies
// into one table with a row for each position and Normalize converts
// the positional counts to fractions.
package comp

// Bases is the order in which bases are stored and written out.
const Bases = "ATCG"

// NBase is the number of canonical bases.
const NBase = len(Bases)

const badBase = -1 // marks a symbol we do not count

// baseNdx maps a byte to its place in Bases, or badBase.
var baseNdx = func() (m [256]int8) {
	for i := range m {
		m[i] = badBase
	}
	for i := 0; i < NBase; i++ {
		m[Bases[i]] = int8(i)
	}
	return
}()

// BaseNdx returns the index of c in Bases and false if c
// is not one of A, T, C or G.
func BaseNdx(c byte) (int, bool) {
	i := baseNdx[c]
	return int(i), i != badBase
}

// Counts is a sparse histogram. Keys are positions, tail lengths or
// numbers of occurrences. A missing key has a count of zero.
type Counts map[int]uint64

// Get returns the count for key k, zero if it was never incremented.
func (c Counts) Get(k int) uint64 { return c[k] }

// Inc adds one to the count for key k.
func (c Counts) Inc(k int) { c[k]++ }

// Add adds all the counts from o into c.
func (c Counts) Add(o Counts) {
	for k, n := range o {
		c[k] += n
	}
}

// Sum returns the total of all counts.
func (c Counts) Sum() (n uint64) {
	for _, v := range c {
		n += v
	}
	return n
}

// Tally holds one histogram per base, indexed as in Bases.
type Tally [NBase]Counts

// NewTally returns a tally with empty, usable histograms.
func NewTally() Tally {
	var t Tally
	for i := range t {
		t[i] = make(Counts)
	}
	return t
}

// Add merges o into t, base by base.
func (t Tally) Add(o Tally) {
	for i := range t {
		t[i].Add(o[i])
	}
}

// Accum is the set of accumulators filled by Analyze.
//	Tail  tail length -> number of reads
//	Total occurrences of a base in a read -> number of reads
//	Pos   position counted from the start of a read -> number of bases
type Accum struct {
	Tail  Tally
	Total Tally
	Pos   Tally
	NRead int64 // number of reads seen, including empty ones
}

// NewAccum returns empty accumulators.
func NewAccum() *Accum {
	return &Accum{Tail: NewTally(), Total: NewTally(), Pos: NewTally()}
}

// Add analyses one read and adds it to the accumulators.
func (a *Accum) Add(s []byte) {
	a.NRead++
	Analyze(s, a.Tail, a.Total, a.Pos)
}

// Merge adds the counts from o. Each worker can have its own Accum
// and they are merged at the end. Order does not matter.
func (a *Accum) Merge(o *Accum) {
	a.Tail.Add(o.Tail)
	a.Total.Add(o.Total)
	a.Pos.Add(o.Pos)
	a.NRead += o.NRead
}
