// 13 Oct 2026
// Turn the sparse tallies into one dense table.

package comp

import (
	"math"
	"sort"

	"github.com/andrew-torda/matrix"
)

// DefaultSpan is the number of rows, 1..DefaultSpan, that are always
// present in a table, whether or not there is data for them.
const DefaultSpan = 149

// Column name suffixes, in the order they are written.
const (
	TailSfx    = "_tail_sequences"
	TotalSfx   = "_total_sequences"
	ContentSfx = "_pct_content"
)

// Table is the merged result. Row i has key Pos[i].
// The key means different things in different columns. For the tail
// columns it is a tail length, for the total columns it is a number of
// occurrences in a read and for the content columns it is a position in
// the read. All three are put on the same axis, so a row holds unrelated
// quantities. This is how the output has always looked and we keep it.
// Content.Mat looks like [nrow][NBase]. It is float32, since it is
// normalised to fractions.
type Table struct {
	Pos     []int
	Tail    [][NBase]uint64
	Total   [][NBase]uint64
	Content *matrix.FMatrix2d
}

// NRow returns the number of rows.
func (t *Table) NRow() int { return len(t.Pos) }

// Header returns the column names, starting with "position".
func Header() []string {
	h := []string{"position"}
	for _, sfx := range []string{TailSfx, TotalSfx, ContentSfx} {
		for i := 0; i < NBase; i++ {
			h = append(h, string(Bases[i])+sfx)
		}
	}
	return h
}

// keyUnion returns the sorted union of 1..span and every key in the tallies.
func keyUnion(span int, tallies ...Tally) []int {
	seen := make(map[int]bool, span)
	keys := make([]int, 0, span)
	add := func(k int) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := 1; k <= span; k++ {
		add(k)
	}
	for _, t := range tallies {
		for _, c := range t {
			for k := range c {
				add(k)
			}
		}
	}
	sort.Ints(keys)
	return keys
}

// Build outer-merges the three tallies into one table. There is a row for
// every position 1..span and for every key found in any of the tallies.
// Any cell without data is zero. Build does not modify its arguments and
// cannot fail. A span of less than 1 means no fixed rows.
func Build(tail, total, pos Tally, span int) *Table {
	keys := keyUnion(span, tail, total, pos)
	nrow := len(keys)
	t := &Table{
		Pos:     keys,
		Tail:    make([][NBase]uint64, nrow),
		Total:   make([][NBase]uint64, nrow),
		Content: matrix.NewFMatrix2d(nrow, NBase),
	}
	for irow, k := range keys {
		for b := 0; b < NBase; b++ {
			t.Tail[irow][b] = tail[b].Get(k)
			t.Total[irow][b] = total[b].Get(k)
			t.Content.Mat[irow][b] = float32(pos[b].Get(k))
		}
	}
	return t
}

// BuildAccum is Build on the three tallies of an Accum.
func BuildAccum(a *Accum, span int) *Table {
	return Build(a.Tail, a.Total, a.Pos, span)
}

// normTol is how close to 1 a row sum has to be for the row to count
// as normalised already. float32 rounding means a normalised row rarely
// sums to exactly 1.
const normTol = 1e-6

// Normalize converts the content columns of each row to fractions which
// add up to 1. A row whose content sums to zero has no data and is left
// alone. Calling it a second time changes nothing.
func Normalize(t *Table) {
	for _, row := range t.Content.Mat {
		var sum float64
		for _, v := range row {
			sum += float64(v)
		}
		if sum == 0 || math.Abs(sum-1) < normTol {
			continue
		}
		for b := range row {
			row[b] = float32(float64(row[b]) / sum)
		}
	}
}
