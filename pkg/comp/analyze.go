// 12 Oct 2026

package comp

// Analyze looks at one read and adds to the three tallies.
// The read is walked backwards, starting from the 3' end. The last
// character is the tail base. The tail runs for as long as we see that
// base. Characters which are not A, T, C or G are skipped. They are not
// counted and they do not end the tail. Only a different canonical base
// ends it.
//
// If the tail base is canonical, tail gets one count at the tail length
// for that base and one count at zero for each of the other three.
// total gets one count per base at the number of times the base occurred
// in the read (possibly zero). pos gets one count per canonical character
// at its 1-based position from the start of the read.
// An empty read changes nothing.
func Analyze(s []byte, tail, total, pos Tally) {
	n := len(s)
	if n == 0 {
		return
	}
	var inSeq [NBase]int
	tailBase := s[n-1]
	tailLen := 0
	inTail := true
	for i := 0; i < n; i++ {
		c := s[n-1-i]
		b, ok := BaseNdx(c)
		if !ok {
			continue
		}
		if inTail && c == tailBase {
			tailLen++
		} else {
			inTail = false
		}
		inSeq[b]++
		pos[b].Inc(n - i)
	}

	if tb, ok := BaseNdx(tailBase); ok {
		for b := range tail {
			if b == tb {
				tail[b].Inc(tailLen)
			} else {
				tail[b].Inc(0)
			}
		}
	}
	for b, m := range inSeq {
		total[b].Inc(m)
	}
}
