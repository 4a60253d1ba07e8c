// brokenio is a wrapper around an io.ReadCloser which fails on purpose.
// Typical use: You get a file pointer or a reader from a compressed
// source. You write
// reader = brokenio.NewReader(reader) to wrap the old reader. Everything
// then functions as before, but with artificial errors.
// A reader can fail after a set number of bytes, or fail at random
// with some probability on each call to Read.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is returned by default when a read fails.
var ErrBroken = errors.New("brokenio: artificial read failure")

// BrknRdrClsr counts the data that goes through it and fails when told.
type BrknRdrClsr struct {
	rdrOrig  io.ReadCloser // Wrapped reader
	failAt   int64         // fail once this many bytes are read, < 0 never
	probFail float32       // chance of failing on any one Read
	err      error         // what to return on failure
	rnd      *rand.Rand
	nCalled  int
	nByte    int64
	verbose  bool
}

// NewReader returns a new Reader - a wrapper around the old one. Until
// one of the Set functions is called, it does not fail.
func NewReader(rIn io.ReadCloser) *BrknRdrClsr {
	return &BrknRdrClsr{
		rdrOrig: rIn,
		failAt:  -1,
		err:     ErrBroken,
		rnd:     rand.New(rand.NewSource(1)),
	}
}

// SetVerbose sets the verbosity flag to true or false
func (r *BrknRdrClsr) SetVerbose(newV bool) { r.verbose = newV }

// SetFailAt makes every read fail once n bytes have been delivered.
func (r *BrknRdrClsr) SetFailAt(n int64) { r.failAt = n }

// SetProbFail set the probability of a read failing.
// It must be between zero and 1. We do not check.
func (r *BrknRdrClsr) SetProbFail(prob float32) { r.probFail = prob }

// SetErr sets the error returned on failure.
func (r *BrknRdrClsr) SetErr(err error) { r.err = err }

// SetSeed resets the random number generator used by SetProbFail.
func (r *BrknRdrClsr) SetSeed(seed int64) { r.rnd = rand.New(rand.NewSource(seed)) }

// NByte returns the number of bytes which have got through.
func (r *BrknRdrClsr) NByte() int64 { return r.nByte }

// Read wraps the original reader and sums up the amount of data that
// has gone through.
func (r *BrknRdrClsr) Read(p []byte) (n int, err error) {
	r.nCalled++
	if len(p) == 0 {
		return 0, nil
	}
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return 0, r.err
	}
	if r.failAt >= 0 {
		left := r.failAt - r.nByte
		if left <= 0 {
			return 0, r.err
		}
		if int64(len(p)) > left {
			p = p[:left]
		}
	}
	n, err = r.rdrOrig.Read(p)
	r.nByte += int64(n)
	return n, err
}

// Close wraps the original Close method.
func (r *BrknRdrClsr) Close() error {
	if r.verbose {
		fmt.Println("Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	return r.rdrOrig.Close()
}
