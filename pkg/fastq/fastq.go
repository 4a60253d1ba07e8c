// 14 Oct 2026

// Package fastq reads the sequences out of fastq files, one record
// at a time. Fasta files are read too. Parsing is done by the fastx
// reader from shenwei356/bio with an alphabet that accepts any symbol,
// so odd characters in a read reach the caller instead of stopping
// the file. Only the sequence is returned. Headers and qualities are
// thrown away.
//
// A record looks like
//	@name and comment
//	ACGT...            (may be broken over lines)
//	+optional name
//	IIII...            (same length as the sequence, may be broken)
package fastq

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/andrew-torda/basecomp/pkg/zwrap"
)

// Options contains the choices passed in from the caller.
type Options struct {
	Upper bool // upper case sequences before returning them
}

// Source gives us sequences one at a time. Next returns io.EOF after
// the last sequence. The slice is only valid until the next call.
type Source interface {
	Next() ([]byte, error)
	Close() error
}

// idRegexp must not be fastx.DefaultIDRegexp. Passing the default sets
// a package variable in fastx, which races when files are read in
// parallel.
const idRegexp = `^(\S+)`

// noClose hides the Close method. fastx closes a ReadCloser when it
// gets to the end, but the file belongs to us.
type noClose struct{ io.Reader }

// Reader gives back the sequences from one fastx reader.
type Reader struct {
	rdr   *fastx.Reader // nil for empty input
	cls   io.Closer
	name  string // for error messages
	nrec  int    // records read so far
	err   error  // first error, returned from then on
	upper bool
}

// NewReader wraps an io.Reader. name is only used in error messages.
// If r is also an io.Closer, Close will close it. On error, r is not
// closed.
func NewReader(r io.Reader, name string, opts *Options) (*Reader, error) {
	rdr := &Reader{name: name}
	if c, ok := r.(io.Closer); ok {
		rdr.cls = c
	}
	if opts != nil {
		rdr.upper = opts.Upper
	}
	b := bufio.NewReader(r)
	if _, err := b.Peek(1); err != nil {
		if err == io.EOF { // fastx panics on empty input
			return rdr, nil
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	fx, err := fastx.NewReaderFromIO(seq.Unlimit, noClose{b}, idRegexp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	rdr.rdr = fx
	return rdr, nil
}

// Next returns the sequence of the next record.
func (r *Reader) Next() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.rdr == nil {
		return nil, io.EOF
	}
	rec, err := r.rdr.Read()
	if err == io.EOF {
		r.err = err
		return nil, err
	}
	if err != nil {
		r.err = fmt.Errorf("%s record %d: %w", r.name, r.nrec+1, err)
		return nil, r.err
	}
	r.nrec++
	s := rec.Seq.Seq
	if r.upper {
		upper(s)
	}
	return s, nil
}

// NRec returns the number of records read so far.
func (r *Reader) NRec() int { return r.nrec }

// Close gives the fastx reader back and closes the underlying reader,
// if it can be closed.
func (r *Reader) Close() error {
	if r.rdr != nil {
		r.rdr.Close()
		r.rdr = nil
	}
	if r.cls == nil {
		return nil
	}
	return r.cls.Close()
}

// upper changes a sequence to upper case, in place.
func upper(s []byte) {
	const diff = 'a' - 'A'
	for i, c := range s {
		if 'a' <= c && c <= 'z' {
			s[i] -= diff
		}
	}
}

// Open opens a file, compressed or not, and returns a Source for it.
func Open(fname string, opts *Options) (Source, error) {
	fp, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	rdr, err := NewReader(fp, fname, opts)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return rdr, nil
}
